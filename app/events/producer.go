package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const DefaultOrderTopic = "order-events"

type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaOrderPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaOrderPublisher writes to topic on the comma separated brokers.
func NewKafkaOrderPublisher(brokers, topic string, logger *zap.Logger) *KafkaOrderPublisher {
	if topic == "" {
		topic = DefaultOrderTopic
	}
	writer := &kafka.Writer{
		Addr:     kafka.TCP(splitBrokers(brokers)...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaOrderPublisher{writer: writer, logger: logger}
}

func (p *KafkaOrderPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal order event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Reference),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish order event",
			zap.String("event_id", event.EventID),
			zap.String("reference", event.Reference),
			zap.Error(err))
		return err
	}

	p.logger.Info("Order event published",
		zap.String("event_id", event.EventID),
		zap.String("reference", event.Reference))
	return nil
}

func (p *KafkaOrderPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

type NoopOrderPublisher struct{}

func (NoopOrderPublisher) PublishOrderPlaced(context.Context, OrderPlacedEvent) error { return nil }

func (NoopOrderPublisher) Close() error { return nil }
