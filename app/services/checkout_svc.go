package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-scientist/brandson/app/cart"
	"github.com/de-scientist/brandson/app/events"
	"github.com/de-scientist/brandson/app/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutRequest struct {
	CustomerInfo   models.CustomerInfo
	ShippingMethod string
	PaymentMethod  string
	Notes          string
}

type CheckoutResult struct {
	Order   models.OrderSummary `json:"order"`
	Payment PaymentResult       `json:"payment"`
}

// OrderNotifier tells the customer about a placed order.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, summary models.OrderSummary) error
}

type CheckoutService struct {
	carts     *CartService
	gateway   PaymentGateway
	publisher events.OrderPublisher
	notifier  OrderNotifier
	logger    *zap.Logger
	newID     func() string
}

// NewCheckoutService wires checkout. publisher and notifier may be nil.
func NewCheckoutService(carts *CartService, gateway PaymentGateway, publisher events.OrderPublisher, notifier OrderNotifier, logger *zap.Logger) *CheckoutService {
	if publisher == nil {
		publisher = events.NoopOrderPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		carts:     carts,
		gateway:   gateway,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Summary previews the order without touching the cart.
func (s *CheckoutService) Summary(ctx context.Context, key string, req CheckoutRequest) (models.OrderSummary, error) {
	var summary models.OrderSummary
	err := s.carts.withCart(ctx, key, func(e *cart.Engine) (bool, error) {
		summary = e.CreateOrderSummary(req.CustomerInfo, req.ShippingMethod, req.PaymentMethod, req.Notes)
		return false, nil
	})
	return summary, err
}

// PlaceOrder charges the cart through the payment gateway and clears it. A
// gateway failure leaves the cart as it was. Once the gateway accepts the
// payment the order is reported as placed even if the cart cannot be cleared.
func (s *CheckoutService) PlaceOrder(ctx context.Context, key string, req CheckoutRequest) (*CheckoutResult, error) {
	if !models.IsSupportedPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("place order: %w: %q", ErrUnsupportedPaymentMethod, req.PaymentMethod)
	}

	var result *CheckoutResult
	err := s.carts.withCart(ctx, key, func(e *cart.Engine) (bool, error) {
		if e.State().ItemCount == 0 {
			return false, ErrEmptyCart
		}

		summary := e.CreateOrderSummary(req.CustomerInfo, req.ShippingMethod, req.PaymentMethod, req.Notes)
		summary.Reference = s.newID()

		payment, err := s.gateway.CreatePaymentIntent(ctx, PaymentIntent{
			Reference: summary.Reference,
			Amount:    summary.Total,
			Method:    summary.PaymentMethod,
			Order:     summary,
		})
		if err != nil {
			s.logger.Error("payment intent failed",
				zap.String("reference", summary.Reference),
				zap.String("payment_method", summary.PaymentMethod),
				zap.Error(err))
			if !errors.Is(err, ErrPaymentFailed) && !errors.Is(err, ErrUnsupportedPaymentMethod) {
				err = fmt.Errorf("%w: %v", ErrPaymentFailed, err)
			}
			return false, err
		}

		event := events.NewOrderPlacedEvent(s.newID(), summary)
		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Warn("order placed but event not published",
				zap.String("reference", summary.Reference),
				zap.Error(err))
		}
		if s.notifier != nil {
			if err := s.notifier.SendOrderConfirmation(ctx, summary); err != nil {
				s.logger.Warn("order confirmation not sent",
					zap.String("reference", summary.Reference),
					zap.Error(err))
			}
		}

		e.Clear()
		result = &CheckoutResult{Order: summary, Payment: *payment}
		s.clearPaidCart(ctx, key, e, summary.Reference)
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.logger.Info("order placed",
		zap.String("cart_key", key),
		zap.String("reference", result.Order.Reference),
		zap.String("total", result.Order.Total.StringFixed(2)))
	return result, nil
}

// clearPaidCart saves the emptied cart, falling back to deleting it.
func (s *CheckoutService) clearPaidCart(ctx context.Context, key string, e *cart.Engine, reference string) {
	err := s.carts.store.Save(ctx, key, e.State())
	if err == nil {
		return
	}
	s.logger.Error("order placed but cart not saved",
		zap.String("cart_key", key),
		zap.String("reference", reference),
		zap.Error(err))
	if err := s.carts.store.Delete(ctx, key); err != nil {
		s.logger.Error("order placed but cart not cleared",
			zap.String("cart_key", key),
			zap.String("reference", reference),
			zap.Error(err))
	}
}
