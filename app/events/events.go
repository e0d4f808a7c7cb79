package events

import (
	"time"

	"github.com/de-scientist/brandson/app/models"
	"github.com/shopspring/decimal"
)

const OrderPlacedType = "order.placed"

type OrderLine struct {
	LineID    string          `json:"line_id"`
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderPlacedEvent struct {
	EventID        string          `json:"event_id"`
	Type           string          `json:"type"`
	Reference      string          `json:"reference"`
	CustomerEmail  string          `json:"customer_email"`
	Items          []OrderLine     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
	ShippingMethod string          `json:"shipping_method"`
	PaymentMethod  string          `json:"payment_method"`
	Timestamp      time.Time       `json:"timestamp"`
}

// NewOrderPlacedEvent flattens an order summary into the published event.
func NewOrderPlacedEvent(eventID string, summary models.OrderSummary) OrderPlacedEvent {
	lines := make([]OrderLine, 0, len(summary.Items))
	for _, item := range summary.Items {
		lines = append(lines, OrderLine{
			LineID:    item.ID,
			ProductID: item.Product.ID,
			VariantID: item.Variant.ID,
			Name:      item.Product.Name + " - " + item.Variant.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Variant.Price,
		})
	}
	return OrderPlacedEvent{
		EventID:        eventID,
		Type:           OrderPlacedType,
		Reference:      summary.Reference,
		CustomerEmail:  summary.CustomerInfo.Email,
		Items:          lines,
		Subtotal:       summary.Subtotal,
		Tax:            summary.Tax,
		Shipping:       summary.Shipping,
		Total:          summary.Total,
		ShippingMethod: summary.ShippingInfo.Method,
		PaymentMethod:  summary.PaymentMethod,
		Timestamp:      summary.CreatedAt,
	}
}
