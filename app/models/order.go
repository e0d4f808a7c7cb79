package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodMpesa        = "mpesa"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCashOnPickup = "cash_on_pickup"
)

type CustomerInfo struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=9,max=20"`
	Company    string `json:"company,omitempty" validate:"max=255"`
	Address    string `json:"address" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode,omitempty" validate:"max=20"`
	Country    string `json:"country,omitempty" validate:"max=100"`
}

// OrderSummary is a checkout-time snapshot of the cart. Building one never
// touches the cart it was taken from.
type OrderSummary struct {
	Reference     string          `json:"reference,omitempty"`
	Items         []CartItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"itemCount"`
	ShippingInfo  ShippingInfo    `json:"shippingInfo"`
	CustomerInfo  CustomerInfo    `json:"customerInfo"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsSupportedPaymentMethod reports whether checkout accepts the method.
func IsSupportedPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodMpesa, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCashOnPickup:
		return true
	}
	return false
}
