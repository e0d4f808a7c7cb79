package services

import "errors"

var (
	ErrVariantNotFound          = errors.New("variant not found")
	ErrUnknownShippingMethod    = errors.New("unknown shipping method")
	ErrEmptyCart                = errors.New("cart is empty")
	ErrPaymentFailed            = errors.New("payment gateway failed")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
)
