package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("cart: quantity must be greater than zero")
	ErrVariantMismatch = errors.New("cart: variant does not belong to product")
	ErrInvalidPrice    = errors.New("cart: variant price must not be negative")
)
