package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of the cart. Its ID is derived from the product and
// variant ids so the same pair always collapses to one line.
type CartItem struct {
	ID       string         `json:"id"`
	Product  Product        `json:"product"`
	Variant  ProductVariant `json:"variant"`
	Quantity int            `json:"quantity"`
	AddedAt  time.Time      `json:"addedAt"`
}

// LineTotal is the variant price times the quantity.
func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.Variant.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// CartState is the persisted shape of a cart. Subtotal, Tax, Total and
// ItemCount are derived from Items and Shipping and are never set directly.
type CartState struct {
	Items     []CartItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// CartSnapshot is a serialized CartState keyed by the cart session id.
type CartSnapshot struct {
	Key       string    `gorm:"column:cart_key;size:64;primaryKey"`
	Payload   []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// LineID builds the cart line identifier for a product/variant pair.
func LineID(productID, variantID string) string {
	return productID + "-" + variantID
}
