// Package cart holds the shopping-cart pricing engine: a synchronous state
// machine over models.CartState whose totals are recomputed from the item
// list after every operation.
//
// The engine knows nothing about storage. Hosts restore it from a persisted
// state, apply one or more operations and persist State() afterwards.
package cart

import (
	"fmt"
	"time"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/utils/calc"
	"github.com/shopspring/decimal"
)

// Clock supplies the AddedAt and CreatedAt timestamps.
type Clock func() time.Time

// Lookup resolves the current catalog entry for a cart line.
type Lookup func(productID, variantID string) (models.Product, models.ProductVariant, bool)

type Engine struct {
	state models.CartState
	now   Clock
}

// New returns an engine holding an empty cart.
func New(now Clock) *Engine {
	if now == nil {
		now = time.Now
	}
	e := &Engine{now: now}
	e.reset()
	return e
}

// Restore returns an engine seeded with a previously persisted state. The
// derived totals are recomputed; lines with a non-positive quantity are
// dropped and duplicate lines are merged.
func Restore(state models.CartState, now Clock) *Engine {
	e := New(now)
	e.state.Shipping = state.Shipping

	index := make(map[string]int, len(state.Items))
	for _, item := range state.Items {
		if item.Quantity <= 0 {
			continue
		}
		item.ID = models.LineID(item.Product.ID, item.Variant.ID)
		if i, ok := index[item.ID]; ok {
			e.state.Items[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(e.state.Items)
		e.state.Items = append(e.state.Items, copyItem(item))
	}

	e.recalculate()
	return e
}

// State returns a copy of the current cart state.
func (e *Engine) State() models.CartState {
	out := e.state
	out.Items = copyItems(e.state.Items)
	return out
}

func (e *Engine) AddItem(product models.Product, variant models.ProductVariant, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if !belongsTo(product, variant) {
		return fmt.Errorf("%w: product %q variant %q", ErrVariantMismatch, product.ID, variant.ID)
	}
	if variant.Price.IsNegative() {
		return fmt.Errorf("%w: variant %q price %s", ErrInvalidPrice, variant.ID, variant.Price)
	}

	lineID := models.LineID(product.ID, variant.ID)
	if i := e.indexOf(lineID); i >= 0 {
		e.state.Items[i].Quantity += quantity
	} else {
		e.state.Items = append(e.state.Items, copyItem(models.CartItem{
			ID:       lineID,
			Product:  product,
			Variant:  variant,
			Quantity: quantity,
			AddedAt:  e.now(),
		}))
	}

	e.recalculate()
	return nil
}

// RemoveItem drops a line. Unknown ids are ignored.
func (e *Engine) RemoveItem(lineID string) {
	i := e.indexOf(lineID)
	if i < 0 {
		return
	}
	e.state.Items = append(e.state.Items[:i], e.state.Items[i+1:]...)
	e.recalculate()
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line; unknown ids are ignored.
func (e *Engine) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		e.RemoveItem(lineID)
		return
	}
	i := e.indexOf(lineID)
	if i < 0 {
		return
	}
	e.state.Items[i].Quantity = quantity
	e.recalculate()
}

// Clear empties the cart and resets shipping.
func (e *Engine) Clear() {
	e.reset()
}

// SetShipping stores the cost of the chosen shipping option. Emptying the
// cart keeps it; only Clear resets it.
func (e *Engine) SetShipping(info models.ShippingInfo) {
	e.state.Shipping = info.Cost
	e.recalculate()
}

// IsInCart reports whether a line exists for the product. An empty variantID
// matches any variant.
func (e *Engine) IsInCart(productID, variantID string) bool {
	for _, item := range e.state.Items {
		if matches(item, productID, variantID) {
			return true
		}
	}
	return false
}

// ItemQuantity sums the quantity of the matching lines. An empty variantID
// matches any variant.
func (e *Engine) ItemQuantity(productID, variantID string) int {
	total := 0
	for _, item := range e.state.Items {
		if matches(item, productID, variantID) {
			total += item.Quantity
		}
	}
	return total
}

func (e *Engine) ShippingOptions() []models.ShippingInfo {
	return models.ShippingOptions()
}

// CreateOrderSummary snapshots the cart for checkout. An unknown shipping
// method falls back to the first option (standard). The summary's shipping
// and total follow the chosen option; the cart itself is left untouched.
func (e *Engine) CreateOrderSummary(customer models.CustomerInfo, shippingMethod, paymentMethod, notes string) models.OrderSummary {
	info, ok := models.FindShippingOption(shippingMethod)
	if !ok {
		info = models.ShippingOptions()[0]
	}

	return models.OrderSummary{
		Items:         copyItems(e.state.Items),
		Subtotal:      e.state.Subtotal,
		Tax:           e.state.Tax,
		Shipping:      info.Cost,
		Total:         calc.CalculateGrandTotal(e.state.Subtotal, e.state.Tax, info.Cost),
		ItemCount:     e.state.ItemCount,
		ShippingInfo:  info,
		CustomerInfo:  customer,
		PaymentMethod: paymentMethod,
		Notes:         notes,
		CreatedAt:     e.now(),
	}
}

// Reprice replaces each line's product and variant with the catalog's
// current entry so prices are read live. Lines the lookup cannot resolve, or
// that resolve to a negative price, keep their stored data. It returns the
// ids of the unresolved lines.
func (e *Engine) Reprice(lookup Lookup) []string {
	var stale []string
	for i := range e.state.Items {
		item := &e.state.Items[i]
		product, variant, ok := lookup(item.Product.ID, item.Variant.ID)
		if !ok || variant.Price.IsNegative() {
			stale = append(stale, item.ID)
			continue
		}
		item.Product = product
		item.Variant = variant
		*item = copyItem(*item)
	}
	e.recalculate()
	return stale
}

func (e *Engine) reset() {
	e.state = models.CartState{
		Items:    []models.CartItem{},
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
	}
}

// recalculate derives every total from the item list and the shipping cost.
// Totals are never patched incrementally.
func (e *Engine) recalculate() {
	subtotal := decimal.Zero
	count := 0
	for _, item := range e.state.Items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity
	}

	e.state.Subtotal = subtotal
	e.state.Tax = calc.CalculateTax(subtotal)
	e.state.Total = calc.CalculateGrandTotal(subtotal, e.state.Tax, e.state.Shipping)
	e.state.ItemCount = count
}

func (e *Engine) indexOf(lineID string) int {
	for i, item := range e.state.Items {
		if item.ID == lineID {
			return i
		}
	}
	return -1
}

func matches(item models.CartItem, productID, variantID string) bool {
	if item.Product.ID != productID {
		return false
	}
	return variantID == "" || item.Variant.ID == variantID
}

func belongsTo(product models.Product, variant models.ProductVariant) bool {
	if product.ID == "" || variant.ID == "" {
		return false
	}
	if variant.ProductID != "" && variant.ProductID != product.ID {
		return false
	}
	if len(product.Variants) == 0 {
		return true
	}
	_, ok := product.Variant(variant.ID)
	return ok
}

func copyItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	for i, item := range items {
		out[i] = copyItem(item)
	}
	return out
}

// copyItem detaches the slices and maps of a line so snapshots cannot be
// changed through the engine or the caller's catalog objects.
func copyItem(item models.CartItem) models.CartItem {
	item.Variant = copyVariant(item.Variant)
	if item.Product.Variants != nil {
		variants := make([]models.ProductVariant, len(item.Product.Variants))
		for i, v := range item.Product.Variants {
			variants[i] = copyVariant(v)
		}
		item.Product.Variants = variants
	}
	if item.Product.Features != nil {
		item.Product.Features = append([]string(nil), item.Product.Features...)
	}
	return item
}

func copyVariant(v models.ProductVariant) models.ProductVariant {
	if v.Attributes != nil {
		attrs := make(map[string]string, len(v.Attributes))
		for k, val := range v.Attributes {
			attrs[k] = val
		}
		v.Attributes = attrs
	}
	return v
}
