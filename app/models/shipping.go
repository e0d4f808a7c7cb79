package models

import "github.com/shopspring/decimal"

const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingPickup   = "pickup"
)

type ShippingInfo struct {
	Method        string          `json:"method"`
	Name          string          `json:"name"`
	Cost          decimal.Decimal `json:"cost"`
	EstimatedDays string          `json:"estimatedDays"`
	Description   string          `json:"description"`
}

// ShippingOptions returns the fixed rate table in display order. The first
// entry is the default.
func ShippingOptions() []ShippingInfo {
	return []ShippingInfo{
		{
			Method:        ShippingStandard,
			Name:          "Standard Delivery",
			Cost:          decimal.NewFromInt(350),
			EstimatedDays: "3-5 business days",
			Description:   "Delivered to your door within Nairobi and major towns",
		},
		{
			Method:        ShippingExpress,
			Name:          "Express Delivery",
			Cost:          decimal.NewFromInt(800),
			EstimatedDays: "1-2 business days",
			Description:   "Priority dispatch for urgent print jobs",
		},
		{
			Method:        ShippingPickup,
			Name:          "Store Pickup",
			Cost:          decimal.Zero,
			EstimatedDays: "Same day",
			Description:   "Collect from our print shop once your order is ready",
		},
	}
}

// FindShippingOption looks up a shipping option by method name.
func FindShippingOption(method string) (ShippingInfo, bool) {
	for _, opt := range ShippingOptions() {
		if opt.Method == method {
			return opt, true
		}
	}
	return ShippingInfo{}, false
}
