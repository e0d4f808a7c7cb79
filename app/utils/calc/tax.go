package calc

import "github.com/shopspring/decimal"

// Kenyan VAT applied to every cart subtotal.
var taxPercent = decimal.NewFromInt(16)

func GetTaxPercent() decimal.Decimal {
	return taxPercent
}

// GetTaxRate returns the VAT as a fraction (0.16).
func GetTaxRate() decimal.Decimal {
	return taxPercent.Div(decimal.NewFromInt(100))
}

// CalculateTax returns subtotal × 16% with no rounding.
func CalculateTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(GetTaxRate())
}

func CalculateGrandTotal(subtotal, taxAmount, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(taxAmount).Add(shipping)
}
