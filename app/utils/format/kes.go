package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// KES formats an amount as Kenyan shillings, e.g. "KES 3,480.00".
func KES(amount decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: "KES ", Precision: 2, Thousand: ",", Decimal: "."}
	return ac.FormatMoney(amount)
}
