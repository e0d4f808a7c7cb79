package services

import (
	"fmt"
	"strings"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/utils/calc"
	"github.com/de-scientist/brandson/app/utils/format"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/shopspring/decimal"
)

var (
	receiptDark  = color.Color{Red: 38, Green: 38, Blue: 34}
	receiptMuted = color.Color{Red: 121, Green: 119, Blue: 109}
)

// RenderOrderSummaryPDF lays out an order summary as an A4 receipt.
func RenderOrderSummaryPDF(summary models.OrderSummary) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(15, func() {
		m.Col(8, func() {
			m.Text("BRANDSON PRINTING", props.Text{Size: 18, Style: consts.Bold, Color: receiptDark})
		})
		m.Col(4, func() {
			m.Text("ORDER SUMMARY", props.Text{Size: 10, Style: consts.Bold, Color: receiptDark, Align: consts.Right})
		})
	})

	reference := summary.Reference
	if reference == "" {
		reference = "Quote"
	}
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(strings.TrimSpace(summary.CustomerInfo.FirstName+" "+summary.CustomerInfo.LastName),
				props.Text{Size: 10, Style: consts.Bold, Color: receiptDark})
		})
		m.Col(6, func() {
			m.Text(reference, props.Text{Size: 10, Color: receiptDark, Align: consts.Right})
		})
	})
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(summary.CustomerInfo.Email, props.Text{Size: 9, Color: receiptMuted})
		})
		m.Col(6, func() {
			m.Text("Date: "+summary.CreatedAt.Format("Jan 02, 2006"), props.Text{Size: 9, Color: receiptMuted, Align: consts.Right})
		})
	})
	if addr := customerAddress(summary.CustomerInfo); addr != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text(addr, props.Text{Size: 9, Color: receiptMuted})
			})
		})
	}

	m.Row(8, func() {})
	receiptRow(m, "Item", "Qty", "Price", "Total", consts.Bold)
	m.Line(1)
	for _, item := range summary.Items {
		receiptRow(m,
			item.Product.Name+" - "+item.Variant.Name,
			fmt.Sprintf("%d", item.Quantity),
			format.KES(item.Variant.Price),
			format.KES(item.LineTotal()),
			consts.Normal)
	}
	m.Line(1)

	totalRow(m, "Subtotal", summary.Subtotal, consts.Normal)
	totalRow(m, fmt.Sprintf("VAT (%s%%)", calc.GetTaxPercent().String()), summary.Tax, consts.Normal)
	totalRow(m, "Shipping ("+summary.ShippingInfo.Name+")", summary.Shipping, consts.Normal)
	totalRow(m, "Total", summary.Total, consts.Bold)

	if summary.Notes != "" {
		m.Row(8, func() {})
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("Notes: "+summary.Notes, props.Text{Size: 9, Color: receiptMuted})
			})
		})
	}

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func receiptRow(m pdf.Maroto, name, qty, price, total string, style consts.Style) {
	m.Row(6, func() {
		m.Col(6, func() {
			m.Text(name, props.Text{Size: 9, Style: style, Color: receiptDark})
		})
		m.Col(2, func() {
			m.Text(qty, props.Text{Size: 9, Style: style, Color: receiptDark, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(price, props.Text{Size: 9, Style: style, Color: receiptDark, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(total, props.Text{Size: 9, Style: style, Color: receiptDark, Align: consts.Right})
		})
	})
}

func totalRow(m pdf.Maroto, label string, amount decimal.Decimal, style consts.Style) {
	m.Row(5, func() {
		m.Col(7, func() {})
		m.Col(3, func() {
			m.Text(label, props.Text{Size: 9, Style: style, Color: receiptMuted, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(format.KES(amount), props.Text{Size: 9, Style: style, Color: receiptDark, Align: consts.Right})
		})
	})
}

func customerAddress(c models.CustomerInfo) string {
	var parts []string
	for _, p := range []string{c.Company, c.Address, c.City, c.PostalCode, c.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
