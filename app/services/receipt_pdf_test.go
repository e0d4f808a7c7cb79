package services

import (
	"bytes"
	"testing"

	"github.com/de-scientist/brandson/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrderSummaryPDF(t *testing.T) {
	summary := summaryFor(t, models.ShippingExpress, line{"1500", 2}, line{"649.99", 1})
	summary.CustomerInfo.Company = "Savanna Bakers Ltd"
	summary.Notes = "Matte finish please"

	out, err := RenderOrderSummaryPDF(summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output is a PDF document")
	assert.Greater(t, len(out), 500)
}

func TestRenderOrderSummaryPDF_EmptyQuote(t *testing.T) {
	out, err := RenderOrderSummaryPDF(models.OrderSummary{ShippingInfo: models.ShippingOptions()[0]})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestCustomerAddress(t *testing.T) {
	c := models.CustomerInfo{Address: "Kenyatta Ave 4", City: "Nakuru", Country: "Kenya"}
	assert.Equal(t, "Kenyatta Ave 4, Nakuru, Kenya", customerAddress(c))
	assert.Equal(t, "", customerAddress(models.CustomerInfo{}))
}
