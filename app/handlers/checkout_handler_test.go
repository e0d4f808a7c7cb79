package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/services"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckout() map[string]any {
	return map[string]any{
		"customer": map[string]string{
			"firstName": "Wanjiru",
			"lastName":  "Kamau",
			"email":     "wanjiru@example.co.ke",
			"phone":     "0722000111",
			"address":   "Kenyatta Avenue 5",
			"city":      "Nairobi",
		},
		"shippingMethod": "express",
		"paymentMethod":  "mpesa",
	}
}

func TestCheckoutHandler_Summary(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/cart/items", "c1", addCards(2)).Code)

	rec := s.do(t, http.MethodPost, "/api/checkout/summary", "c1", map[string]string{"shippingMethod": "pickup"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	summary := decodeBody[models.OrderSummary](t, rec)
	assert.Equal(t, models.ShippingPickup, summary.ShippingInfo.Method)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(3480)))
	assert.Empty(t, summary.Reference)
}

func TestCheckoutHandler_Receipt(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/checkout/receipt.pdf", "c1", validCheckout())
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/cart/items", "c1", addCards(2)).Code)
	rec = s.do(t, http.MethodPost, "/api/checkout/receipt.pdf", "c1", validCheckout())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestCheckoutHandler_PlaceOrder(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/cart/items", "c1", addCards(2)).Code)

	rec := s.do(t, http.MethodPost, "/api/checkout", "c1", validCheckout())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	result := decodeBody[services.CheckoutResult](t, rec)
	assert.NotEmpty(t, result.Order.Reference)
	assert.True(t, result.Order.Total.Equal(decimal.NewFromInt(4280)))
	assert.Equal(t, "tok-"+result.Order.Reference, result.Payment.Token)

	rec = s.do(t, http.MethodGet, "/api/cart", "c1", nil)
	assert.Empty(t, decodeBody[models.CartState](t, rec).Items)
}

func TestCheckoutHandler_PlaceOrderErrors(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodPost, "/api/checkout", "c1", validCheckout())
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid customer", func(t *testing.T) {
		s := newTestServer(t)
		req := validCheckout()
		req["customer"] = map[string]string{"firstName": "Wanjiru", "email": "not-an-email"}

		rec := s.do(t, http.MethodPost, "/api/checkout", "c1", req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody[renderer.ErrorBody](t, rec)
		assert.Contains(t, body.Errors, "email")
		assert.Contains(t, body.Errors, "lastName")
	})

	t.Run("unsupported payment", func(t *testing.T) {
		s := newTestServer(t)
		req := validCheckout()
		req["paymentMethod"] = "cheque"

		rec := s.do(t, http.MethodPost, "/api/checkout", "c1", req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody[renderer.ErrorBody](t, rec).Errors, "paymentMethod")
	})

	t.Run("gateway failure keeps cart", func(t *testing.T) {
		s := newTestServer(t)
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/cart/items", "c1", addCards(1)).Code)
		s.gateway.err = errGatewayDown

		rec := s.do(t, http.MethodPost, "/api/checkout", "c1", validCheckout())
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		rec = s.do(t, http.MethodGet, "/api/cart", "c1", nil)
		assert.Len(t, decodeBody[models.CartState](t, rec).Items, 1)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(services.ErrEmptyCart))
	assert.Equal(t, http.StatusBadGateway, statusFor(errors.Join(services.ErrPaymentFailed, context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("disk full")))
}
