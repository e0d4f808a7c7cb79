package handlers

import (
	"net/http"
	"strconv"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
	render   *render.Render
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout *services.CheckoutService, render *render.Render, validate *validator.Validate, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		render:   render,
		validate: validate,
		logger:   logger,
	}
}

type checkoutRequest struct {
	Customer       models.CustomerInfo `json:"customer"`
	ShippingMethod string              `json:"shippingMethod"`
	PaymentMethod  string              `json:"paymentMethod" validate:"required,oneof=mpesa card bank_transfer cash_on_pickup"`
	Notes          string              `json:"notes" validate:"max=1000"`
}

func (c checkoutRequest) toService() services.CheckoutRequest {
	return services.CheckoutRequest{
		CustomerInfo:   c.Customer,
		ShippingMethod: c.ShippingMethod,
		PaymentMethod:  c.PaymentMethod,
		Notes:          c.Notes,
	}
}

func (h *CheckoutHandler) Register(r *mux.Router) {
	r.HandleFunc("/checkout/summary", h.Summary).Methods(http.MethodPost)
	r.HandleFunc("/checkout/receipt.pdf", h.Receipt).Methods(http.MethodPost)
	r.HandleFunc("/checkout", h.PlaceOrder).Methods(http.MethodPost)
}

// Summary previews totals for the chosen shipping method. Customer details are
// optional here and only validated when an order is placed.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.summary(w, r)
	if !ok {
		return
	}
	h.render.JSON(w, http.StatusOK, summary)
}

func (h *CheckoutHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.summary(w, r)
	if !ok {
		return
	}
	if summary.ItemCount == 0 {
		respondError(h.render, h.logger, w, r, services.ErrEmptyCart)
		return
	}

	pdf, err := services.RenderOrderSummaryPDF(summary)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="brandson-order-summary.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *CheckoutHandler) summary(w http.ResponseWriter, r *http.Request) (models.OrderSummary, bool) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return models.OrderSummary{}, false
	}
	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondInvalid(h.render, w, err)
		return models.OrderSummary{}, false
	}

	summary, err := h.checkout.Summary(r.Context(), key, req.toService())
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return models.OrderSummary{}, false
	}
	return summary, true
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}

	result, err := h.checkout.PlaceOrder(r.Context(), key, req.toService())
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.logger.Info("order placed",
		zap.String("reference", result.Order.Reference),
		zap.String("payment_method", result.Order.PaymentMethod),
		zap.String("total", result.Order.Total.StringFixed(2)))
	h.render.JSON(w, http.StatusCreated, result)
}
