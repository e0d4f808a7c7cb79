package handlers

import (
	"net/http"

	"github.com/de-scientist/brandson/app/services"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts    *services.CartService
	render   *render.Render
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCartHandler(carts *services.CartService, render *render.Render, validate *validator.Validate, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		render:   render,
		validate: validate,
		logger:   logger,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

// quantity defaults to a single unit when the body leaves it out.
func (r addItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type setShippingRequest struct {
	Method string `json:"method" validate:"required"`
}

type containsResponse struct {
	InCart   bool `json:"inCart"`
	Quantity int  `json:"quantity"`
}

// Register mounts the cart routes on the /api subrouter.
func (h *CartHandler) Register(r *mux.Router) {
	r.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.ClearCart).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{lineID}", h.UpdateQuantity).Methods(http.MethodPatch)
	r.HandleFunc("/cart/items/{lineID}", h.RemoveItem).Methods(http.MethodDelete)
	r.HandleFunc("/cart/shipping", h.SetShipping).Methods(http.MethodPut)
	r.HandleFunc("/cart/contains", h.Contains).Methods(http.MethodGet)
	r.HandleFunc("/shipping-options", h.ShippingOptions).Methods(http.MethodGet)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	state, err := h.carts.GetCart(r.Context(), key)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, state)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}

	state, err := h.carts.AddItem(r.Context(), key, req.ProductID, req.VariantID, req.quantity())
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.logger.Debug("item added to cart",
		zap.String("cart_id", key),
		zap.String("product_id", req.ProductID),
		zap.String("variant_id", req.VariantID),
		zap.Int("quantity", req.quantity()))
	h.render.JSON(w, http.StatusOK, state)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	var req updateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}

	state, err := h.carts.UpdateQuantity(r.Context(), key, mux.Vars(r)["lineID"], *req.Quantity)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, state)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	state, err := h.carts.RemoveItem(r.Context(), key, mux.Vars(r)["lineID"])
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, state)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	state, err := h.carts.Clear(r.Context(), key)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, state)
}

func (h *CartHandler) SetShipping(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	var req setShippingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondInvalid(h.render, w, err)
		return
	}

	state, err := h.carts.SetShipping(r.Context(), key, req.Method)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, state)
}

// Contains answers both isInCart and the item quantity. Without variantId
// the quantity is summed over every variant of the product.
func (h *CartHandler) Contains(w http.ResponseWriter, r *http.Request) {
	key, err := cartKey(r)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		renderer.Error(h.render, w, http.StatusBadRequest, "productId is required")
		return
	}
	variantID := r.URL.Query().Get("variantId")

	in, err := h.carts.IsInCart(r.Context(), key, productID, variantID)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	qty, err := h.carts.ItemQuantity(r.Context(), key, productID, variantID)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, containsResponse{InCart: in, Quantity: qty})
}

func (h *CartHandler) ShippingOptions(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, h.carts.ShippingOptions())
}
