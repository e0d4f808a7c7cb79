package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/repositories"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const (
	defaultPerPage = 12
	maxPerPage     = 100
)

type ProductHandler struct {
	products repositories.ProductRepository
	render   *render.Render
	logger   *zap.Logger
}

func NewProductHandler(products repositories.ProductRepository, render *render.Render, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products, render, logger}
}

type productPage struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalPages int              `json:"totalPages"`
}

func (h *ProductHandler) Register(r *mux.Router) {
	r.HandleFunc("/products", h.Products).Methods(http.MethodGet)
	r.HandleFunc("/products/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.Categories).Methods(http.MethodGet)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.Categories(r.Context())
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	if categories == nil {
		categories = []repositories.CategoryCount{}
	}
	h.render.JSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	products, total, err := h.products.List(r.Context(), r.URL.Query().Get("category"), perPage, (page-1)*perPage)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, newProductPage(products, total, page, perPage))
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		renderer.Error(h.render, w, http.StatusBadRequest, "q is required")
		return
	}
	page, perPage := pagination(r)
	products, total, err := h.products.Search(r.Context(), query, perPage, (page-1)*perPage)
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, newProductPage(products, total, page, perPage))
}

// GetProduct accepts either a product id or its slug.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.products.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrProductNotFound) {
		product, err = h.products.GetBySlug(r.Context(), id)
	}
	if err != nil {
		respondError(h.render, h.logger, w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func newProductPage(products []models.Product, total int64, page, perPage int) productPage {
	if products == nil {
		products = []models.Product{}
	}
	return productPage{
		Products:   products,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}
}
