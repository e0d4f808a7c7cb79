package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_List(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		path      string
		wantTotal int64
		wantLen   int
		wantPages int
	}{
		{name: "all", path: "/api/products", wantTotal: 6, wantLen: 6, wantPages: 1},
		{name: "category", path: "/api/products?category=large-format", wantTotal: 2, wantLen: 2, wantPages: 1},
		{name: "paged", path: "/api/products?per_page=4&page=2", wantTotal: 6, wantLen: 2, wantPages: 2},
		{name: "empty category", path: "/api/products?category=signage", wantTotal: 0, wantLen: 0, wantPages: 0},
		{name: "search", path: "/api/products/search?q=Banner", wantTotal: 2, wantLen: 2, wantPages: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.path, "", nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			page := decodeBody[productPage](t, rec)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Len(t, page.Products, tt.wantLen)
			assert.Equal(t, tt.wantPages, page.TotalPages)
		})
	}
}

func TestProductHandler_SearchRequiresQuery(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_GetProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products/roll-up-banner", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decodeBody[models.Product](t, rec)
	assert.Equal(t, "Roll-up Banner", product.Name)
	assert.Len(t, product.Variants, 2)

	rec = s.do(t, http.MethodGet, "/api/products/posters", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", decodeBody[renderer.ErrorBody](t, rec).Status)
}

func TestProductHandler_Categories(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"category":"apparel","products":2},
		{"category":"large-format","products":2},
		{"category":"marketing","products":1},
		{"category":"stationery","products":1}
	]`, rec.Body.String())
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	ok := NewHealthHandler(pingFunc(func(context.Context) error { return nil }), renderer.New(false))
	rec := httptest.NewRecorder()
	ok.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := NewHealthHandler(pingFunc(func(context.Context) error { return errors.New("refused") }), renderer.New(false))
	rec = httptest.NewRecorder()
	down.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
