package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/de-scientist/brandson/app/db/seeders"
	"github.com/de-scientist/brandson/app/events"
	"github.com/de-scientist/brandson/app/helpers"
	"github.com/de-scientist/brandson/app/models/migrations"
	"github.com/de-scientist/brandson/app/repositories"
	"github.com/de-scientist/brandson/app/services"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCartHeader = "X-Test-Cart"

type stubGateway struct {
	err error
}

func (g *stubGateway) CreatePaymentIntent(_ context.Context, intent services.PaymentIntent) (*services.PaymentResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &services.PaymentResult{Provider: "stub", Status: services.PaymentStatusPending, Token: "tok-" + intent.Reference}, nil
}

type testServer struct {
	router  *mux.Router
	gateway *stubGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "handlers.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	_, err = seeders.DBSeed(context.Background(), db)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := zap.NewNop()
	rnd := renderer.New(false)
	validate := NewValidator()
	products := repositories.NewProductRepository(db)
	carts := services.NewCartService(repositories.NewMemoryCartStore(), products, log)
	gateway := &stubGateway{}
	checkout := services.NewCheckoutService(carts, gateway, events.NoopOrderPublisher{}, nil, log)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get(testCartHeader); key != "" {
				r = r.WithContext(context.WithValue(r.Context(), helpers.ContextKeyCartID, key))
			}
			next.ServeHTTP(w, r)
		})
	})
	NewCartHandler(carts, rnd, validate, log).Register(api)
	NewCheckoutHandler(checkout, rnd, validate, log).Register(api)
	NewProductHandler(products, rnd, log).Register(api)

	return &testServer{router: router, gateway: gateway}
}

func (s *testServer) do(t *testing.T, method, path, cartID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cartID != "" {
		req.Header.Set(testCartHeader, cartID)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var errGatewayDown = errors.New("gateway down")
