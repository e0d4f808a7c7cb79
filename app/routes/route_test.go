package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/de-scientist/brandson/app/db/seeders"
	"github.com/de-scientist/brandson/app/events"
	"github.com/de-scientist/brandson/app/middlewares"
	"github.com/de-scientist/brandson/app/models/migrations"
	"github.com/de-scientist/brandson/app/repositories"
	"github.com/de-scientist/brandson/app/services"
	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/de-scientist/brandson/app/utils/sessions"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T, csrfKey []byte) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "routes.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	_, err = seeders.DBSeed(context.Background(), db)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	log := zap.NewNop()
	products := repositories.NewProductRepository(db)
	carts := services.NewCartService(repositories.NewGormCartStore(db), products, log)
	return NewRouter(Dependencies{
		DB:       sqlDB,
		Products: products,
		Carts:    carts,
		Checkout: services.NewCheckoutService(carts, services.NoopGateway{}, events.NoopOrderPublisher{}, nil, log),
		Sessions: sessions.NewCookieSessionStore(false, time.Hour, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32)),
		Render:   renderer.New(false),
		Logger:   log,
		CSRFKey:  csrfKey,
	})
}

func send(h http.Handler, method, path, body string, cookies []*http.Cookie, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := send(h, http.MethodGet, "/healthz", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))
}

func TestRouter_CartFollowsSessionCookie(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := send(h, http.MethodPost, "/api/cart/items", `{"productId":"flyers","variantId":"a5-100-pcs","quantity":2}`, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = send(h, http.MethodGet, "/api/cart", "", cookies, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"itemCount":2`)

	rec = send(h, http.MethodGet, "/api/cart", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"itemCount":0`)
}

func TestRouter_MethodOverride(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := send(h, http.MethodPost, "/api/cart/items", `{"productId":"flyers","variantId":"a5-100-pcs","quantity":1}`, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()

	rec = send(h, http.MethodPost, "/api/cart", "", cookies, map[string]string{"X-HTTP-Method-Override": "DELETE"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"itemCount":0`)
}

func TestRouter_CSRF(t *testing.T) {
	h := newTestRouter(t, securecookie.GenerateRandomKey(32))
	body := `{"productId":"flyers","variantId":"a5-100-pcs","quantity":1}`

	rec := send(h, http.MethodPost, "/api/cart/items", body, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = send(h, http.MethodGet, "/api/csrf-token", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	rec = send(h, http.MethodPost, "/api/cart/items", body, rec.Result().Cookies(), map[string]string{"X-CSRF-Token": resp.Token})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
