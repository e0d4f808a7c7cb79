package routes

import (
	"net/http"

	"github.com/de-scientist/brandson/app/handlers"
	"github.com/de-scientist/brandson/app/middlewares"
	"github.com/de-scientist/brandson/app/repositories"
	"github.com/de-scientist/brandson/app/services"
	"github.com/de-scientist/brandson/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type Dependencies struct {
	DB       handlers.Pinger
	Products repositories.ProductRepository
	Carts    *services.CartService
	Checkout *services.CheckoutService
	Sessions sessions.SessionStore
	Render   *render.Render
	Logger   *zap.Logger

	// CSRFKey enables CSRF protection on mutating requests when set.
	CSRFKey       []byte
	SecureCookies bool
}

func NewRouter(d Dependencies) http.Handler {
	router := mux.NewRouter()
	validate := handlers.NewValidator()

	router.HandleFunc("/healthz", handlers.NewHealthHandler(d.DB, d.Render).Healthz).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.CartSessionMiddleware(d.Sessions, d.Logger))
	if len(d.CSRFKey) > 0 {
		api.HandleFunc("/csrf-token", func(w http.ResponseWriter, r *http.Request) {
			d.Render.JSON(w, http.StatusOK, map[string]string{"token": csrf.Token(r)})
		}).Methods(http.MethodGet)
	}

	handlers.NewProductHandler(d.Products, d.Render, d.Logger).Register(api)
	handlers.NewCartHandler(d.Carts, d.Render, validate, d.Logger).Register(api)
	handlers.NewCheckoutHandler(d.Checkout, d.Render, validate, d.Logger).Register(api)

	var handler http.Handler = router
	if len(d.CSRFKey) > 0 {
		handler = csrf.Protect(d.CSRFKey,
			csrf.Secure(d.SecureCookies),
			csrf.Path("/"),
			csrf.RequestHeader("X-CSRF-Token"),
		)(handler)
	}
	handler = middlewares.MethodOverrideMiddleware(handler)
	handler = middlewares.RequestLogger(d.Logger)(handler)
	handler = middlewares.RequestIDMiddleware(handler)
	return middlewares.Recoverer(d.Logger)(handler)
}
