package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/de-scientist/brandson/app/utils/renderer"
	"github.com/unrolled/render"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	render *render.Render
}

func NewHealthHandler(db Pinger, render *render.Render) *HealthHandler {
	return &HealthHandler{db: db, render: render}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			renderer.Error(h.render, w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
