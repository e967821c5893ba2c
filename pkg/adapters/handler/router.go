package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/adapters/metrics"
	"github.com/wadjakorntonsri/weblinks/pkg/config"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

// NewRouter creates and configures the main application router.
// m may be nil, in which case /metrics is not served.
func NewRouter(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, controller ports.Controller, service ports.LinkService) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	ph := NewPageHandler(controller, log)
	h := NewHTTPHandler(service, log)
	mw := NewMiddleware(cfg, log)
	authHandler := NewAuthHandler(cfg, log)

	mux := http.NewServeMux()
	protect := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, mw.AuthMiddleware(fn))
	}

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	var obs RequestObserver
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
		obs = m
	}

	// Page
	mux.HandleFunc("GET /{$}", ph.Index)
	mux.HandleFunc("GET /links", ph.List)
	mux.HandleFunc("GET /links/new", ph.New)
	mux.HandleFunc("GET /links/{id}/{action}", ph.RowAction)
	protect("POST /links", ph.Save)
	protect("POST /links/{id}/delete", ph.ConfirmDelete)

	// API
	mux.HandleFunc("GET /api/v1/links", h.List)
	mux.HandleFunc("GET /api/v1/links/random", h.Random)
	mux.HandleFunc("GET /api/v1/links/{id}", h.Get)
	mux.HandleFunc("GET /api/v1/indexes/{index}/values", h.Values)
	protect("POST /api/v1/links", h.Create)
	protect("PUT /api/v1/links/{id}", h.Update)
	protect("DELETE /api/v1/links/{id}", h.Delete)

	return RequestID(mw.Recovery(mw.AccessLog(obs, mux)))
}
