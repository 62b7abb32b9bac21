package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jaakkopy/todo-backend/internal/auth"
	"github.com/jaakkopy/todo-backend/internal/observability"
	"github.com/jaakkopy/todo-backend/internal/platform/httpx"
	"github.com/jaakkopy/todo-backend/internal/todo"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	AuthHandler *auth.Handler
	TodoHandler *todo.Handler
	// Gate is the identity-gate middleware protecting authenticated routes.
	Gate    func(http.Handler) http.Handler
	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	unknownEndpoint := func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusNotFound, map[string]string{"error": "unknown endpoint"})
	}
	r.NotFound(unknownEndpoint)
	r.MethodNotAllowed(unknownEndpoint)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r, params.Gate)
		r.Route("/todos", func(r chi.Router) {
			r.Use(params.Gate)
			params.TodoHandler.MountRoutes(r)
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
