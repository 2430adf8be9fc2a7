package router

import (
	"net/http"

	"codebind/internal/handler"
	"codebind/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Static files are served from staticDir when it is not empty.
func New(
	codeHandler *handler.CodeHandler,
	gatherer prometheus.Gatherer,
	staticDir string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.CORS,
	)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", codeHandler.Validate)
		r.Post("/bind", codeHandler.Bind)
		r.Post("/delete-binding", codeHandler.DeleteBinding)
	})

	if staticDir != "" {
		logger.Info().Str("dir", staticDir).Msg("serving static files")
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
