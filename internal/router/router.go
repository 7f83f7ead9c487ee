package router

import (
	"net/http"

	"products-api/internal/handler"
	"products-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options holds optional router features.
type Options struct {
	// Metrics enables request instrumentation when non-nil.
	Metrics *middleware.Metrics
	// Gatherer is exposed at MetricsPath when both are set.
	Gatherer    prometheus.Gatherer
	MetricsPath string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(productHandler *handler.ProductHandler, logger zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS -> Metrics
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if opts.Gatherer != nil && opts.MetricsPath != "" {
		r.Method(http.MethodGet, opts.MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	productHandler.RegisterRoutes(r)

	return r
}
