package router

import (
	"net/http"

	"product-catalog/internal/handler"
	"product-catalog/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configures optional router features.
type Options struct {
	// Metrics enables request instrumentation and the /metrics endpoint.
	Metrics bool
	// Registry receives the HTTP collectors; the default registry when nil.
	Registry *prometheus.Registry
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	healthHandler *handler.HealthHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("GET /health", healthHandler.Check)
	mux.HandleFunc("GET /api/health", healthHandler.Check)

	// Product routes
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("POST /api/products", productHandler.Create)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("PUT /api/products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /api/products/{id}", productHandler.Delete)

	var handler http.Handler = mux

	if opts.Metrics {
		var (
			registerer prometheus.Registerer = prometheus.DefaultRegisterer
			gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
		)
		if opts.Registry != nil {
			registerer, gatherer = opts.Registry, opts.Registry
		}

		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		handler = middleware.NewMetrics(registerer).Middleware(handler)
	}

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS -> Metrics.
	// Metrics stays below RequestID, which copies the request, so it reads the
	// pattern the mux records on the same *http.Request.
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
