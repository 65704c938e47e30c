package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/camden-git/personsbackend/health"
	"github.com/camden-git/personsbackend/metrics"
)

// RouterOptions carries everything the HTTP surface is built from.
type RouterOptions struct {
	Persons        *PersonHandler
	Health         health.Indicator
	MetricsHandler http.Handler            // optional scrape endpoint
	RequestMetrics *metrics.RequestMetrics // when set, every request is counted
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)
	if opts.RequestMetrics != nil {
		r.Use(opts.RequestMetrics.Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		RegisterPersonRoutes(r, opts.Persons)
	})

	if opts.Health != nil {
		r.Get("/health", health.Handler(opts.Health))
	}
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	return r
}
