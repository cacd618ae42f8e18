/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. Metrics:    Prometheus request count and latency
  5. CORS:       Cross-origin requests

ROUTE GROUPS:
  /api/components       Field extraction
  /api/compose          Composition
  /api/add              Arithmetic
  /api/units/*          Unit boundaries
  /api/weekends/*       Weekend queries
  /api/profiles/*       Stored regions
  /api/calendars        Supported calendars
  /healthz              Readiness
  /metrics              Prometheus scrape endpoint

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string

	// Quiet disables the chi request logger.
	Quiet bool
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Middleware
	r.Use(middleware.RequestID)
	if !opts.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(h.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", h.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/calendars", h.ListCalendars)

		// Date routes
		r.Get("/components", h.GetComponents)
		r.Post("/compose", h.Compose)
		r.Post("/add", h.Add)

		// Unit boundary routes
		r.Route("/units/{unit}", func(r chi.Router) {
			r.Get("/start", h.StartOfUnit)
			r.Get("/end", h.EndOfUnit)
			r.Get("/range", h.UnitRange)
		})

		r.Get("/weekends/{which}", h.GetWeekend)

		// Profile routes
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", h.ListProfiles)
			r.Post("/", h.CreateProfile)
			r.Get("/{name}", h.GetProfile)
			r.Delete("/{name}", h.DeleteProfile)
		})
	})

	return r
}
