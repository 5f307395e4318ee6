/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

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

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/checks", func(r chi.Router) {
			r.Get("/", h.ListChecks)
			r.Post("/", h.CreateCheck)
			r.Get("/{id}", h.GetCheck)
			r.Put("/{id}", h.EditCheck)
			r.Post("/{id}/extend", h.ExtendCheck)
			r.Post("/{id}/toggle", h.TogglePaid)
		})

		r.Get("/kpis", h.GetKPIs)
		r.Put("/settings/future-days", h.SetFutureDays)

		r.Route("/referrers", func(r chi.Router) {
			r.Get("/", h.ListReferrers)
			r.Post("/", h.AddReferrer)
		})

		r.Post("/preview", h.PreviewProfit)
		r.Get("/export/csv", h.ExportCSV)
		r.Get("/export/json", h.ExportJSON)
		r.Post("/reset", h.Reset)
		r.Get("/health", h.Health)
	})

	return r
}
