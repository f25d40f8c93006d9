/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for internal tools

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

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/holidays/{year}", h.GetHolidays)

		r.Route("/calculations", func(r chi.Router) {
			r.Post("/overtime", h.CalculateOvertime)
			r.Post("/shift", h.CalculateShift)
			r.Post("/wage", h.CalculateWage)
			r.Post("/apprentice", h.CalculateApprenticeWage)
			r.Post("/special-allowance", h.CalculateSpecialAllowance)
			r.Post("/severance", h.CalculateSeverance)
			r.Post("/childcare", h.CalculateChildCare)
		})

		r.Route("/employees/{id}", func(r chi.Router) {
			r.Get("/timebank", h.GetTimeBankBalance)
			r.Post("/timebank/add", h.AddToTimeBank)
			r.Post("/timebank/take", h.TakeFromTimeBank)

			r.Get("/freedom", h.GetFreedomBalance)
			r.Post("/freedom/deposit", h.DepositFreedom)
			r.Post("/freedom/withdraw", h.WithdrawFreedom)
		})
	})

	return r
}
