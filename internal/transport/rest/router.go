package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ErdhyErnando/moneta/internal/auth"
	"github.com/ErdhyErnando/moneta/internal/category"
	"github.com/ErdhyErnando/moneta/internal/dashboard"
	"github.com/ErdhyErnando/moneta/internal/record"
	"github.com/ErdhyErnando/moneta/internal/transport/middleware"
	"github.com/ErdhyErnando/moneta/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth            *auth.Handler
	Category        *category.Handler
	Income          *record.Handler
	Expense         *record.Handler
	StartingBalance *record.Handler
	Dashboard       *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// everything below is owner-scoped
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.Auth.GetCurrentUser)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.GetCategories)
				cr.Post("/", h.Category.CreateCategory)
			})

			mountRecordRoutes(pr, "/incomes", h.Income)
			mountRecordRoutes(pr, "/expenses", h.Expense)
			mountRecordRoutes(pr, "/starting-balances", h.StartingBalance)

			pr.Route("/dashboard", func(dr chi.Router) {
				dr.Get("/summary", h.Dashboard.GetSummary)
				dr.Get("/transactions", h.Dashboard.GetTransactions)
				dr.Get("/chart", h.Dashboard.GetChart)
				dr.Get("/categories", h.Dashboard.GetCategoryBreakdown)
				dr.Get("/monthly", h.Dashboard.GetMonthly)
			})
		})
	})
}

func mountRecordRoutes(r chi.Router, pattern string, handler *record.Handler) {
	r.Route(pattern, func(rr chi.Router) {
		rr.Get("/", handler.ListRecords)
		rr.Post("/", handler.CreateRecord)
		rr.Put("/{id}", handler.UpdateRecord)
		rr.Delete("/{id}", handler.DeleteRecord)
	})
}
