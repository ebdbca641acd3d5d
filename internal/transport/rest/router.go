package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/bakery-hub/internal/category"
	"github.com/frahmantamala/bakery-hub/internal/expense"
	"github.com/frahmantamala/bakery-hub/internal/inventory"
	"github.com/frahmantamala/bakery-hub/internal/summary"
	"github.com/frahmantamala/bakery-hub/internal/supplier"
	"github.com/frahmantamala/bakery-hub/internal/transport/middleware"
	"github.com/frahmantamala/bakery-hub/internal/transport/swagger"
	"github.com/frahmantamala/bakery-hub/internal/user"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth      *middleware.Authenticator
	User      *user.Handler
	Expense   *expense.Handler
	Category  *category.Handler
	Supplier  *supplier.Handler
	Inventory *inventory.Handler
	Summary   *summary.Handler
}

type Options struct {
	AllowedOrigins string
	OpenAPIDoc     []byte
}

func RegisterAllRoutes(router *chi.Mux, db *sqlx.DB, h Handlers, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(map[string]Check{"database": DatabaseCheck(db)})

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestLogger)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(opts.OpenAPIDoc)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)
			pr.Get("/categories", h.Category.GetCategories)
			pr.Get("/suppliers", h.Supplier.ListSuppliers)

			pr.Route("/expenses", func(er chi.Router) {
				er.Get("/", h.Expense.ListExpenses)
				er.Post("/", h.Expense.CreateExpense)
				er.Get("/{id}", h.Expense.GetExpense)
				er.Put("/{id}", h.Expense.UpdateExpense)
				er.Post("/{id}/approve", h.Expense.DecideExpense)
				er.Get("/{id}/history", h.Expense.GetHistory)
			})

			pr.Get("/summaries/daily", h.Summary.ListDaily)

			pr.Route("/inventory", func(ir chi.Router) {
				ir.Get("/", h.Inventory.ListItems)
				ir.Get("/{id}", h.Inventory.GetItem)
				ir.Post("/{id}/movements", h.Inventory.RecordMovement)
			})
		})
	})
}
