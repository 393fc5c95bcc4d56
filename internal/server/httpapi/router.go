package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterOptions tunes cross-cutting behaviour of the router.
type RouterOptions struct {
	AllowedOrigins []string
}

// NewRouter builds the full REST API. Everything under /api except the two
// user endpoints requires a bearer token.
func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/ping", h.ping)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", h.register)
		r.Post("/users/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.listCategories)
				r.Post("/", h.createCategory)

				r.Route("/{categoryId}", func(r chi.Router) {
					r.Get("/", h.getCategory)
					r.Put("/", h.updateCategory)
					r.Delete("/", h.deleteCategory)

					r.Route("/transactions", func(r chi.Router) {
						r.Get("/", h.listTransactions)
						r.Post("/", h.createTransaction)
						r.Get("/{transactionId}", h.getTransaction)
						r.Put("/{transactionId}", h.updateTransaction)
						r.Delete("/{transactionId}", h.deleteTransaction)
					})
				})
			})

			r.Get("/budget", h.getBudget)
			r.Put("/budget", h.setBudget)
		})
	})

	return otelhttp.NewHandler(r, "expensetracker",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
