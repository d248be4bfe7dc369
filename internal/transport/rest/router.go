package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mercadinho/gestao/internal/assistant"
	"github.com/mercadinho/gestao/internal/auth"
	"github.com/mercadinho/gestao/internal/category"
	"github.com/mercadinho/gestao/internal/client"
	"github.com/mercadinho/gestao/internal/employee"
	"github.com/mercadinho/gestao/internal/product"
	"github.com/mercadinho/gestao/internal/sale"
	"github.com/mercadinho/gestao/internal/session"
	"github.com/mercadinho/gestao/internal/supplier"
	"github.com/mercadinho/gestao/internal/transport/middleware"
	"github.com/mercadinho/gestao/internal/transport/swagger"
	"github.com/mercadinho/gestao/internal/web"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Product   *product.Handler
	Category  *category.Handler
	Client    *client.Handler
	Supplier  *supplier.Handler
	Employee  *employee.Handler
	Sale      *sale.Handler
	Assistant *assistant.Handler
	Pages     *web.Pages
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, sessions *session.Manager, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())
	router.Handle("/static/*", web.StaticHandler())

	// Auth surface: forms, redirects and flash notices.
	router.Get("/login", h.Auth.LoginPage)
	router.Post("/login", h.Auth.Login)
	router.Get("/logout", h.Auth.Logout)
	router.Get("/esqueci_senha", h.Auth.ForgotPasswordPage)
	router.Post("/esqueci_senha", h.Auth.ForgotPassword)
	router.Get("/resetar/{token}", h.Auth.ResetPasswordPage)
	router.Post("/resetar/{token}", h.Auth.ResetPassword)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Pages behind the session gate.
	router.Group(func(pr chi.Router) {
		pr.Use(sessions.RequireSession)

		pr.Get("/dashboard", h.Pages.Page("dashboard"))
		pr.Get("/estoque", h.Pages.Page("estoque"))
		pr.Get("/vendas", h.Pages.Page("vendas"))
		pr.Get("/financeiro", h.Pages.Page("financeiro"))
		pr.Get("/administracao", h.Pages.Page("administracao"))
		pr.Get("/cadastros", h.Pages.Page("cadastros"))
		pr.Get("/relatorios", h.Pages.ReportsPage)
		pr.Get("/assistente", h.Pages.Page("assistente"))
		pr.Get("/about", h.Pages.Page("about"))
		pr.Get("/controledevalidade", h.Pages.Page("controledevalidade"))
	})

	// JSON API consumed by the frontend scripts.
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/produtos", func(sr chi.Router) {
			sr.Get("/", h.Product.ListProducts)
			sr.Post("/", h.Product.CreateProduct)
			sr.Put("/{id}", h.Product.UpdateProduct)
			sr.Delete("/{id}", h.Product.DeleteProduct)
		})

		r.Route("/categorias", func(sr chi.Router) {
			sr.Get("/", h.Category.ListCategories)
			sr.Post("/", h.Category.CreateCategory)
			sr.Delete("/{id}", h.Category.DeleteCategory)
		})

		r.Route("/clientes", func(sr chi.Router) {
			sr.Get("/", h.Client.ListClients)
			sr.Post("/", h.Client.CreateClient)
			sr.Put("/{id}", h.Client.UpdateClient)
			sr.Delete("/{id}", h.Client.DeleteClient)
		})

		r.Route("/fornecedores", func(sr chi.Router) {
			sr.Get("/", h.Supplier.ListSuppliers)
			sr.Post("/", h.Supplier.CreateSupplier)
			sr.Put("/{id}", h.Supplier.UpdateSupplier)
			sr.Delete("/{id}", h.Supplier.DeleteSupplier)
		})

		r.Route("/funcionarios", func(sr chi.Router) {
			sr.Get("/", h.Employee.ListEmployees)
			sr.Post("/", h.Employee.CreateEmployee)
			sr.Put("/{id}", h.Employee.UpdateEmployee)
			sr.Delete("/{id}", h.Employee.DeleteEmployee)
		})

		r.Route("/vendas", func(sr chi.Router) {
			sr.Get("/", h.Sale.ListSales)
			sr.Post("/", h.Sale.CreateSale)
			sr.Delete("/{id}", h.Sale.DeleteSale)
		})
	})

	router.Post("/chat", h.Assistant.Chat)
}
