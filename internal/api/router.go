package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/handlers"
	"github.com/Cheertaboi/storefront-service/internal/api/middleware"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Tokens    middleware.TokenParser
	Auth      handlers.AuthService
	Catalog   handlers.CatalogService
	Campaigns handlers.CampaignService
	Cart      handlers.CartService
	Orders    handlers.OrderService
	Users     handlers.UserService
	Reports   handlers.ReportService
	Log       *zap.Logger
}

// NewRouter builds the HTTP router for the storefront. Admin routes only
// require a signed-in caller here; the services check the admin role.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Log))
	r.Use(chimw.Recoverer)

	authH := handlers.NewAuthHandler(d.Auth, d.Log)
	catalogH := handlers.NewCatalogHandler(d.Catalog, d.Log)
	campaignH := handlers.NewCampaignHandler(d.Campaigns, d.Log)
	cartH := handlers.NewCartHandler(d.Cart, d.Log)
	orderH := handlers.NewOrderHandler(d.Orders, d.Log)
	userH := handlers.NewUserHandler(d.Users, d.Log)
	reportH := handlers.NewReportHandler(d.Reports, d.Log)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Tokens, d.Log))

		// Public endpoints
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Get("/products", catalogH.ListProducts)
		r.Get("/products/{id}", catalogH.GetProduct)
		r.Get("/categories", catalogH.ListCategories)
		r.Get("/campaigns/active", campaignH.ListActive)
		r.Post("/campaigns/quote", catalogH.Quote)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Log))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartH.Get)
				r.Get("/count", cartH.Count)
				r.Post("/items", cartH.AddItem)
				r.Patch("/items/{id}", cartH.UpdateItem)
				r.Delete("/items/{id}", cartH.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderH.Checkout)
				r.Get("/mine", orderH.Mine)
				r.Get("/{id}", orderH.Get)
			})

			// Admin endpoints
			r.Route("/admin", func(r chi.Router) {
				r.Post("/products", catalogH.CreateProduct)
				r.Post("/products/images", catalogH.UploadImage)
				r.Put("/products/{id}", catalogH.UpdateProduct)
				r.Delete("/products/{id}", catalogH.DeleteProduct)

				r.Post("/categories", catalogH.CreateCategory)
				r.Put("/categories/{id}", catalogH.RenameCategory)
				r.Delete("/categories/{id}", catalogH.DeleteCategory)

				r.Get("/campaigns", campaignH.List)
				r.Post("/campaigns", campaignH.Create)
				r.Get("/campaigns/{id}", campaignH.Get)
				r.Put("/campaigns/{id}", campaignH.Update)
				r.Delete("/campaigns/{id}", campaignH.Delete)
				r.Patch("/campaigns/{id}/status", campaignH.UpdateStatus)

				r.Get("/orders", orderH.List)
				r.Patch("/orders/{id}/status", orderH.UpdateStatus)

				r.Get("/users", userH.List)
				r.Get("/users/{id}", userH.Get)
				r.Patch("/users/{id}/role", userH.UpdateRole)

				r.Get("/reports/daily", reportH.Daily)
			})
		})
	})

	return r
}
