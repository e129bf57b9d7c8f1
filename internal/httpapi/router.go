package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/oktaviandwip/musalabel-storefront/internal/session"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Products  *ProductHandler
	Cart      *CartHandler
	Checkout  *CheckoutHandler
	Orders    *OrdersHandler
	Dashboard *DashboardHandler
}

// NewRouter builds the storefront API with the shared middleware stack.
func NewRouter(h Handlers, sessions session.Store, timeout time.Duration, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(SessionMiddleware(sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/signup", h.Auth.Signup)
			r.Post("/forgot-password", h.Auth.SendPIN)
			r.Post("/forgot-password/verify", h.Auth.VerifyPIN)
			r.Patch("/password", h.Auth.ResetPassword)
			r.With(RequireAuth).Post("/logout", h.Auth.Logout)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/", h.Profile.Me)
			r.Patch("/phone-address", h.Profile.UpdateContact)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Get("/{slug}", h.Products.Detail)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Delete("/items", h.Cart.RemoveItem)
			r.Post("/items/select", h.Cart.ToggleSelect)
			r.Post("/select-all", h.Cart.SelectAll)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(RequireAuth)
			r.Post("/", h.Checkout.Begin)
			r.Post("/buy-now", h.Checkout.BuyNow)
			r.Get("/", h.Checkout.Current)
			r.Patch("/", h.Checkout.UpdateDraft)
			r.Post("/submit", h.Checkout.Submit)
			r.Delete("/", h.Checkout.Abandon)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/", h.Orders.List)
			r.Get("/counts", h.Orders.Counts)
			r.Post("/{purchase_id}/cancel", h.Orders.Cancel)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Post("/products", h.Products.Create)
			r.Patch("/products/{id}", h.Products.Update)
			r.Delete("/products/{id}", h.Products.Delete)
			r.Post("/orders/{purchase_id}/confirm-shipped", h.Orders.ConfirmShipped)
			r.Post("/orders/{purchase_id}/confirm-arrived", h.Orders.ConfirmArrived)
			r.Get("/dashboard", h.Dashboard.Series)
		})
	})

	return r
}
