package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/foodie-express/internal/auth"
	"github.com/Lixing-Zhang/foodie-express/internal/middleware"
	"github.com/Lixing-Zhang/foodie-express/internal/service"
	"github.com/Lixing-Zhang/foodie-express/internal/session"
)

// RouterConfig carries everything the HTTP routes are served from
type RouterConfig struct {
	Catalog        *service.CatalogService
	Carts          *service.CartService
	Checkout       *service.CheckoutService
	Sessions       *session.Manager
	Auth           *auth.Authenticator
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter builds the storefront API
func NewRouter(cfg RouterConfig, log *slog.Logger) http.Handler {
	healthHandler := NewHealthHandler(cfg.Sessions, log)
	restaurantHandler := NewRestaurantHandler(cfg.Catalog, log)
	sessionHandler := NewSessionHandler(cfg.Sessions, log)
	authHandler := NewAuthHandler(cfg.Auth, log)
	cartHandler := NewCartHandler(cfg.Carts, log)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, log)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.SessionHeader},
		ExposedHeaders:   []string{middleware.SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/restaurants", restaurantHandler.ListRestaurants)
		r.Get("/restaurants/{restaurantId}", restaurantHandler.GetRestaurant)
		r.Get("/restaurants/{restaurantId}/menu", restaurantHandler.GetMenu)
		r.Get("/menu/{itemId}", restaurantHandler.GetMenuItem)

		r.Post("/sessions", sessionHandler.Create)

		// Session-scoped endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(cfg.Sessions))

			r.Delete("/sessions", sessionHandler.End)

			r.Post("/auth/signin", authHandler.SignIn)
			r.Post("/auth/signup", authHandler.SignUp)
			r.Post("/auth/signout", authHandler.SignOut)
			r.Get("/auth/me", authHandler.Me)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{itemId}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{itemId}", cartHandler.RemoveItem)

			r.Post("/checkout", checkoutHandler.PlaceOrder)
		})
	})

	return r
}
