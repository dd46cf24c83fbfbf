// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sweetdelights/storefront/internal/config"
	"github.com/sweetdelights/storefront/internal/handler"
	"github.com/sweetdelights/storefront/internal/middleware"
	"github.com/sweetdelights/storefront/internal/model"
)

// Handlers groups everything Register needs. All fields are required.
type Handlers struct {
	Auth       *handler.AuthHandler
	Catalog    *handler.CatalogHandler
	Cart       *handler.CartHandler
	Orders     *handler.OrdersHandler
	Newsletter *handler.NewsletterHandler
}

// Register installs every route. Browsing and signup/login are public; the
// cart, order history and logout need a valid access token; catalog
// management additionally needs the admin role. rdb may be nil, which turns
// the auth rate limiter into a pass-through.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Public: account creation and sign-in, rate limited per IP and route.
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	auth := e.Group("/v1/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// Public: catalog browsing and the newsletter form.
	e.GET("/v1/products", h.Catalog.List)
	e.GET("/v1/products/:id", h.Catalog.Get)
	e.POST("/v1/newsletter/subscribe", h.Newsletter.Subscribe)

	// Authenticated: anything touching the session, the cart or orders.
	v1 := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	v1.POST("/auth/logout", h.Auth.Logout)
	v1.GET("/me", h.Auth.Me)

	v1.GET("/cart", h.Cart.Get)
	v1.POST("/cart/items", h.Cart.AddItem)
	v1.PATCH("/cart/items/:id", h.Cart.SetQuantity)
	v1.DELETE("/cart/items/:id", h.Cart.RemoveItem)
	v1.DELETE("/cart", h.Cart.Clear)
	v1.POST("/cart/promo", h.Cart.ApplyPromo)
	v1.POST("/cart/checkout", h.Cart.Checkout)

	v1.GET("/orders", h.Orders.List)

	// Admin: catalog management.
	admin := v1.Group("/products", middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.Catalog.Create)
	admin.DELETE("/:id", h.Catalog.Delete)
}
