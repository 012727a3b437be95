package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/api/middleware"
	"github.com/ktnkk/crosslist/internal/auth"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Health      *HealthHandler
	Token       *TokenHandler
	Users       *UserHandler
	Settings    *SettingHandler
	Listings    *ListingHandler
	ProductData *ProductDataHandler
	Shipping    *ShippingHandler
}

// RegisterRoutes mounts all API routes on e. Everything under /api/v1
// except token issuance and user signup requires a Bearer token.
func RegisterRoutes(e *echo.Echo, h *Handlers, tokens *auth.TokenService) {
	e.GET("/healthz", h.Health.Healthz)
	e.GET("/readyz", h.Health.Readyz)

	v1 := e.Group("/api/v1")
	v1.POST("/token", h.Token.Create)
	v1.POST("/users", h.Users.Create)

	authed := v1.Group("", middleware.JWTAuth(tokens))
	authed.GET("/users", h.Users.List)
	authed.GET("/users/:id", h.Users.Get)
	authed.PUT("/users/:id", h.Users.Update)
	authed.DELETE("/users/:id", h.Users.Delete)

	authed.GET("/settings", h.Settings.Get)
	authed.PUT("/settings", h.Settings.Update)

	authed.POST("/product-register", h.Listings.Register)
	authed.GET("/items/:id", h.Listings.Item)

	authed.POST("/product-data", h.ProductData.Create)

	authed.GET("/shipping-services", h.Shipping.Services)
	authed.POST("/shipping-calculator", h.Shipping.Quote)
}
