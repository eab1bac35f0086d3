package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-admin-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Orders         *handlers.OrdersHandler
	Admins         *handlers.AdminsHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Route-level gates mirror the central
// policy; services consult the same policy again on every call.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Get("/products", auth.RequireAction(auth.ActionViewProducts), cfg.Products.List)
	api.Get("/products/:id", auth.RequireAction(auth.ActionViewProducts), cfg.Products.Get)
	api.Post("/products", auth.RequireAction(auth.ActionCreateProduct), cfg.Products.Create)
	api.Put("/products/:id", auth.RequireAction(auth.ActionUpdateProduct), cfg.Products.Update)
	api.Delete("/products/:id", auth.RequireAction(auth.ActionDeleteProduct), cfg.Products.Delete)

	api.Get("/categories", auth.RequireAction(auth.ActionViewProducts), cfg.Products.ListCategories)

	api.Get("/orders", auth.RequireAction(auth.ActionViewOrders), cfg.Orders.List)
	api.Get("/orders/:id", auth.RequireAction(auth.ActionViewOrders), cfg.Orders.Get)

	api.Get("/admins", auth.RequireAction(auth.ActionViewAdmins), cfg.Admins.List)
	api.Post("/admins", auth.RequireAction(auth.ActionInviteAdmin), cfg.Admins.Invite)
	api.Delete("/admins/:id", auth.RequireAction(auth.ActionDeleteUser), cfg.Admins.Delete)

	api.Get("/stats", auth.RequireAction(auth.ActionViewOrders), cfg.Stats.Overview)
}
