package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/user-admin-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Admin routes sit behind the bearer
// middleware and the admin role gate, in that order, so a missing or
// non-admin credential never reaches handler logic.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/v1")
	v1.Get("/test", cfg.Auth.Test)
	v1.Post("/signup", cfg.Auth.Signup)
	v1.Post("/login", cfg.Auth.Login)

	authed := v1.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Get("/user", cfg.Auth.Me)
	authed.Put("/user", cfg.Auth.UpdateProfile)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/", cfg.Admin.Me)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/admins", cfg.Admin.ListAdmins)
	admin.Get("/adminsAndUsers", cfg.Admin.ListAdminsAndUsers)
	admin.Get("/totalUsers", cfg.Admin.TotalUsers)
	admin.Get("/totalAdmins", cfg.Admin.TotalAdmins)
	admin.Get("/totalAdminsAndUsers", cfg.Admin.TotalAdminsAndUsers)
	admin.Post("/user", cfg.Admin.CreateUser)
	admin.Put("/user/:id", cfg.Admin.UpdateUser)
	admin.Delete("/user/:id", cfg.Admin.DeleteUser)
}
