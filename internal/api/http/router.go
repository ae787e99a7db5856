package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role gates mirror the access table:
// creation is USER/MANAGER, assignment and status changes are
// MANAGER/SUPPORT, deletion and account provisioning are MANAGER only.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleManager))
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", auth.RequireRole(domain.RoleUser, domain.RoleManager), cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id/assign", auth.RequireRole(domain.RoleManager, domain.RoleSupport), cfg.Tickets.Assign)
	tickets.Patch("/:id/status", auth.RequireRole(domain.RoleManager, domain.RoleSupport), cfg.Tickets.UpdateStatus)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleManager), cfg.Tickets.Delete)

	tickets.Post("/:id/comments", cfg.Comments.Create)
	tickets.Get("/:id/comments", cfg.Comments.List)

	comments := app.Group("/comments", cfg.AuthMiddleware.Handle)
	comments.Patch("/:id", cfg.Comments.Update)
	comments.Delete("/:id", cfg.Comments.Delete)
}
