package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplier-directory/internal/api/http/handlers"
	"github.com/spec-kit/supplier-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Suppliers      *handlers.SuppliersHandler
	AdminSuppliers *handlers.AdminSuppliersHandler
	AdminUsers     *handlers.AdminUsersHandler
	Settings       *handlers.SettingsHandler
	Presence       *handlers.PresenceHandler
	AuthMiddleware *auth.AuthMiddleware
	// UploadsDir, when set, is served under /files for document links.
	UploadsDir string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/signup", cfg.Auth.SignUp)

	if cfg.UploadsDir != "" {
		app.Static("/files", cfg.UploadsDir)
	}

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	authed.Get("/suppliers", cfg.Suppliers.List)
	authed.Post("/suppliers", cfg.Suppliers.Submit)
	authed.Get("/suppliers/rejected/mine", cfg.Suppliers.RejectedMine)

	authed.Get("/settings", cfg.Settings.Get)

	authed.Post("/presence/touch", cfg.Presence.Touch)
	authed.Get("/presence/online", cfg.Presence.Online)

	admin := authed.Group("/admin", auth.RequireAdmin())

	admin.Post("/suppliers", cfg.AdminSuppliers.Create)
	admin.Delete("/suppliers", cfg.AdminSuppliers.BulkDelete)
	admin.Get("/suppliers/pending", cfg.AdminSuppliers.ListPending)
	admin.Post("/suppliers/pending/:name/approve", cfg.AdminSuppliers.Approve)
	admin.Post("/suppliers/pending/:name/reject", cfg.AdminSuppliers.Reject)

	admin.Get("/users/pending", cfg.AdminUsers.ListPending)
	admin.Post("/users/pending/:username/approve", cfg.AdminUsers.Approve)
	admin.Post("/users/pending/:username/reject", cfg.AdminUsers.Reject)
	admin.Get("/users", cfg.AdminUsers.List)
	admin.Post("/users", cfg.AdminUsers.Create)
	admin.Put("/users/:username", cfg.AdminUsers.Update)
	admin.Delete("/users/:username", cfg.AdminUsers.Delete)

	admin.Post("/settings/:list", cfg.Settings.AddEntry)
	admin.Delete("/settings/:list", cfg.Settings.RemoveEntry)
}
