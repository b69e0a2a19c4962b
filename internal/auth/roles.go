package auth

import (
	"github.com/gofiber/fiber/v2"

	util "github.com/spec-kit/supplier-directory/pkg/util"
)

// RequireAuthenticated ensures a session is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return util.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the session carries the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return util.NewUnauthorized("authentication required")
		}
		if !session.IsAdmin() {
			return util.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
