package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	util "github.com/spec-kit/supplier-directory/pkg/util"
)

const sessionLocalKey = "session"

// AuthMiddleware resolves the bearer token into an explicit Session and
// stores it on the request context.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs the middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle authenticates the request.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return util.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized("invalid authorization header")
	}

	session, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return util.NewUnauthorized("invalid or expired token")
	}

	c.Locals(sessionLocalKey, session)
	return c.Next()
}

// SessionFromContext retrieves the Session placed by Handle.
func SessionFromContext(c *fiber.Ctx) (Session, bool) {
	session, ok := c.Locals(sessionLocalKey).(Session)
	return session, ok
}
