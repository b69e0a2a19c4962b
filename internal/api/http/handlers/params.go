package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// pathParam returns a route parameter with percent-encoding undone.
// Supplier and user names are routinely Hebrew, so the raw param is an
// escaped form that would never match a stored row.
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
