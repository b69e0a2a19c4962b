package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplier-directory/internal/api/dto"
	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/service"
)

// PresenceHandler exposes the heartbeat and online-set endpoints.
type PresenceHandler struct {
	presence *service.PresenceService
}

// NewPresenceHandler constructs handler.
func NewPresenceHandler(presence *service.PresenceService) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

// Touch handles POST /presence/touch.
func (h *PresenceHandler) Touch(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	if err := h.presence.Touch(c.UserContext(), session); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}

// Online handles GET /presence/online.
func (h *PresenceHandler) Online(c *fiber.Ctx) error {
	count, names, err := h.presence.ListOnline(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OnlineResponse{Count: count, Names: names}})
}
