package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplier-directory/internal/api/dto"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/service"
)

// SettingsHandler exposes the controlled vocabulary lists.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	lists, err := h.settings.Load(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(lists)})
}

// AddEntry handles POST /admin/settings/:list.
func (h *SettingsHandler) AddEntry(c *fiber.Ctx) error {
	var req dto.SettingsEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	list := domain.SettingsList(c.Params("list"))
	if err := h.settings.AddEntry(c.UserContext(), list, req.Value); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"status": "added"}})
}

// RemoveEntry handles DELETE /admin/settings/:list.
func (h *SettingsHandler) RemoveEntry(c *fiber.Ctx) error {
	var req dto.SettingsEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	list := domain.SettingsList(c.Params("list"))
	if err := h.settings.RemoveEntry(c.UserContext(), list, req.Value); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "removed"}})
}
