package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplier-directory/internal/api/dto"
	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/service"
)

// AdminUsersHandler exposes signup approval and account management.
type AdminUsersHandler struct {
	workflow *service.WorkflowService
	users    *service.UserService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(workflow *service.WorkflowService, users *service.UserService) *AdminUsersHandler {
	return &AdminUsersHandler{workflow: workflow, users: users}
}

// ListPending handles GET /admin/users/pending.
func (h *AdminUsersHandler) ListPending(c *fiber.Ctx) error {
	pending, err := h.workflow.ListPendingUsers(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.PendingUserResponse, 0, len(pending))
	for _, p := range pending {
		out = append(out, dto.NewPendingUserResponse(p))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Approve handles POST /admin/users/pending/:username/approve.
func (h *AdminUsersHandler) Approve(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	user, err := h.workflow.ApproveUser(c.UserContext(), session, pathParam(c, "username"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

// Reject handles POST /admin/users/pending/:username/reject.
func (h *AdminUsersHandler) Reject(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	if err := h.workflow.RejectUser(c.UserContext(), session, pathParam(c, "username")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "rejected"}})
}

// List handles GET /admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create handles POST /admin/users: direct account creation.
func (h *AdminUsersHandler) Create(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Create(c.UserContext(), session, service.UserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

// Update handles PUT /admin/users/:username.
func (h *AdminUsersHandler) Update(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.UserContext(), session, pathParam(c, "username"), service.UserInput{
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

// Delete handles DELETE /admin/users/:username.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	if err := h.users.Delete(c.UserContext(), session, pathParam(c, "username")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
