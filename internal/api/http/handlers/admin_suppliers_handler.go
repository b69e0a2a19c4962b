package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplier-directory/internal/api/dto"
	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/service"
)

// AdminSuppliersHandler exposes the approval console and direct
// management of canonical suppliers.
type AdminSuppliersHandler struct {
	workflow      *service.WorkflowService
	confirmPhrase string
}

// NewAdminSuppliersHandler constructs handler.
func NewAdminSuppliersHandler(workflow *service.WorkflowService, confirmPhrase string) *AdminSuppliersHandler {
	return &AdminSuppliersHandler{workflow: workflow, confirmPhrase: confirmPhrase}
}

// Create handles POST /admin/suppliers: direct addition skipping the
// pending state.
func (h *AdminSuppliersHandler) Create(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	input, err := parseSupplierRequest(c)
	if err != nil {
		return err
	}

	supplier, err := h.workflow.SubmitSupplierDirect(c.UserContext(), session, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewSupplierResponse(*supplier),
	})
}

// ListPending handles GET /admin/suppliers/pending.
func (h *AdminSuppliersHandler) ListPending(c *fiber.Ctx) error {
	pending, err := h.workflow.ListPendingSuppliers(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.PendingSupplierResponse, 0, len(pending))
	for _, p := range pending {
		out = append(out, dto.NewPendingSupplierResponse(p))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Approve handles POST /admin/suppliers/pending/:name/approve.
func (h *AdminSuppliersHandler) Approve(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	supplier, err := h.workflow.ApproveSupplier(c.UserContext(), session, pathParam(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSupplierResponse(*supplier)})
}

// Reject handles POST /admin/suppliers/pending/:name/reject.
func (h *AdminSuppliersHandler) Reject(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	if err := h.workflow.RejectSupplier(c.UserContext(), session, pathParam(c, "name")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "rejected"}})
}

// BulkDelete handles DELETE /admin/suppliers. The confirmation phrase
// stands in for the interactive confirm step.
func (h *AdminSuppliersHandler) BulkDelete(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	var req dto.BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.Names) == 0 {
		return fiber.NewError(http.StatusBadRequest, "names required")
	}
	if req.Confirm != h.confirmPhrase {
		return fiber.NewError(http.StatusBadRequest, "confirmation phrase mismatch")
	}

	result, err := h.workflow.BulkDeleteSuppliers(c.UserContext(), session, req.Names)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requested": result.Requested,
		"deleted":   result.Deleted,
		"missing":   result.Missing,
		"failed":    result.Failed,
	}})
}
