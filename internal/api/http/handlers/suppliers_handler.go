package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplier-directory/internal/api/dto"
	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/service"
)

// SuppliersHandler exposes the directory to authenticated users.
type SuppliersHandler struct {
	workflow *service.WorkflowService
}

// NewSuppliersHandler constructs handler.
func NewSuppliersHandler(workflow *service.WorkflowService) *SuppliersHandler {
	return &SuppliersHandler{workflow: workflow}
}

// List handles GET /suppliers with an optional ?search= filter.
func (h *SuppliersHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.workflow.ListSuppliers(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}

	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.NewSupplierResponse(s))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Submit handles POST /suppliers: a proposal staged for admin approval.
func (h *SuppliersHandler) Submit(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	input, err := parseSupplierRequest(c)
	if err != nil {
		return err
	}

	pending, err := h.workflow.SubmitSupplier(c.UserContext(), session, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewPendingSupplierResponse(*pending),
	})
}

// RejectedMine handles GET /suppliers/rejected/mine: the caller's own
// rejected submissions from the audit table.
func (h *SuppliersHandler) RejectedMine(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	rejected, err := h.workflow.ListRejectedForSubmitter(c.UserContext(), session)
	if err != nil {
		return err
	}

	out := make([]dto.RejectedSupplierResponse, 0, len(rejected))
	for _, r := range rejected {
		out = append(out, dto.NewRejectedSupplierResponse(r))
	}
	return c.JSON(fiber.Map{"data": out})
}

// parseSupplierRequest decodes a submission payload, turning base64
// document slots back into raw bytes.
func parseSupplierRequest(c *fiber.Ctx) (service.SupplierInput, error) {
	var req dto.SubmitSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return service.SupplierInput{}, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.SupplierInput{
		Name:        req.Name,
		Fields:      req.Fields,
		Phone:       req.Phone,
		Address:     req.Address,
		PaymentTerm: req.PaymentTerm,
		Email:       req.Email,
		ContactName: req.ContactName,
	}
	if len(req.Documents) > 0 {
		input.Documents = make(map[string][]byte, len(req.Documents))
		for slot, encoded := range req.Documents {
			payload, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return service.SupplierInput{}, fiber.NewError(http.StatusBadRequest, "invalid document encoding: "+slot)
			}
			input.Documents[slot] = payload
		}
	}
	return input, nil
}
