package dto

import (
	"time"

	"github.com/spec-kit/supplier-directory/internal/domain"
)

// SubmitSupplierRequest payload for proposals and direct admin additions.
// Documents maps a named slot to a base64-encoded payload.
type SubmitSupplierRequest struct {
	Name        string            `json:"name"`
	Fields      []string          `json:"fields"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	PaymentTerm string            `json:"payment_term"`
	Email       string            `json:"email"`
	ContactName string            `json:"contact_name"`
	Documents   map[string]string `json:"documents"`
}

// SupplierResponse is an approved directory entry.
type SupplierResponse struct {
	Name        string            `json:"name"`
	Fields      []string          `json:"fields"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	PaymentTerm string            `json:"payment_term"`
	Email       string            `json:"email,omitempty"`
	ContactName string            `json:"contact_name,omitempty"`
	SubmittedBy string            `json:"submitted_by,omitempty"`
	Documents   map[string]string `json:"documents,omitempty"`
}

// NewSupplierResponse converts a domain supplier.
func NewSupplierResponse(supplier domain.Supplier) SupplierResponse {
	return SupplierResponse{
		Name:        supplier.Name,
		Fields:      supplier.Fields,
		Phone:       supplier.Phone,
		Address:     supplier.Address,
		PaymentTerm: supplier.PaymentTerm,
		Email:       supplier.Email,
		ContactName: supplier.ContactName,
		SubmittedBy: supplier.SubmittedBy,
		Documents:   supplier.Documents,
	}
}

// PendingSupplierResponse is a staged proposal.
type PendingSupplierResponse struct {
	SupplierResponse
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewPendingSupplierResponse converts a pending proposal.
func NewPendingSupplierResponse(pending domain.PendingSupplier) PendingSupplierResponse {
	return PendingSupplierResponse{
		SupplierResponse: NewSupplierResponse(pending.Supplier),
		SubmittedAt:      pending.SubmittedAt,
	}
}

// RejectedSupplierResponse is a rejection-audit entry.
type RejectedSupplierResponse struct {
	PendingSupplierResponse
	RejectedAt time.Time `json:"rejected_at"`
}

// NewRejectedSupplierResponse converts a rejected snapshot.
func NewRejectedSupplierResponse(rejected domain.RejectedSupplier) RejectedSupplierResponse {
	return RejectedSupplierResponse{
		PendingSupplierResponse: NewPendingSupplierResponse(rejected.PendingSupplier),
		RejectedAt:              rejected.RejectedAt,
	}
}

// BulkDeleteRequest payload for canonical bulk deletion. Confirm must
// equal the configured confirmation phrase.
type BulkDeleteRequest struct {
	Names   []string `json:"names"`
	Confirm string   `json:"confirm"`
}
