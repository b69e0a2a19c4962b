package events

import (
	"time"

	"github.com/spec-kit/supplier-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSupplierSubmitted EventType = "supplier_submitted"
	EventSupplierApproved  EventType = "supplier_approved"
	EventSupplierRejected  EventType = "supplier_rejected"
	EventSuppliersDeleted  EventType = "suppliers_deleted"
	EventUserSignedUp      EventType = "user_signed_up"
	EventUserApproved      EventType = "user_approved"
	EventUserRejected      EventType = "user_rejected"
)

// Actor encapsulates the acting session for an event.
type Actor struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SupplierSubmittedPayload payload.
type SupplierSubmittedPayload struct {
	SupplierName string `json:"supplier_name"`
	SubmittedBy  string `json:"submitted_by"`
	Direct       bool   `json:"direct"`
}

// SupplierDecisionPayload payload for approve/reject outcomes.
type SupplierDecisionPayload struct {
	SupplierName string `json:"supplier_name"`
	SubmittedBy  string `json:"submitted_by"`
}

// SuppliersDeletedPayload payload.
type SuppliersDeletedPayload struct {
	Requested int `json:"requested"`
	Deleted   int `json:"deleted"`
	Missing   int `json:"missing"`
	Failed    int `json:"failed"`
}

// UserDecisionPayload payload for user lifecycle events.
type UserDecisionPayload struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}
