package domain

import "time"

// Supplier is an approved directory entry. Name is the natural key;
// name, phone and email are each unique among approved suppliers
// (case-insensitive, trimmed), enforced at submission and approval time
// only.
type Supplier struct {
	Name        string
	Fields      []string
	Phone       string
	Address     string
	PaymentTerm string
	Email       string
	ContactName string
	SubmittedBy string
	// Documents maps a named document slot to its uploaded link.
	Documents map[string]string
}

// PendingSupplier is a submitted proposal awaiting admin decision.
type PendingSupplier struct {
	Supplier
	SubmittedAt time.Time
}

// RejectedSupplier is an append-only snapshot of a rejected proposal,
// queried by the submitter to view their own rejected submissions.
type RejectedSupplier struct {
	PendingSupplier
	RejectedAt time.Time
}
