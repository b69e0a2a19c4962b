// Package store provides access to the spreadsheet-shaped backing store:
// named tables whose first row is a header defining columns, addressed by
// table name and 1-based row index. No atomicity is guaranteed across
// operations; callers own any ordering discipline (see the workflow
// engine's append-then-delete convention).
package store

import (
	"context"
	"errors"
)

// Record is one data row, keyed by header column name. Column order is the
// table's concern, not the record's.
type Record map[string]string

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ErrRowNotFound signals that an update target row vanished, e.g. after a
// concurrent deletion. Callers treat it as a soft, zero-effect outcome.
var ErrRowNotFound = errors.New("row not found")

// HeaderRowIndex is the reserved 1-based index of the header row. Data
// rows start at HeaderRowIndex+1, so the record at position i of List
// output lives at row index i+2.
const HeaderRowIndex = 1

// RecordStore is the uniform contract against the backing tabular store.
//
// Guarantees are deliberately weak: each call eventually reflects the last
// successful write, nothing more. A table that does not exist reads as
// empty rather than failing. Any call may fail with a backend error
// (network/auth), which repositories surface as BackendUnavailable.
type RecordStore interface {
	// List returns the data rows of a table in storage (append) order.
	List(ctx context.Context, table string) ([]Record, error)
	// Append adds a record after the last row, extending the header with
	// any previously unseen columns.
	Append(ctx context.Context, table string, rec Record) error
	// DeleteWhere removes the first record whose column equals value
	// (exact string equality; the caller normalizes beforehand). Returns
	// false when no row matched.
	DeleteWhere(ctx context.Context, table, column, value string) (bool, error)
	// UpdateCell overwrites a single cell addressed by 1-based row index
	// (row 1 is the header). Returns ErrRowNotFound when the row is gone.
	UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error
}
