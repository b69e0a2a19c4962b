// Package repository maps typed domain entities onto store records. All
// loose column-name access happens here; internal code above this layer
// only sees structs.
package repository

import (
	"errors"
	"time"

	"github.com/spec-kit/supplier-directory/internal/store"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

// Table names in the backing store.
const (
	TableUsers             = "users"
	TablePendingUsers      = "pending_users"
	TableSuppliers         = "suppliers"
	TablePendingSuppliers  = "pending_suppliers"
	TableRejectedSuppliers = "rejected_suppliers"
	TableSettings          = "settings"
	TableActiveUsers       = "active_users"
)

// timestampLayout is the storage format for all timestamp columns.
const timestampLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTime is lenient: malformed cells read as the zero time rather than
// failing the whole listing.
func parseTime(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// rowIndex converts a 0-based position in List output to the store's
// 1-based row index (row 1 is the header).
func rowIndex(listPos int) int {
	return listPos + store.HeaderRowIndex + 1
}

// wrapStoreErr maps raw store failures to the backend-unavailable class.
// Soft misses (vanished rows) pass through untranslated.
func wrapStoreErr(err error) error {
	if err == nil || errors.Is(err, store.ErrRowNotFound) {
		return err
	}
	return util.NewBackendUnavailable(err)
}
