package repository

import (
	"context"
	"time"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/store"
)

const colLastSeen = "lastSeen"

// PresenceRepository persists heartbeat rows, one per distinct username.
type PresenceRepository interface {
	List(ctx context.Context) ([]domain.ActiveUser, error)
	// Upsert refreshes the user's lastSeen cell, appending a row on first
	// sight.
	Upsert(ctx context.Context, username string, lastSeen time.Time) error
}

type presenceRepository struct {
	store store.RecordStore
}

// NewPresenceRepository returns a RecordStore-backed implementation.
func NewPresenceRepository(recordStore store.RecordStore) PresenceRepository {
	return &presenceRepository{store: recordStore}
}

func (r *presenceRepository) List(ctx context.Context) ([]domain.ActiveUser, error) {
	recs, err := r.store.List(ctx, TableActiveUsers)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	active := make([]domain.ActiveUser, 0, len(recs))
	for _, rec := range recs {
		active = append(active, domain.ActiveUser{
			Username: rec[colUsername],
			LastSeen: parseTime(rec[colLastSeen]),
		})
	}
	return active, nil
}

func (r *presenceRepository) Upsert(ctx context.Context, username string, lastSeen time.Time) error {
	normalized := auth.Normalize(username)
	recs, err := r.store.List(ctx, TableActiveUsers)
	if err != nil {
		return wrapStoreErr(err)
	}
	for i, rec := range recs {
		if auth.Normalize(rec[colUsername]) == normalized {
			return wrapStoreErr(r.store.UpdateCell(ctx, TableActiveUsers, rowIndex(i), colLastSeen, formatTime(lastSeen)))
		}
	}
	rec := store.Record{
		colUsername: normalized,
		colLastSeen: formatTime(lastSeen),
	}
	return wrapStoreErr(r.store.Append(ctx, TableActiveUsers, rec))
}
