package repository

import (
	"context"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/store"
)

// Column names of the users and pending_users tables.
const (
	colUsername    = "username"
	colPassword    = "password"
	colRole        = "role"
	colName        = "name"
	colSubmittedAt = "submittedAt"
)

// UserRepository defines persistence access for accounts and signups.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	// Find returns nil when no user matches the normalized username.
	Find(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Update rewrites the mutable cells (name, role, password) of the
	// user's row. Returns store.ErrRowNotFound when the row vanished.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user's row; false when no row matched.
	Delete(ctx context.Context, username string) (bool, error)

	ListPending(ctx context.Context) ([]domain.PendingUser, error)
	FindPending(ctx context.Context, username string) (*domain.PendingUser, error)
	CreatePending(ctx context.Context, pending *domain.PendingUser) error
	DeletePending(ctx context.Context, username string) (bool, error)
}

type userRepository struct {
	store store.RecordStore
}

// NewUserRepository returns a RecordStore-backed implementation.
func NewUserRepository(recordStore store.RecordStore) UserRepository {
	return &userRepository{store: recordStore}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	recs, err := r.store.List(ctx, TableUsers)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	users := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

func (r *userRepository) Find(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := auth.Normalize(username)
	for i := range users {
		if auth.Normalize(users[i].Username) == needle {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return wrapStoreErr(r.store.Append(ctx, TableUsers, userToRecord(user)))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	recs, err := r.store.List(ctx, TableUsers)
	if err != nil {
		return wrapStoreErr(err)
	}
	needle := auth.Normalize(user.Username)
	for i, rec := range recs {
		if auth.Normalize(rec[colUsername]) != needle {
			continue
		}
		row := rowIndex(i)
		for col, val := range map[string]string{
			colName:     user.Name,
			colRole:     string(user.Role),
			colPassword: user.PasswordHash,
		} {
			if rec[col] == val {
				continue
			}
			if err := r.store.UpdateCell(ctx, TableUsers, row, col, val); err != nil {
				return wrapStoreErr(err)
			}
		}
		return nil
	}
	return store.ErrRowNotFound
}

func (r *userRepository) Delete(ctx context.Context, username string) (bool, error) {
	deleted, err := r.store.DeleteWhere(ctx, TableUsers, colUsername, auth.Normalize(username))
	return deleted, wrapStoreErr(err)
}

func (r *userRepository) ListPending(ctx context.Context) ([]domain.PendingUser, error) {
	recs, err := r.store.List(ctx, TablePendingUsers)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	pending := make([]domain.PendingUser, 0, len(recs))
	for _, rec := range recs {
		pending = append(pending, domain.PendingUser{
			Username:     rec[colUsername],
			PasswordHash: rec[colPassword],
			Name:         rec[colName],
			SubmittedAt:  parseTime(rec[colSubmittedAt]),
		})
	}
	return pending, nil
}

func (r *userRepository) FindPending(ctx context.Context, username string) (*domain.PendingUser, error) {
	pending, err := r.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	needle := auth.Normalize(username)
	for i := range pending {
		if auth.Normalize(pending[i].Username) == needle {
			return &pending[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) CreatePending(ctx context.Context, pending *domain.PendingUser) error {
	rec := store.Record{
		colUsername:    pending.Username,
		colPassword:    pending.PasswordHash,
		colName:        pending.Name,
		colSubmittedAt: formatTime(pending.SubmittedAt),
	}
	return wrapStoreErr(r.store.Append(ctx, TablePendingUsers, rec))
}

func (r *userRepository) DeletePending(ctx context.Context, username string) (bool, error) {
	deleted, err := r.store.DeleteWhere(ctx, TablePendingUsers, colUsername, auth.Normalize(username))
	return deleted, wrapStoreErr(err)
}

func userFromRecord(rec store.Record) domain.User {
	return domain.User{
		Username:     rec[colUsername],
		PasswordHash: rec[colPassword],
		Role:         domain.Role(rec[colRole]),
		Name:         rec[colName],
	}
}

func userToRecord(user *domain.User) store.Record {
	return store.Record{
		colUsername: user.Username,
		colPassword: user.PasswordHash,
		colRole:     string(user.Role),
		colName:     user.Name,
	}
}
