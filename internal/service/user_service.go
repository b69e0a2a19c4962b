package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/repository"
	"github.com/spec-kit/supplier-directory/internal/store"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

// UserService covers admin account management: direct creation, edits and
// deletion of approved users.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserInput describes an admin-created or edited account. Password is
// optional on edit; blank keeps the stored hash.
type UserInput struct {
	Username string
	Password string
	Name     string
	Role     domain.Role
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Create adds an account directly, skipping the signup workflow.
func (s *UserService) Create(ctx context.Context, session auth.Session, input UserInput) (*domain.User, error) {
	if !session.IsAdmin() {
		return nil, util.NewForbidden("admin role required")
	}
	username := auth.Normalize(input.Username)
	if !auth.ValidateEmail(username) {
		return nil, util.NewValidationError("invalid email syntax", map[string]any{"field": "username"})
	}
	if !auth.ValidatePasswordStrength(input.Password) {
		return nil, util.NewValidationError("password too short", map[string]any{
			"field":      "password",
			"min_length": auth.MinPasswordLength,
		})
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("name is required", map[string]any{"field": "name"})
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, util.NewValidationError("unknown role", map[string]any{"field": "role"})
	}

	if existing, err := s.users.Find(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, util.NewConflict("username already registered", map[string]any{"field": "username"})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Name:         strings.TrimSpace(input.Name),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update edits an account's display name, role and, when a new password is
// supplied, its hash.
func (s *UserService) Update(ctx context.Context, session auth.Session, username string, input UserInput) (*domain.User, error) {
	if !session.IsAdmin() {
		return nil, util.NewForbidden("admin role required")
	}
	user, err := s.users.Find(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NewNotFound("user", map[string]any{"username": username})
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			return nil, util.NewValidationError("unknown role", map[string]any{"field": "role"})
		}
		user.Role = input.Role
	}
	if input.Password != "" {
		if !auth.ValidatePasswordStrength(input.Password) {
			return nil, util.NewValidationError("password too short", map[string]any{
				"field":      "password",
				"min_length": auth.MinPasswordLength,
			})
		}
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			return nil, util.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Self-deletion is forbidden.
func (s *UserService) Delete(ctx context.Context, session auth.Session, username string) error {
	if !session.IsAdmin() {
		return util.NewForbidden("admin role required")
	}
	if auth.Normalize(username) == auth.Normalize(session.Username) {
		return util.NewForbidden("cannot delete your own account")
	}
	deleted, err := s.users.Delete(ctx, username)
	if err != nil {
		return err
	}
	if !deleted {
		return util.NewNotFound("user", map[string]any{"username": username})
	}
	return nil
}
