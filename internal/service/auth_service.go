package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/config"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/events"
	"github.com/spec-kit/supplier-directory/internal/repository"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

// AuthService coordinates login and signup flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		now:        time.Now,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a user and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (auth.Session, string, time.Time, error) {
	user, err := s.users.Find(ctx, username)
	if err != nil {
		return auth.Session{}, "", time.Time{}, err
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return auth.Session{}, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	session := auth.Session{
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	}
	token, exp, err := s.tokenMgr.GenerateToken(session)
	if err != nil {
		return auth.Session{}, "", time.Time{}, err
	}
	return session, token, exp, nil
}

// SignUp stages a join request in the pending_users table. The account
// only becomes usable once an admin approves it.
func (s *AuthService) SignUp(ctx context.Context, username, password, name string) error {
	username = auth.Normalize(username)
	if !auth.ValidateEmail(username) {
		return util.NewValidationError("invalid email syntax", map[string]any{"field": "username"})
	}
	if !auth.ValidatePasswordStrength(password) {
		return util.NewValidationError("password too short", map[string]any{
			"field":      "password",
			"min_length": auth.MinPasswordLength,
		})
	}
	if name == "" {
		return util.NewValidationError("name is required", map[string]any{"field": "name"})
	}

	if existing, err := s.users.Find(ctx, username); err != nil {
		return err
	} else if existing != nil {
		return util.NewConflict("username already registered", map[string]any{"field": "username"})
	}
	if pending, err := s.users.FindPending(ctx, username); err != nil {
		return err
	} else if pending != nil {
		return util.NewConflict("signup already pending", map[string]any{"field": "username"})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	pending := &domain.PendingUser{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		SubmittedAt:  s.now(),
	}
	if err := s.users.CreatePending(ctx, pending); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserSignedUp,
			Subject:   username,
			Actor:     events.Actor{Username: username, Role: domain.RoleUser},
			Timestamp: s.now(),
			Payload:   events.UserDecisionPayload{Username: username, Name: name},
		})
	}
	return nil
}
