package dto

import (
	"time"

	"github.com/spec-kit/supplier-directory/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpRequest payload for join requests.
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is an account without its hash.
type UserResponse struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// NewUserResponse strips the password hash.
func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{Username: user.Username, Name: user.Name, Role: user.Role}
}

// PendingUserResponse is a signup awaiting decision.
type PendingUserResponse struct {
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewPendingUserResponse strips the password hash.
func NewPendingUserResponse(pending domain.PendingUser) PendingUserResponse {
	return PendingUserResponse{
		Username:    pending.Username,
		Name:        pending.Name,
		SubmittedAt: pending.SubmittedAt,
	}
}

// CreateUserRequest payload for direct admin account creation.
type CreateUserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// UpdateUserRequest payload for admin account edits. Blank fields keep
// their stored values.
type UpdateUserRequest struct {
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	Password string      `json:"password"`
}
