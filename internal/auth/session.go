package auth

import "github.com/spec-kit/supplier-directory/internal/domain"

// Session identifies the acting user for the duration of one interaction.
// It is threaded explicitly through every workflow call; there is no
// ambient logged-in state.
type Session struct {
	Username string
	Name     string
	Role     domain.Role
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}
