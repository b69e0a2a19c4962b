package domain

import "time"

// Role enumerates access levels for directory users.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an approved account. Username is a normalized lower-case email
// and unique across the users table.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
	Name         string
}

// PendingUser is a signup awaiting admin decision. Approval promotes it to
// User reusing the same hash; rejection deletes the row with no audit.
type PendingUser struct {
	Username     string
	PasswordHash string
	Name         string
	SubmittedAt  time.Time
}
