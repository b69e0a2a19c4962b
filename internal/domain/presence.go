package domain

import "time"

// ActiveUser records a per-user last-activity heartbeat; one row per
// distinct username.
type ActiveUser struct {
	Username string
	LastSeen time.Time
}
