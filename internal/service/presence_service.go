package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/repository"
)

// PresenceService records per-user heartbeats and computes the online set.
// The throttle state is process-local session state: a session only
// writes to the store when its last remote touch is older than the
// throttle interval.
type PresenceService struct {
	presence repository.PresenceRepository
	users    repository.UserRepository
	throttle time.Duration
	window   time.Duration

	mu        sync.Mutex
	lastTouch map[string]time.Time
	now       func() time.Time
}

// NewPresenceService builds the tracker.
func NewPresenceService(presence repository.PresenceRepository, users repository.UserRepository, throttle, window time.Duration) *PresenceService {
	return &PresenceService{
		presence:  presence,
		users:     users,
		throttle:  throttle,
		window:    window,
		lastTouch: make(map[string]time.Time),
		now:       time.Now,
	}
}

// Touch refreshes the caller's lastSeen timestamp. Calls within the
// throttle interval of the previous remote write are dropped locally.
func (s *PresenceService) Touch(ctx context.Context, session auth.Session) error {
	username := auth.Normalize(session.Username)
	now := s.now()

	s.mu.Lock()
	if last, ok := s.lastTouch[username]; ok && now.Sub(last) < s.throttle {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.presence.Upsert(ctx, username, now); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastTouch[username] = now
	s.mu.Unlock()
	return nil
}

// ListOnline returns the count and display names of users seen within the
// liveness window. Username-to-name resolution joins against the users
// table in one pass, falling back to the raw username.
func (s *PresenceService) ListOnline(ctx context.Context) (int, []string, error) {
	active, err := s.presence.List(ctx)
	if err != nil {
		return 0, nil, err
	}

	cutoff := s.now().Add(-s.window)
	online := active[:0]
	for _, a := range active {
		if a.LastSeen.After(cutoff) {
			online = append(online, a)
		}
	}
	if len(online) == 0 {
		return 0, nil, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return 0, nil, err
	}
	nameByUsername := make(map[string]string, len(users))
	for _, u := range users {
		nameByUsername[auth.Normalize(u.Username)] = u.Name
	}

	names := make([]string, 0, len(online))
	for _, a := range online {
		if name, ok := nameByUsername[auth.Normalize(a.Username)]; ok && name != "" {
			names = append(names, name)
		} else {
			names = append(names, a.Username)
		}
	}
	return len(names), names, nil
}
