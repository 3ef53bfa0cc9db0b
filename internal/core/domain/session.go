package domain

import "time"

// Session binds a request stream to an authenticated account. Sessions
// live server-side in Redis under a random identifier; the TTL is
// refreshed on every authenticated request (sliding expiry).
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	LastSeen  time.Time
}

// IsActive reports whether the session is still valid at the supplied moment
// given the configured inactivity lifetime.
func (s Session) IsActive(at time.Time, lifetime time.Duration) bool {
	return s.LastSeen.Add(lifetime).After(at)
}

// Touch records session activity, extending the inactivity window.
func (s *Session) Touch(at time.Time) {
	s.LastSeen = at
}
