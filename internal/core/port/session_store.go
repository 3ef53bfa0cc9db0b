package port

import (
	"context"
	"time"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
)

// SessionStore persists server-side login sessions keyed by session ID.
// Get returns repository.ErrNotFound for unknown or expired sessions.
// Touch extends the inactivity TTL without rewriting session data.
type SessionStore interface {
	Create(ctx context.Context, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Touch(ctx context.Context, id string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
