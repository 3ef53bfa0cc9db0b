package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/repository"
)

// SessionStore persists login sessions as JSON blobs with a TTL equal
// to the configured inactivity lifetime. Every Touch re-arms the TTL,
// giving the sliding-expiry behavior of a permanent session.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore constructs a store using the provided Redis client and key prefix.
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	if prefix == "" {
		prefix = "reviews:session"
	}
	return &SessionStore{client: client, prefix: prefix}
}

type sessionRecord struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

// Create stores the session under its identifier with the supplied TTL.
func (s *SessionStore) Create(ctx context.Context, session domain.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("session ttl must be positive")
	}

	payload, err := json.Marshal(sessionRecord{
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt.UTC(),
		LastSeen:  session.LastSeen.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Get loads a session by identifier. Expired or unknown sessions
// surface repository.ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &domain.Session{
		ID:        id,
		UserID:    record.UserID,
		CreatedAt: record.CreatedAt,
		LastSeen:  record.LastSeen,
	}, nil
}

// Touch re-arms the session TTL without rewriting the payload.
// Touching a missing session reports repository.ErrNotFound.
func (s *SessionStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("session ttl must be positive")
	}

	ok, err := s.client.Expire(ctx, s.key(id), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	if !ok {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the session. Deleting a missing session is a no-op,
// which keeps logout idempotent.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

var _ port.SessionStore = (*SessionStore)(nil)
