package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/infra/security"
	"github.com/arklim/social-platform-reviews/internal/repository"
)

var (
	// ErrInvalidCredentials indicates an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable to the
	// caller so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountNotConfirmed indicates correct credentials on an account
	// that has not confirmed its email address.
	ErrAccountNotConfirmed = errors.New("account email not confirmed")
	// ErrNoSession indicates the request carries no valid session.
	ErrNoSession = errors.New("no active session")
)

// AuthService coordinates login, logout, and session resolution.
type AuthService struct {
	users    port.UserRepository
	sessions port.SessionStore
	lifetime time.Duration
	logger   *zap.Logger
}

// NewAuthService constructs an AuthService. lifetime is the session
// inactivity window; it is re-armed on every authenticated request.
func NewAuthService(users port.UserRepository, sessions port.SessionStore, lifetime time.Duration, log *zap.Logger) *AuthService {
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, sessions: sessions, lifetime: lifetime, logger: log}
}

// Lifetime returns the configured session inactivity window.
func (s *AuthService) Lifetime() time.Duration {
	return s.lifetime
}

// Login verifies credentials and establishes a server-side session.
// The password is always checked before the confirmation gate so an
// unconfirmed-account response is only ever given to the account owner.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	if username == "" || password == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}

	if !user.Confirmed {
		return domain.User{}, "", ErrAccountNotConfirmed
	}

	sessionID, err := security.GenerateSessionID()
	if err != nil {
		return domain.User{}, "", fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		CreatedAt: now,
		LastSeen:  now,
	}
	if err := s.sessions.Create(ctx, session, s.lifetime); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return sanitized, sessionID, nil
}

// Logout tears down the session. Unknown session IDs are not an error,
// which makes logout idempotent.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SessionUser resolves a session ID to its account and re-arms the
// session TTL, giving every authenticated request sliding expiry.
func (s *AuthService) SessionUser(ctx context.Context, sessionID string) (domain.User, error) {
	if sessionID == "" {
		return domain.User{}, ErrNoSession
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrNoSession
		}
		return domain.User{}, fmt.Errorf("load session: %w", err)
	}

	if err := s.sessions.Touch(ctx, sessionID, s.lifetime); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("session touch failed", zap.Error(err))
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrNoSession
		}
		return domain.User{}, fmt.Errorf("lookup session user: %w", err)
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return sanitized, nil
}
