package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/infra/security"
)

func confirmedUser(t *testing.T, password string) domain.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	return domain.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		PasswordAlgo: "argon2id",
		Confirmed:    true,
		RegisteredAt: time.Now().UTC(),
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	user := confirmedUser(t, "correct-horse")
	users := newMockUserRepository(user)
	sessions := newMockSessionStore()

	service := NewAuthService(users, sessions, time.Hour, nil)

	got, sessionID, err := service.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if sessionID == "" {
		t.Fatalf("expected a session ID")
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
	if got.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped from the returned user")
	}

	if sessions.creates != 1 {
		t.Fatalf("expected one session Create, got %d", sessions.creates)
	}
	if sessions.lastTTL != time.Hour {
		t.Fatalf("expected session TTL %v, got %v", time.Hour, sessions.lastTTL)
	}
	stored, err := sessions.Get(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("expected stored session: %v", err)
	}
	if stored.UserID != user.ID {
		t.Fatalf("expected session bound to %s, got %s", user.ID, stored.UserID)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	users := newMockUserRepository()
	sessions := newMockSessionStore()

	service := NewAuthService(users, sessions, time.Hour, nil)

	_, _, err := service.Login(context.Background(), "nobody", "whatever-pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.creates != 0 {
		t.Fatalf("expected no session for unknown user")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newMockUserRepository(confirmedUser(t, "correct-horse"))
	sessions := newMockSessionStore()

	service := NewAuthService(users, sessions, time.Hour, nil)

	_, _, err := service.Login(context.Background(), "alice", "wrong-horse")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.creates != 0 {
		t.Fatalf("expected no session for wrong password")
	}
}

func TestAuthService_Login_UnconfirmedAccount(t *testing.T) {
	user := confirmedUser(t, "correct-horse")
	user.Confirmed = false
	users := newMockUserRepository(user)
	sessions := newMockSessionStore()

	service := NewAuthService(users, sessions, time.Hour, nil)

	_, _, err := service.Login(context.Background(), "alice", "correct-horse")
	if !errors.Is(err, ErrAccountNotConfirmed) {
		t.Fatalf("expected ErrAccountNotConfirmed, got %v", err)
	}
	if sessions.creates != 0 {
		t.Fatalf("expected no session for unconfirmed account")
	}
}

func TestAuthService_Login_UnconfirmedWithWrongPassword(t *testing.T) {
	user := confirmedUser(t, "correct-horse")
	user.Confirmed = false
	users := newMockUserRepository(user)

	service := NewAuthService(users, newMockSessionStore(), time.Hour, nil)

	// The confirmation state must not leak to callers who fail the
	// password check.
	_, _, err := service.Login(context.Background(), "alice", "wrong-horse")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SessionStoreFailure(t *testing.T) {
	users := newMockUserRepository(confirmedUser(t, "correct-horse"))
	sessions := newMockSessionStore()
	sessions.createErr = errStoreDown

	service := NewAuthService(users, sessions, time.Hour, nil)

	_, _, err := service.Login(context.Background(), "alice", "correct-horse")
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	sessions := newMockSessionStore()
	service := NewAuthService(newMockUserRepository(), sessions, time.Hour, nil)

	if err := service.Logout(context.Background(), "never-existed"); err != nil {
		t.Fatalf("expected logout of unknown session to succeed, got %v", err)
	}
	if err := service.Logout(context.Background(), ""); err != nil {
		t.Fatalf("expected empty-session logout to succeed, got %v", err)
	}
	if sessions.deletes != 1 {
		t.Fatalf("expected one Delete call, got %d", sessions.deletes)
	}
}

func TestAuthService_SessionUser_SlidesExpiry(t *testing.T) {
	user := confirmedUser(t, "correct-horse")
	users := newMockUserRepository(user)
	sessions := newMockSessionStore()

	service := NewAuthService(users, sessions, 30*time.Minute, nil)

	_, sessionID, err := service.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	got, err := service.SessionUser(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("SessionUser returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
	if got.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped")
	}
	if sessions.touches != 1 {
		t.Fatalf("expected one Touch, got %d", sessions.touches)
	}
	if sessions.lastTTL != 30*time.Minute {
		t.Fatalf("expected re-armed TTL 30m, got %v", sessions.lastTTL)
	}
}

func TestAuthService_SessionUser_NoSession(t *testing.T) {
	service := NewAuthService(newMockUserRepository(), newMockSessionStore(), time.Hour, nil)

	if _, err := service.SessionUser(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for empty ID, got %v", err)
	}
	if _, err := service.SessionUser(context.Background(), "unknown"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for unknown ID, got %v", err)
	}
}

func TestAuthService_SessionUser_TouchFailureIsNonFatal(t *testing.T) {
	user := confirmedUser(t, "correct-horse")
	users := newMockUserRepository(user)
	sessions := newMockSessionStore()
	sessions.touchErr = errStoreDown

	service := NewAuthService(users, sessions, time.Hour, nil)

	_, sessionID, err := service.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := service.SessionUser(context.Background(), sessionID); err != nil {
		t.Fatalf("expected session resolution to survive Touch failure, got %v", err)
	}
}

func TestAuthService_SessionUser_DeletedAccount(t *testing.T) {
	users := newMockUserRepository()
	sessions := newMockSessionStore()
	session := domain.Session{ID: "sess-1", UserID: "gone", CreatedAt: time.Now(), LastSeen: time.Now()}
	if err := sessions.Create(context.Background(), session, time.Hour); err != nil {
		t.Fatalf("seeding session failed: %v", err)
	}

	service := NewAuthService(users, sessions, time.Hour, nil)

	if _, err := service.SessionUser(context.Background(), "sess-1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for orphaned session, got %v", err)
	}
}
