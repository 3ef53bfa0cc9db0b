package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeRateLimitStore struct {
	attempts map[string][]time.Time
	failing  bool
}

func newFakeRateLimitStore() *fakeRateLimitStore {
	return &fakeRateLimitStore{attempts: make(map[string][]time.Time)}
}

func (s *fakeRateLimitStore) TrimWindow(_ context.Context, identifier string, window time.Duration, reference time.Time) error {
	if s.failing {
		return errors.New("store down")
	}
	cutoff := reference.Add(-window)
	kept := s.attempts[identifier][:0]
	for _, at := range s.attempts[identifier] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	s.attempts[identifier] = kept
	return nil
}

func (s *fakeRateLimitStore) CountAttempts(_ context.Context, identifier string, _ time.Duration, _ time.Time) (int, error) {
	if s.failing {
		return 0, errors.New("store down")
	}
	return len(s.attempts[identifier]), nil
}

func (s *fakeRateLimitStore) RecordAttempt(_ context.Context, identifier string, at time.Time) error {
	if s.failing {
		return errors.New("store down")
	}
	s.attempts[identifier] = append(s.attempts[identifier], at)
	return nil
}

func (s *fakeRateLimitStore) OldestAttempt(_ context.Context, identifier string, _ time.Duration, _ time.Time) (time.Time, bool, error) {
	if s.failing {
		return time.Time{}, false, errors.New("store down")
	}
	if len(s.attempts[identifier]) == 0 {
		return time.Time{}, false, nil
	}
	return s.attempts[identifier][0], true, nil
}

func rateLimitedEngine(rl *RateLimiter, rule RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", rl.Limit(rule), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func performLogin(engine *gin.Engine) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.7:51000"
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	store := newFakeRateLimitStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	rl := NewRateLimiter(store, nil).WithClock(func() time.Time { return now })

	engine := rateLimitedEngine(rl, RateLimitRule{Name: "login", Limit: 2, Window: time.Minute})

	for i := 0; i < 2; i++ {
		if rec := performLogin(engine); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := performLogin(engine)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on 429")
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected zero remaining, got %q", got)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	store := newFakeRateLimitStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	rl := NewRateLimiter(store, nil).WithClock(func() time.Time { return now })

	engine := rateLimitedEngine(rl, RateLimitRule{Name: "login", Limit: 1, Window: time.Minute})

	if rec := performLogin(engine); rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}
	if rec := performLogin(engine); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request blocked, got %d", rec.Code)
	}

	now = base.Add(61 * time.Second)
	if rec := performLogin(engine); rec.Code != http.StatusOK {
		t.Fatalf("expected request after window to pass, got %d", rec.Code)
	}
}

func TestRateLimiter_FailsOpenOnStoreError(t *testing.T) {
	store := newFakeRateLimitStore()
	store.failing = true
	rl := NewRateLimiter(store, nil)

	engine := rateLimitedEngine(rl, RateLimitRule{Name: "login", Limit: 1, Window: time.Minute})

	for i := 0; i < 3; i++ {
		if rec := performLogin(engine); rec.Code != http.StatusOK {
			t.Fatalf("expected request to pass while store is down, got %d", rec.Code)
		}
	}
}

func TestRateLimiter_SeparateIdentifiers(t *testing.T) {
	store := newFakeRateLimitStore()
	rl := NewRateLimiter(store, nil)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", rl.Limit(RateLimitRule{Name: "login", Limit: 1, Window: time.Minute}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	reqA := httptest.NewRequest(http.MethodPost, "/login", nil)
	reqA.RemoteAddr = "203.0.113.7:51000"
	engine.ServeHTTP(first, reqA)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 for first client, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	reqB := httptest.NewRequest(http.MethodPost, "/login", nil)
	reqB.RemoteAddr = "198.51.100.9:42000"
	engine.ServeHTTP(second, reqB)
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 for a different client, got %d", second.Code)
	}
}
