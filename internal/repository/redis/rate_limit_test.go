package redis

import (
	"context"
	"testing"
	"time"
)

func TestRateLimitStore_RecordAndCount(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewRateLimitStore(client, SlidingWindowConfig{KeyPrefix: "rl", TTL: 2 * time.Minute})

	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		if err := store.RecordAttempt(ctx, "login:1.2.3.4", now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordAttempt returned error: %v", err)
		}
	}

	count, err := store.CountAttempts(ctx, "login:1.2.3.4", time.Minute, now.Add(3*time.Second))
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 attempts, got %d", count)
	}
}

func TestRateLimitStore_TrimWindow(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewRateLimitStore(client, SlidingWindowConfig{KeyPrefix: "rl"})

	ctx := context.Background()
	now := time.Now()

	if err := store.RecordAttempt(ctx, "id", now.Add(-2*time.Minute)); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}
	if err := store.RecordAttempt(ctx, "id", now); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}

	if err := store.TrimWindow(ctx, "id", time.Minute, now); err != nil {
		t.Fatalf("TrimWindow returned error: %v", err)
	}

	count, err := store.CountAttempts(ctx, "id", 10*time.Minute, now)
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 attempt after trim, got %d", count)
	}
}

func TestRateLimitStore_OldestAttempt(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewRateLimitStore(client, SlidingWindowConfig{KeyPrefix: "rl"})

	ctx := context.Background()
	now := time.Now()

	if _, found, err := store.OldestAttempt(ctx, "empty", time.Minute, now); err != nil || found {
		t.Fatalf("expected no attempt, got found=%v err=%v", found, err)
	}

	first := now.Add(-30 * time.Second)
	if err := store.RecordAttempt(ctx, "id", first); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}
	if err := store.RecordAttempt(ctx, "id", now); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}

	oldest, found, err := store.OldestAttempt(ctx, "id", time.Minute, now)
	if err != nil {
		t.Fatalf("OldestAttempt returned error: %v", err)
	}
	if !found {
		t.Fatalf("expected an attempt inside the window")
	}
	if oldest.UnixNano() != first.UnixNano() {
		t.Fatalf("expected oldest %v, got %v", first, oldest)
	}
}
