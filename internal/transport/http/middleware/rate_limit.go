package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/port"
)

const (
	rateLimitProblemType  = "https://reviews.social-platform.example.com/errors/rate-limit-exceeded"
	rateLimitProblemTitle = "Rate Limit Exceeded"
)

// IdentifierFunc extracts the identifier used to scope rate limits (e.g., client IP).
type IdentifierFunc func(*gin.Context) (string, bool)

// RateLimitRule configures a sliding-window limit for one route.
type RateLimitRule struct {
	Name       string
	Limit      int
	Window     time.Duration
	Identifier IdentifierFunc
}

// RateLimiter enforces sliding-window limits backed by a shared store.
// A store failure fails open: the request proceeds and the failure is
// logged, so a Redis outage cannot lock users out.
type RateLimiter struct {
	store  port.RateLimitStore
	logger *zap.Logger
	now    func() time.Time
}

// ProblemDetails is an RFC 9457 compatible error payload for rate limits.
type ProblemDetails struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail"`
	Instance   string `json:"instance"`
	RetryAfter int    `json:"retry_after"`
	RequestID  string `json:"request_id,omitempty"`
}

// NewRateLimiter builds a reusable rate limiter middleware helper.
func NewRateLimiter(store port.RateLimitStore, log *zap.Logger) *RateLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{store: store, logger: log, now: time.Now}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	if now != nil {
		rl.now = now
	}
	return rl
}

// ClientIPIdentifier builds an IdentifierFunc using the request's client IP.
func ClientIPIdentifier() IdentifierFunc {
	return func(c *gin.Context) (string, bool) {
		ip := c.ClientIP()
		if ip == "" {
			return "", false
		}
		return ip, true
	}
}

// Limit returns a Gin middleware enforcing the rule on the wrapped route.
func (rl *RateLimiter) Limit(rule RateLimitRule) gin.HandlerFunc {
	if rule.Name == "" {
		rule.Name = "default"
	}
	if rule.Identifier == nil {
		rule.Identifier = ClientIPIdentifier()
	}

	return func(c *gin.Context) {
		if rl.store == nil || rule.Limit <= 0 || rule.Window <= 0 {
			c.Next()
			return
		}

		identifier, ok := rule.Identifier(c)
		if !ok || identifier == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", rule.Name, identifier)
		now := rl.now()

		allowed, remaining, reset, err := rl.evaluate(c, rule, key, now)
		if err != nil {
			rl.logger.Warn("rate limit check failed",
				zap.String("rule", rule.Name),
				zap.Error(err),
			)
			c.Next()
			return
		}

		headers := c.Writer.Header()
		headers.Set("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
		headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retryAfter := int(math.Ceil(reset.Sub(now).Seconds()))
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.Itoa(retryAfter))

			instance := c.FullPath()
			if instance == "" {
				instance = c.Request.URL.Path
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ProblemDetails{
				Type:       rateLimitProblemType,
				Title:      rateLimitProblemTitle,
				Status:     http.StatusTooManyRequests,
				Detail:     fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
				Instance:   instance,
				RetryAfter: retryAfter,
				RequestID:  GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) evaluate(c *gin.Context, rule RateLimitRule, key string, now time.Time) (allowed bool, remaining int, reset time.Time, err error) {
	ctx := c.Request.Context()

	if err := rl.store.TrimWindow(ctx, key, rule.Window, now); err != nil {
		return false, 0, time.Time{}, err
	}

	count, err := rl.store.CountAttempts(ctx, key, rule.Window, now)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	reset = now.Add(rule.Window)
	if oldest, has, err := rl.store.OldestAttempt(ctx, key, rule.Window, now); err != nil {
		return false, 0, time.Time{}, err
	} else if has {
		reset = oldest.Add(rule.Window)
	}

	if count >= rule.Limit {
		return false, 0, reset, nil
	}

	if err := rl.store.RecordAttempt(ctx, key, now); err != nil {
		return false, 0, time.Time{}, err
	}

	remaining = rule.Limit - count - 1
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, reset, nil
}
