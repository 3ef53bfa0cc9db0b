package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/infra/security"
	"github.com/arklim/social-platform-reviews/internal/usecase"
)

const (
	currentUserKey = "current_user"
	sessionIDKey   = "session_id"
)

// SessionConfig wires the session middleware to its collaborators.
type SessionConfig struct {
	Auth         *usecase.AuthService
	Signer       *security.SessionCookieSigner
	CookieName   string
	SecureCookie bool
	Logger       *zap.Logger
}

// RequireSession resolves the signed session cookie to an account and
// aborts with 401 when there is none. On success the user and raw
// session ID are stored on the Gin context for handlers downstream,
// and the cookie is re-issued with a fresh max age so the browser-side
// expiry slides together with the server-side TTL.
func RequireSession(cfg SessionConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.CookieName)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		sessionID, err := cfg.Signer.Verify(cookie)
		if err != nil {
			// A bad signature means the cookie was not issued by us.
			abortUnauthenticated(c)
			return
		}

		user, err := cfg.Auth.SessionUser(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, usecase.ErrNoSession) {
				log.Error("session resolution failed", zap.Error(err))
			}
			abortUnauthenticated(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Set(sessionIDKey, sessionID)

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, cookie, int(cfg.Auth.Lifetime().Seconds()), "/", "", cfg.SecureCookie, true)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      "authentication required",
		"request_id": GetRequestID(c),
	})
}

// CurrentUser returns the account resolved by RequireSession.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

// CurrentSessionID returns the raw session ID resolved by RequireSession.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
