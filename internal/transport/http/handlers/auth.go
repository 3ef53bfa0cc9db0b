package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/infra/security"
	"github.com/arklim/social-platform-reviews/internal/transport/http/middleware"
	"github.com/arklim/social-platform-reviews/internal/usecase"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	auth         *usecase.AuthService
	signer       *security.SessionCookieSigner
	cookieName   string
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler builds an auth handler. secureCookie marks the session
// cookie Secure and should be on everywhere except local development.
func NewAuthHandler(auth *usecase.AuthService, signer *security.SessionCookieSigner, cookieName string, secureCookie bool, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		auth:         auth,
		signer:       signer,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		logger:       log,
	}
}

// Login handles POST /login. A successful login sets the signed
// session cookie with the session lifetime as its max age.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "username and password are required"))
		return
	}

	user, sessionID, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid username or password"},
			{Err: usecase.ErrAccountNotConfirmed, Status: http.StatusForbidden, Message: "confirm your email address before logging in"},
		}, http.StatusInternalServerError, "login failed")
		return
	}

	maxAge := int(h.auth.Lifetime().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, h.signer.Sign(sessionID), maxAge, "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, LoginResponse{
		User:    newUserSummary(user),
		Message: "logged in",
	})
}

// Logout handles GET /logout. The session is removed server-side and
// the cookie cleared; repeating the call is harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.CurrentSessionID(c)
	if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "logout failed"))
		return
	}

	// The session middleware already queued a refresh cookie for this
	// response; replace it with the deletion cookie.
	c.Writer.Header().Del("Set-Cookie")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}
