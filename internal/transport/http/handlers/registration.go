package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/infra/security"
	"github.com/arklim/social-platform-reviews/internal/usecase"
)

// RegistrationHandler exposes account registration and email confirmation.
type RegistrationHandler struct {
	registration *usecase.RegistrationService
	logger       *zap.Logger
}

// NewRegistrationHandler builds a registration handler.
func NewRegistrationHandler(registration *usecase.RegistrationService, log *zap.Logger) *RegistrationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationHandler{registration: registration, logger: log}
}

// Register handles POST /register. Accepts both JSON and form bodies
// so the rendered registration page can post directly.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "username, email, password, and password_confirm are required"))
		return
	}

	user, err := h.registration.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
			return
		}
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrDuplicateIdentity, Status: http.StatusConflict, Message: "username or email already registered"},
		}, http.StatusInternalServerError, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{
		User:    newUserSummary(user),
		Message: "confirmation link sent, check your email",
	})
}

// ConfirmEmail handles GET /confirm_email/:token. The link lands in a
// mail client, so the outcome is reported by redirecting the browser
// to the login page with a status query rather than with a JSON body.
func (h *RegistrationHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	_, already, err := h.registration.ConfirmEmail(c.Request.Context(), token)
	switch {
	case err == nil && already:
		c.Redirect(http.StatusSeeOther, "/login?status=already-confirmed")
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/login?status=confirmed")
	case errors.Is(err, security.ErrTokenExpired):
		c.Redirect(http.StatusSeeOther, "/login?status=link-expired")
	case errors.Is(err, security.ErrTokenInvalid):
		c.Redirect(http.StatusSeeOther, "/login?status=link-invalid")
	case errors.Is(err, usecase.ErrAccountNotFound):
		c.Redirect(http.StatusSeeOther, "/login?status=account-not-found")
	default:
		h.logger.Error("email confirmation failed", zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/login?status=error")
	}
}
