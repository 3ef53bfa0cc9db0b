package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/transport/http/middleware"
)

// ErrorResponse represents a generic error payload with a correlation ID for debugging.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response carrying the request's correlation ID.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:     errorMsg,
		RequestID: middleware.GetRequestID(c),
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserSummary describes a minimal view of an account returned by the API.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

// RegistrationRequest defines the account registration payload.
type RegistrationRequest struct {
	Username        string `json:"username" form:"username" binding:"required"`
	Email           string `json:"email" form:"email" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required"`
}

// RegistrationResponse contains registration results and next steps.
type RegistrationResponse struct {
	User    UserSummary `json:"user"`
	Message string      `json:"message"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResponse describes the response returned for a successful login.
type LoginResponse struct {
	User    UserSummary `json:"user"`
	Message string      `json:"message"`
}

// ReviewPayload summarizes a review entity.
type ReviewPayload struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProjectName string    `json:"project_name"`
	Score       int       `json:"score"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReviewCreateRequest defines the payload for posting a review.
type ReviewCreateRequest struct {
	ProjectName string `json:"project_name" form:"project_name" binding:"required"`
	Score       int    `json:"score" form:"score" binding:"required"`
	Content     string `json:"content" form:"content" binding:"required"`
}

// ReviewUpdateRequest defines the payload for editing a review.
type ReviewUpdateRequest struct {
	Score   int    `json:"score" form:"score" binding:"required"`
	Content string `json:"content" form:"content" binding:"required"`
}

// ReviewListResponse wraps reviews for one project.
type ReviewListResponse struct {
	ProjectName string          `json:"project_name"`
	Reviews     []ReviewPayload `json:"reviews"`
	Total       int             `json:"total"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func newUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Confirmed: user.Confirmed,
	}
}

func newReviewPayload(review domain.Review) ReviewPayload {
	return ReviewPayload{
		ID:          review.ID,
		UserID:      review.UserID,
		ProjectName: review.ProjectName,
		Score:       review.Score,
		Content:     review.Content,
		CreatedAt:   review.CreatedAt,
	}
}

func newReviewListResponse(projectName string, reviews []domain.Review) ReviewListResponse {
	payloads := make([]ReviewPayload, 0, len(reviews))
	for _, review := range reviews {
		payloads = append(payloads, newReviewPayload(review))
	}
	return ReviewListResponse{
		ProjectName: projectName,
		Reviews:     payloads,
		Total:       len(payloads),
	}
}
