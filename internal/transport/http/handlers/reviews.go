package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/transport/http/middleware"
	"github.com/arklim/social-platform-reviews/internal/usecase"
)

// ReviewHandler exposes listing and mutation of project reviews.
type ReviewHandler struct {
	reviews *usecase.ReviewService
	logger  *zap.Logger
}

// NewReviewHandler builds a review handler.
func NewReviewHandler(reviews *usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewHandler{reviews: reviews, logger: log}
}

// List handles GET /opinion?p=<project>.
func (h *ReviewHandler) List(c *gin.Context) {
	projectName := c.Query("p")

	reviews, err := h.reviews.List(c.Request.Context(), projectName)
	if err != nil {
		h.logger.Error("listing reviews failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "could not load reviews"))
		return
	}

	if projectName == "" {
		projectName = domain.DefaultProjectName
	}
	c.JSON(http.StatusOK, newReviewListResponse(projectName, reviews))
}

// Create handles POST /opinion.
func (h *ReviewHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req ReviewCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "project_name, score, and content are required"))
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), user.ID, req.ProjectName, req.Score, req.Content)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
			return
		}
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrDuplicateReview, Status: http.StatusConflict, Message: "you have already reviewed this project"},
		}, http.StatusInternalServerError, "could not save review")
		return
	}

	c.JSON(http.StatusCreated, newReviewPayload(review))
}

// Edit handles POST /edit_opinion/:id.
func (h *ReviewHandler) Edit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req ReviewUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "score and content are required"))
		return
	}

	review, err := h.reviews.Edit(c.Request.Context(), user.ID, c.Param("id"), req.Score, req.Content)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
			return
		}
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrReviewNotFound, Status: http.StatusNotFound, Message: "review not found"},
			{Err: usecase.ErrNotReviewOwner, Status: http.StatusForbidden, Message: "you can only edit your own review"},
		}, http.StatusInternalServerError, "could not update review")
		return
	}

	c.JSON(http.StatusOK, newReviewPayload(review))
}

// Delete handles POST /delete_opinion/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrReviewNotFound, Status: http.StatusNotFound, Message: "review not found"},
			{Err: usecase.ErrNotReviewOwner, Status: http.StatusForbidden, Message: "you can only delete your own review"},
		}, http.StatusInternalServerError, "could not delete review")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "review deleted"})
}
