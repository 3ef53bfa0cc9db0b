package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/transport/http/middleware"
)

// PageHandler serves the static site pages through the renderer seam.
type PageHandler struct {
	renderer port.Renderer
	logger   *zap.Logger
}

// NewPageHandler builds a page handler.
func NewPageHandler(renderer port.Renderer, log *zap.Logger) *PageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageHandler{renderer: renderer, logger: log}
}

// Home handles GET /.
func (h *PageHandler) Home(c *gin.Context) {
	h.render(c, "index.html", h.pageData(c, nil))
}

// About handles GET /about.
func (h *PageHandler) About(c *gin.Context) {
	h.render(c, "about.html", h.pageData(c, nil))
}

// Projects handles GET /projects.
func (h *PageHandler) Projects(c *gin.Context) {
	h.render(c, "projects.html", h.pageData(c, map[string]any{
		"projects": domain.ProjectNames,
	}))
}

// LoginPage handles GET /login. The confirmation redirect lands here
// with a status query that the template surfaces to the user.
func (h *PageHandler) LoginPage(c *gin.Context) {
	h.render(c, "login.html", h.pageData(c, map[string]any{
		"status": c.Query("status"),
	}))
}

// RegisterPage handles GET /register.
func (h *PageHandler) RegisterPage(c *gin.Context) {
	h.render(c, "register.html", h.pageData(c, nil))
}

func (h *PageHandler) pageData(c *gin.Context, extra map[string]any) map[string]any {
	data := map[string]any{}
	if user, ok := middleware.CurrentUser(c); ok {
		data["username"] = user.Username
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *PageHandler) render(c *gin.Context, template string, data map[string]any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.renderer.Render(c.Writer, template, data); err != nil {
		h.logger.Error("page render failed", zap.String("template", template), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
