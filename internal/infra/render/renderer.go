// Package render provides the template-rendering collaborator behind
// port.Renderer. Template content is deployment-supplied; the core
// only names a template and hands over context data.
package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/arklim/social-platform-reviews/internal/core/port"
)

// TemplateRenderer renders html/template files parsed from a directory.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses every template matching glob (for example
// "templates/*.html").
func NewTemplateRenderer(glob string) (*TemplateRenderer, error) {
	templates, err := template.ParseGlob(glob)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: templates}, nil
}

// Render writes the named template with the supplied data.
func (r *TemplateRenderer) Render(w io.Writer, name string, data map[string]any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render template %s: %w", name, err)
	}
	return nil
}

var _ port.Renderer = (*TemplateRenderer)(nil)
