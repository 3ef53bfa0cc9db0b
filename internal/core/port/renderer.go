package port

import "io"

// Renderer produces markup for a named page template. Template content
// and layout are external collaborators; the core only selects the
// template and supplies its context data.
type Renderer interface {
	Render(w io.Writer, template string, data map[string]any) error
}
