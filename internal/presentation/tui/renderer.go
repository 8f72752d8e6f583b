package tui

import (
	"fmt"

	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/render"
	"github.com/charmbracelet/glamour"
)

// Renderer previews documents as styled markdown using glamour.
type Renderer struct {
	r *glamour.TermRenderer
}

// NewRenderer creates a preview renderer. An empty style detects the
// terminal background; "notty" produces plain output for pipes.
func NewRenderer(style string, width int) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if style != "" {
		opts = []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{r: r}, nil
}

// Render converts the content to markdown and styles it for the terminal.
func (r *Renderer) Render(c *document.Content) (string, error) {
	return r.r.Render(render.Markdown(c))
}
