package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/draftkit/internal/presentation/tui"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/aretw0/draftkit/pkg/render"
	"github.com/muesli/termenv"
)

// Output formats accepted by Render.
const (
	FormatTerminal = "terminal"
	FormatMarkdown = "markdown"
	FormatGlamour  = "glamour"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// RenderOptions tunes Render.
type RenderOptions struct {
	Profile      termenv.Profile
	GlamourStyle string
	Width        int
}

// Render writes c to w in the given format.
func Render(w io.Writer, format string, doc ports.DocumentEngine, c *document.Content, opts RenderOptions) error {
	switch format {
	case "", FormatTerminal:
		_, err := fmt.Fprintln(w, render.Terminal(c, opts.Profile))
		return err
	case FormatMarkdown:
		_, err := fmt.Fprint(w, render.Markdown(c))
		return err
	case FormatHTML:
		_, err := fmt.Fprint(w, render.HTML(c))
		return err
	case FormatGlamour:
		r, err := tui.NewRenderer(opts.GlamourStyle, opts.Width)
		if err != nil {
			return err
		}
		out, err := r.Render(c)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = fmt.Fprint(w, out)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.ToRaw(c))
	}
	return fmt.Errorf("unknown format %q (want terminal, markdown, glamour, html or json)", format)
}
