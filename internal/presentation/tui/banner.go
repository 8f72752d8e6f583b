package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the editor banner and a short usage hint.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	title := termenv.String(" draftkit ").Bold().Foreground(p.Color("#f8fafc")).Background(p.Color("#6366f1"))
	hint := termenv.String(`type markers like "# " or "** "; :help lists commands`).Faint()

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, hint)
	fmt.Fprintln(w)
}
