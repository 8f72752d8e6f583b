package autoformat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/draftkit/pkg/document"
)

var (
	// ErrShadowedPattern is returned when an earlier marker is a suffix of a later one.
	ErrShadowedPattern = errors.New("pattern shadowed by an earlier, shorter marker")

	// ErrDuplicatePattern is returned when two patterns share the same trimmed marker.
	ErrDuplicatePattern = errors.New("duplicate pattern")
)

// Mode selects how a pattern is compared with the input.
type Mode int

const (
	// ModeSuffix matches the trailing text of the caret block while typing.
	ModeSuffix Mode = iota
	// ModeExact matches a whole pasted payload.
	ModeExact
)

// Pattern binds a literal marker to a transform.
type Pattern struct {
	// Marker is the literal text, trailing space included (e.g. "# ").
	Marker string

	// TrimOnPaste relaxes paste matching to whitespace-trimmed equality.
	TrimOnPaste bool

	Transform Transform
}

func (p Pattern) trimmed() string {
	return strings.TrimSpace(p.Marker)
}

// Matches reports whether text triggers p under the given mode.
func (p Pattern) Matches(text string, mode Mode) bool {
	switch mode {
	case ModeExact:
		if p.TrimOnPaste {
			return strings.TrimSpace(text) == p.trimmed()
		}
		return text == p.Marker
	default:
		return strings.HasSuffix(text, p.Marker) && strings.TrimSpace(text) == p.trimmed()
	}
}

// Table is an ordered list of patterns. The first match wins.
type Table []Pattern

// DefaultTable is the built-in trigger set.
var DefaultTable = Table{
	{Marker: "*** ", Transform: InlineStyle(document.Underline)},
	{Marker: "** ", Transform: InlineStyle(document.RedColor)},
	{Marker: "* ", Transform: InlineStyle(document.Bold)},
	{Marker: "# ", Transform: BlockType(document.HeaderOne)},
	{Marker: "``` ", TrimOnPaste: true, Transform: SplitAndBlockType(document.CodeBlock)},
}

// Match returns the first pattern matching text.
func (t Table) Match(text string, mode Mode) (Pattern, bool) {
	for _, p := range t {
		if p.Matches(text, mode) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Validate checks that every pattern is reachable.
func (t Table) Validate() error {
	for i, p := range t {
		if p.trimmed() == "" {
			return fmt.Errorf("pattern %d has an empty marker", i)
		}
		for _, later := range t[i+1:] {
			if later.trimmed() == p.trimmed() {
				return fmt.Errorf("%w: %q", ErrDuplicatePattern, p.Marker)
			}
			if len(later.Marker) > len(p.Marker) && strings.HasSuffix(later.Marker, p.Marker) {
				return fmt.Errorf("%w: %q precedes %q", ErrShadowedPattern, p.Marker, later.Marker)
			}
		}
	}
	return nil
}
