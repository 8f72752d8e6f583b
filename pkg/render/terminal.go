package render

import (
	"strconv"
	"strings"

	"github.com/aretw0/draftkit/pkg/document"
	"github.com/muesli/termenv"
)

var terminalColors = map[string]string{
	"red": "#ef4444",
}

// Terminal renders content with ANSI styling for the given color profile.
// termenv.Ascii yields plain text with block prefixes only.
func Terminal(c *document.Content, profile termenv.Profile, decorators ...Decorator) string {
	decorators = decoratorsOrDefault(decorators)
	var sb strings.Builder
	counters := newListCounters()

	for i, b := range c.Blocks() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		prefix := ""
		switch t := b.Type(); {
		case t.HeaderLevel() > 0:
			prefix = strings.Repeat("#", t.HeaderLevel()) + " "
		case t == document.Blockquote:
			prefix = "│ "
		case t == document.CodeBlock:
			prefix = "    "
		case t == document.UnorderedListItem:
			prefix = strings.Repeat("  ", b.Depth()) + "• "
		case t == document.OrderedListItem:
			prefix = strings.Repeat("  ", b.Depth()) + strconv.Itoa(counters.next(b)) + ". "
		}
		if !b.Type().IsList() {
			counters.reset()
		}
		sb.WriteString(profile.String(prefix).Faint().String())

		for _, seg := range Segments(b, decorators...) {
			st := profile.String(seg.Text)
			if b.Type().HeaderLevel() > 0 {
				st = st.Bold()
			}
			if b.Type() == document.CodeBlock {
				st = st.Foreground(profile.Color("#a3a3a3"))
			}
			if seg.Styles.Has(document.Bold) {
				st = st.Bold()
			}
			if seg.Styles.Has(document.Italic) {
				st = st.Italic()
			}
			if seg.Styles.Has(document.Underline) {
				st = st.Underline()
			}
			if seg.Styles.Has(document.Strikethrough) {
				st = st.CrossOut()
			}
			if seg.Styles.Has(document.Code) {
				st = st.Reverse()
			}
			if color := seg.Color(); color != "" {
				if hex, ok := terminalColors[color]; ok {
					color = hex
				}
				st = st.Foreground(profile.Color(color))
			}
			sb.WriteString(st.String())
		}
	}
	return sb.String()
}

// listCounters numbers ordered list items per depth.
type listCounters struct {
	counts []int
}

func newListCounters() *listCounters {
	return &listCounters{counts: make([]int, document.MaxDepth+1)}
}

func (l *listCounters) next(b *document.Block) int {
	d := min(b.Depth(), len(l.counts)-1)
	l.counts[d]++
	for i := d + 1; i < len(l.counts); i++ {
		l.counts[i] = 0
	}
	return l.counts[d]
}

func (l *listCounters) reset() {
	clear(l.counts)
}
