package render

import (
	"slices"

	"github.com/aretw0/draftkit/pkg/document"
)

// Annotation is what a decorator contributes to a segment.
type Annotation struct {
	Color string
}

// Decorator maps characters whose styles satisfy Match to an annotation.
type Decorator struct {
	Name       string
	Match      func(document.StyleSet) bool
	Annotation Annotation
}

// RedColor renders the custom RED_COLOR style in red.
var RedColor = Decorator{
	Name:       "red-color",
	Match:      func(s document.StyleSet) bool { return s.Has(document.RedColor) },
	Annotation: Annotation{Color: "red"},
}

// DefaultDecorators are applied when a renderer is given none.
var DefaultDecorators = []Decorator{RedColor}

// Segment is a run of characters sharing styles and decorations.
type Segment struct {
	Text        string
	Styles      document.StyleSet
	Decorations []Decorator
}

// Color returns the color annotation of the last decorator setting one.
func (s Segment) Color() string {
	color := ""
	for _, d := range s.Decorations {
		if d.Annotation.Color != "" {
			color = d.Annotation.Color
		}
	}
	return color
}

// Segments splits a block into runs. A run ends wherever the styles change or
// a decorator range starts or ends.
func Segments(b *document.Block, decorators ...Decorator) []Segment {
	text := []rune(b.Text())
	if len(text) == 0 {
		return nil
	}

	bounds := []int{0, len(text)}
	for i := 1; i < len(text); i++ {
		if !b.StyleAt(i).Equal(b.StyleAt(i - 1)) {
			bounds = append(bounds, i)
		}
	}

	ranges := make([][][2]int, len(decorators))
	for i, d := range decorators {
		b.FindStyleRanges(d.Match, func(start, end int) {
			ranges[i] = append(ranges[i], [2]int{start, end})
			bounds = append(bounds, start, end)
		})
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	segments := make([]Segment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		seg := Segment{Text: string(text[start:end]), Styles: b.StyleAt(start)}
		for j, d := range decorators {
			for _, r := range ranges[j] {
				if start >= r[0] && start < r[1] {
					seg.Decorations = append(seg.Decorations, d)
					break
				}
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// BlockClass returns the CSS class for a block: "code-block-style" for code
// blocks and "" otherwise.
func BlockClass(b *document.Block) string {
	if b.Type() == document.CodeBlock {
		return "code-block-style"
	}
	return ""
}

func decoratorsOrDefault(decorators []Decorator) []Decorator {
	if len(decorators) == 0 {
		return DefaultDecorators
	}
	return decorators
}
