package document

import (
	"maps"
	"slices"
)

// BlockType is the type tag of a block.
type BlockType string

const (
	Unstyled          BlockType = "unstyled"
	HeaderOne         BlockType = "header-one"
	HeaderTwo         BlockType = "header-two"
	HeaderThree       BlockType = "header-three"
	HeaderFour        BlockType = "header-four"
	HeaderFive        BlockType = "header-five"
	HeaderSix         BlockType = "header-six"
	Blockquote        BlockType = "blockquote"
	CodeBlock         BlockType = "code-block"
	UnorderedListItem BlockType = "unordered-list-item"
	OrderedListItem   BlockType = "ordered-list-item"
)

// IsList reports whether blocks of this type can be nested with a depth.
func (t BlockType) IsList() bool {
	return t == UnorderedListItem || t == OrderedListItem
}

// HeaderLevel returns 1-6 for header types and 0 otherwise.
func (t BlockType) HeaderLevel() int {
	switch t {
	case HeaderOne:
		return 1
	case HeaderTwo:
		return 2
	case HeaderThree:
		return 3
	case HeaderFour:
		return 4
	case HeaderFive:
		return 5
	case HeaderSix:
		return 6
	}
	return 0
}

// Block is a structural unit of the document. Blocks are immutable.
type Block struct {
	key    string
	typ    BlockType
	text   []rune
	styles []StyleSet
	depth  int
	data   map[string]any
}

// NewBlock creates a block whose text carries no inline styles.
// An empty type defaults to Unstyled.
func NewBlock(key string, typ BlockType, text string) *Block {
	if typ == "" {
		typ = Unstyled
	}
	runes := []rune(text)
	return &Block{
		key:    key,
		typ:    typ,
		text:   runes,
		styles: make([]StyleSet, len(runes)),
	}
}

func (b *Block) Key() string          { return b.key }
func (b *Block) Type() BlockType      { return b.typ }
func (b *Block) Text() string         { return string(b.text) }
func (b *Block) Len() int             { return len(b.text) }
func (b *Block) Depth() int           { return b.depth }
func (b *Block) Data() map[string]any { return maps.Clone(b.data) }

// StyleAt returns the styles of the character at offset, or nil when out of range.
func (b *Block) StyleAt(offset int) StyleSet {
	if offset < 0 || offset >= len(b.styles) {
		return nil
	}
	return b.styles[offset]
}

// FindStyleRanges calls fn with the [start, end) bounds of every maximal run of
// characters whose styles satisfy match.
func (b *Block) FindStyleRanges(match func(StyleSet) bool, fn func(start, end int)) {
	start := -1
	for i, set := range b.styles {
		ok := match(set)
		switch {
		case ok && start < 0:
			start = i
		case !ok && start >= 0:
			fn(start, i)
			start = -1
		}
	}
	if start >= 0 {
		fn(start, len(b.styles))
	}
}

// withText returns a copy of b holding the given runes and styles.
func (b *Block) withText(text []rune, styles []StyleSet) *Block {
	nb := *b
	nb.text = text
	nb.styles = styles
	return &nb
}

func (b *Block) withType(typ BlockType) *Block {
	nb := *b
	nb.typ = typ
	return &nb
}

func (b *Block) withDepth(depth int) *Block {
	nb := *b
	nb.depth = depth
	return &nb
}

// WithStyle returns a copy of b where style is added to the characters in [start, end).
func (b *Block) WithStyle(style InlineStyle, start, end int) *Block {
	start = max(start, 0)
	end = min(end, len(b.styles))
	styles := slices.Clone(b.styles)
	for i := start; i < end; i++ {
		styles[i] = styles[i].Add(style)
	}
	return b.withText(b.text, styles)
}

// WithDepth returns a copy of b at the given nesting depth.
func (b *Block) WithDepth(depth int) *Block {
	return b.withDepth(max(depth, 0))
}

// WithData returns a copy of b carrying the given metadata.
func (b *Block) WithData(data map[string]any) *Block {
	nb := *b
	nb.data = maps.Clone(data)
	return &nb
}
