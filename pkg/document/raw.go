package document

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"unicode/utf16"
)

// ErrInvalidRaw is returned when a raw tree cannot be converted to content.
var ErrInvalidRaw = errors.New("invalid raw content")

// Raw is the serializable tree of a document.
type Raw struct {
	Blocks    []RawBlock     `json:"blocks"`
	EntityMap map[string]any `json:"entityMap"`
}

// RawBlock is the serialized form of a Block.
type RawBlock struct {
	Key               string           `json:"key"`
	Text              string           `json:"text"`
	Type              BlockType        `json:"type"`
	Depth             int              `json:"depth"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges"`
	Data              map[string]any   `json:"data"`
}

// RawStyleRange marks Length characters starting at Offset with Style.
// Offsets and lengths count UTF-16 code units, as Draft.js raw trees do.
type RawStyleRange struct {
	Offset int         `json:"offset"`
	Length int         `json:"length"`
	Style  InlineStyle `json:"style"`
}

// RawEntityRange is kept for format compatibility; entities are not produced.
type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// ToRaw converts content to its serializable tree. Style ranges are emitted
// per style in name order, each as maximal runs.
func (e *Engine) ToRaw(c *Content) Raw {
	raw := Raw{
		Blocks:    make([]RawBlock, 0, len(c.blocks)),
		EntityMap: map[string]any{},
	}
	for _, b := range c.blocks {
		data := maps.Clone(b.data)
		if data == nil {
			data = map[string]any{}
		}
		raw.Blocks = append(raw.Blocks, RawBlock{
			Key:               b.key,
			Text:              b.Text(),
			Type:              b.typ,
			Depth:             b.depth,
			InlineStyleRanges: styleRanges(b),
			EntityRanges:      []RawEntityRange{},
			Data:              data,
		})
	}
	return raw
}

func styleRanges(b *Block) []RawStyleRange {
	var names []InlineStyle
	for _, set := range b.styles {
		for _, st := range set {
			if !slices.Contains(names, st) {
				names = append(names, st)
			}
		}
	}
	slices.Sort(names)

	units := utf16Prefix(b.text)
	ranges := []RawStyleRange{}
	for _, st := range names {
		b.FindStyleRanges(func(set StyleSet) bool { return set.Has(st) }, func(start, end int) {
			ranges = append(ranges, RawStyleRange{
				Offset: units[start],
				Length: units[end] - units[start],
				Style:  st,
			})
		})
	}
	return ranges
}

// utf16Prefix returns, for each rune index i (and len(text)), the number of
// UTF-16 code units preceding it.
func utf16Prefix(text []rune) []int {
	units := make([]int, len(text)+1)
	for i, r := range text {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units[i+1] = units[i] + n
	}
	return units
}

// runeIndex maps a UTF-16 offset back to a rune index. Offsets falling
// inside a surrogate pair are rejected.
func runeIndex(units []int, offset int) (int, bool) {
	i, ok := slices.BinarySearch(units, offset)
	return i, ok
}

// FromRaw converts a raw tree into content. Blocks without a key receive a
// generated one; missing types default to Unstyled.
func (e *Engine) FromRaw(raw Raw) (*Content, error) {
	if len(raw.Blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrInvalidRaw)
	}

	blocks := make([]*Block, 0, len(raw.Blocks))
	seen := make(map[string]bool, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		key := rb.Key
		if key == "" {
			for key == "" || seen[key] {
				key = e.newKey(nil)
			}
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate block key %q", ErrInvalidRaw, key)
		}
		seen[key] = true

		if rb.Depth < 0 {
			return nil, fmt.Errorf("%w: block %d has negative depth", ErrInvalidRaw, i)
		}

		b := NewBlock(key, rb.Type, rb.Text)
		units := utf16Prefix(b.text)
		for _, r := range rb.InlineStyleRanges {
			if r.Offset < 0 || r.Length < 0 || r.Style == "" {
				return nil, fmt.Errorf("%w: block %d style range %+v out of bounds", ErrInvalidRaw, i, r)
			}
			start, okStart := runeIndex(units, r.Offset)
			end, okEnd := runeIndex(units, r.Offset+r.Length)
			if !okStart || !okEnd {
				return nil, fmt.Errorf("%w: block %d style range %+v out of bounds", ErrInvalidRaw, i, r)
			}
			b = b.WithStyle(r.Style, start, end)
		}
		b = b.withDepth(rb.Depth)
		if len(rb.Data) > 0 {
			b = b.WithData(rb.Data)
		}
		blocks = append(blocks, b)
	}

	sel := Collapsed(blocks[0].key, 0)
	return newContent(blocks, sel, sel), nil
}
