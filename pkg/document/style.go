package document

import "slices"

// InlineStyle is a named character-level formatting flag.
type InlineStyle string

const (
	Bold          InlineStyle = "BOLD"
	Italic        InlineStyle = "ITALIC"
	Underline     InlineStyle = "UNDERLINE"
	Code          InlineStyle = "CODE"
	Strikethrough InlineStyle = "STRIKETHROUGH"

	// RedColor is a custom style, serialized like any built-in one.
	RedColor InlineStyle = "RED_COLOR"
)

// StyleSet is a sorted set of inline styles. It is never modified in place;
// Add, Remove and Toggle return new sets.
type StyleSet []InlineStyle

// NewStyleSet builds a normalized set from the given styles.
func NewStyleSet(styles ...InlineStyle) StyleSet {
	if len(styles) == 0 {
		return nil
	}
	set := slices.Clone(styles)
	slices.Sort(set)
	return slices.Compact(set)
}

// Has reports whether the style is part of the set.
func (s StyleSet) Has(style InlineStyle) bool {
	_, found := slices.BinarySearch(s, style)
	return found
}

// Add returns a set that contains style.
func (s StyleSet) Add(style InlineStyle) StyleSet {
	if s.Has(style) {
		return s
	}
	out := make(StyleSet, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, style)
	slices.Sort(out)
	return out
}

// Remove returns a set without style.
func (s StyleSet) Remove(style InlineStyle) StyleSet {
	if !s.Has(style) {
		return s
	}
	out := make(StyleSet, 0, len(s)-1)
	for _, st := range s {
		if st != style {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Toggle adds style when absent and removes it when present.
func (s StyleSet) Toggle(style InlineStyle) StyleSet {
	if s.Has(style) {
		return s.Remove(style)
	}
	return s.Add(style)
}

// Equal reports whether both sets hold the same styles.
func (s StyleSet) Equal(other StyleSet) bool {
	return slices.Equal(s, other)
}

// IsEmpty reports whether no style is set.
func (s StyleSet) IsEmpty() bool {
	return len(s) == 0
}
