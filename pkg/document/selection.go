package document

// Point is a caret position: a block key and a rune offset inside it.
type Point struct {
	Key    string `json:"key"`
	Offset int    `json:"offset"`
}

// Selection is a range between an anchor and a focus. When both are equal it
// is a collapsed caret. The focus is where typing happens.
type Selection struct {
	Anchor Point `json:"anchor"`
	Focus  Point `json:"focus"`
}

// Collapsed returns a caret selection at the given position.
func Collapsed(key string, offset int) Selection {
	p := Point{Key: key, Offset: offset}
	return Selection{Anchor: p, Focus: p}
}

// Range returns a forward selection from start to end.
func Range(startKey string, startOffset int, endKey string, endOffset int) Selection {
	return Selection{
		Anchor: Point{Key: startKey, Offset: startOffset},
		Focus:  Point{Key: endKey, Offset: endOffset},
	}
}

// IsCollapsed reports whether the selection has no extent.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Caret returns the focus point.
func (s Selection) Caret() Point {
	return s.Focus
}
