package document

// State is an immutable editor snapshot: content, selection and the inline
// style override that the next inserted text will receive.
type State struct {
	content     *Content
	selection   Selection
	override    StyleSet
	hasOverride bool
}

// Content returns the current content.
func (s *State) Content() *Content { return s.content }

// Selection returns the current selection.
func (s *State) Selection() Selection { return s.selection }

// InlineStyleOverride returns the pending style set at the caret, if any.
func (s *State) InlineStyleOverride() (StyleSet, bool) {
	return s.override, s.hasOverride
}

// CaretBlock returns the block holding the focus of the selection.
func (s *State) CaretBlock() *Block {
	b, ok := s.content.Block(s.selection.Focus.Key)
	if !ok {
		return s.content.LastBlock()
	}
	return b
}

// CurrentInlineStyle returns the styles that inserted text will receive.
// Without an override it follows the character before the caret, then the
// first character of the block, then the last character of the nearest
// preceding block holding text.
func (s *State) CurrentInlineStyle() StyleSet {
	if s.hasOverride {
		return s.override
	}
	start, _, si, _, err := s.content.span(s.selection)
	if err != nil {
		return nil
	}
	b := s.content.blocks[si]
	if !s.selection.IsCollapsed() && start.Offset < b.Len() {
		return b.styles[start.Offset]
	}
	if start.Offset > 0 {
		return b.styles[start.Offset-1]
	}
	if b.Len() > 0 {
		return b.styles[0]
	}
	for i := si - 1; i >= 0; i-- {
		prev := s.content.blocks[i]
		if prev.Len() > 0 {
			return prev.styles[prev.Len()-1]
		}
	}
	return nil
}

// WithSelection returns a state with a new selection. The override is dropped.
func (s *State) WithSelection(sel Selection) (*State, error) {
	if err := s.content.Validate(sel); err != nil {
		return nil, err
	}
	return &State{content: s.content, selection: sel}, nil
}

// Push returns a state holding c, with the selection c ends with.
// The inline style override is cleared.
func (s *State) Push(c *Content) *State {
	return &State{content: c, selection: c.selectionAfter}
}

// PushPreservingStyle is Push for structural changes (block type, depth,
// split) after which the pending inline style must survive.
func (s *State) PushPreservingStyle(c *Content) *State {
	return &State{
		content:     c,
		selection:   c.selectionAfter,
		override:    s.override,
		hasOverride: s.hasOverride,
	}
}

// WithInlineStyleOverride returns s with set pending at the caret.
func (s *State) WithInlineStyleOverride(set StyleSet) *State {
	return s.withOverride(set)
}

func (s *State) withOverride(set StyleSet) *State {
	return &State{
		content:     s.content,
		selection:   s.selection,
		override:    set,
		hasOverride: true,
	}
}
