package document

import (
	"slices"
	"strings"
)

// InsertText inserts text at the caret, replacing the selection if it is not
// collapsed. Newlines split the block. Inserted characters receive the
// current inline style.
func (e *Engine) InsertText(s *State, text string) (*State, error) {
	c := s.content
	sel := s.selection
	style := s.CurrentInlineStyle()

	var err error
	if !sel.IsCollapsed() {
		if c, err = e.RemoveRange(c, sel); err != nil {
			return nil, err
		}
		sel = c.selectionAfter
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			if c, err = e.SplitBlock(c, sel); err != nil {
				return nil, err
			}
			sel = c.selectionAfter
		}
		if c, err = c.insertRunes(sel.Focus, []rune(line), style); err != nil {
			return nil, err
		}
		sel = c.selectionAfter
	}

	return s.Push(c.withSelections(s.selection, sel)), nil
}

func (c *Content) insertRunes(p Point, runes []rune, style StyleSet) (*Content, error) {
	i, b, err := c.locate(p)
	if err != nil {
		return nil, err
	}
	text := make([]rune, 0, b.Len()+len(runes))
	text = append(text, b.text[:p.Offset]...)
	text = append(text, runes...)
	text = append(text, b.text[p.Offset:]...)

	styles := make([]StyleSet, 0, b.Len()+len(runes))
	styles = append(styles, b.styles[:p.Offset]...)
	for range runes {
		styles = append(styles, style)
	}
	styles = append(styles, b.styles[p.Offset:]...)

	before := Collapsed(p.Key, p.Offset)
	after := Collapsed(p.Key, p.Offset+len(runes))
	return c.replaceBlock(i, b.withText(text, styles), before, after), nil
}

// RemoveRange deletes the selected text, merging the first and last selected
// blocks. The resulting selection is collapsed at the start of the range.
func (e *Engine) RemoveRange(c *Content, sel Selection) (*Content, error) {
	start, end, si, ei, err := c.span(sel)
	if err != nil {
		return nil, err
	}
	sb, eb := c.blocks[si], c.blocks[ei]

	text := slices.Concat(sb.text[:start.Offset], eb.text[end.Offset:])
	styles := slices.Concat(sb.styles[:start.Offset], eb.styles[end.Offset:])

	blocks := slices.Concat(c.blocks[:si], []*Block{sb.withText(text, styles)}, c.blocks[ei+1:])
	return newContent(blocks, sel, Collapsed(start.Key, start.Offset)), nil
}

// SplitBlock splits the caret block in two. The new block keeps the type and
// depth of the original and the caret moves to its start.
func (e *Engine) SplitBlock(c *Content, sel Selection) (*Content, error) {
	var err error
	if !sel.IsCollapsed() {
		if c, err = e.RemoveRange(c, sel); err != nil {
			return nil, err
		}
		sel = c.selectionAfter
	}
	i, b, err := c.locate(sel.Focus)
	if err != nil {
		return nil, err
	}
	off := sel.Focus.Offset

	head := b.withText(slices.Clone(b.text[:off]), slices.Clone(b.styles[:off]))
	tail := &Block{
		key:    e.newKey(c),
		typ:    b.typ,
		text:   slices.Clone(b.text[off:]),
		styles: slices.Clone(b.styles[off:]),
		depth:  b.depth,
	}

	blocks := slices.Concat(c.blocks[:i], []*Block{head, tail}, c.blocks[i+1:])
	return newContent(blocks, sel, Collapsed(tail.key, 0)), nil
}

// SetBlockType sets the type of every block touched by the selection.
func (e *Engine) SetBlockType(c *Content, sel Selection, typ BlockType) (*Content, error) {
	_, _, si, ei, err := c.span(sel)
	if err != nil {
		return nil, err
	}
	blocks := slices.Clone(c.blocks)
	for i := si; i <= ei; i++ {
		blocks[i] = blocks[i].withType(typ)
	}
	return newContent(blocks, sel, sel), nil
}

// ToggleBlockType sets typ on the selected blocks, or resets them to Unstyled
// when all of them already have it.
func (e *Engine) ToggleBlockType(s *State, typ BlockType) (*State, error) {
	_, _, si, ei, err := s.content.span(s.selection)
	if err != nil {
		return nil, err
	}
	target := Unstyled
	for i := si; i <= ei; i++ {
		if s.content.blocks[i].typ != typ {
			target = typ
			break
		}
	}
	c, err := e.SetBlockType(s.content, s.selection, target)
	if err != nil {
		return nil, err
	}
	return s.PushPreservingStyle(c), nil
}

// ToggleInlineStyle toggles style at the caret (as an override for the next
// inserted text) or over the selected characters.
func (e *Engine) ToggleInlineStyle(s *State, style InlineStyle) (*State, error) {
	if s.selection.IsCollapsed() {
		if err := s.content.Validate(s.selection); err != nil {
			return nil, err
		}
		return s.withOverride(s.CurrentInlineStyle().Toggle(style)), nil
	}

	start, end, si, ei, err := s.content.span(s.selection)
	if err != nil {
		return nil, err
	}

	all := true
	eachSelected(s.content, start, end, si, ei, func(b *Block, from, to int) {
		for _, set := range b.styles[from:to] {
			if !set.Has(style) {
				all = false
			}
		}
	})

	apply := StyleSet.Add
	if all {
		apply = StyleSet.Remove
	}
	blocks := slices.Clone(s.content.blocks)
	eachSelected(s.content, start, end, si, ei, func(b *Block, from, to int) {
		styles := slices.Clone(b.styles)
		for j := from; j < to; j++ {
			styles[j] = apply(styles[j], style)
		}
		blocks[s.content.index[b.key]] = b.withText(b.text, styles)
	})

	return s.Push(newContent(blocks, s.selection, s.selection)), nil
}

func eachSelected(c *Content, start, end Point, si, ei int, fn func(b *Block, from, to int)) {
	for i := si; i <= ei; i++ {
		b := c.blocks[i]
		from, to := 0, b.Len()
		if i == si {
			from = start.Offset
		}
		if i == ei {
			to = end.Offset
		}
		fn(b, from, to)
	}
}

// AdjustDepth indents (delta > 0) or outdents (delta < 0) the selected list
// items. Indentation is bounded by maxDepth and by one level below the
// previous list item. The state is returned unchanged when nothing moves.
func (e *Engine) AdjustDepth(s *State, delta, maxDepth int) (*State, error) {
	_, _, si, ei, err := s.content.span(s.selection)
	if err != nil {
		return nil, err
	}
	if !s.content.blocks[si].typ.IsList() {
		return s, nil
	}

	limit := maxDepth
	if delta > 0 {
		if si == 0 || !s.content.blocks[si-1].typ.IsList() {
			return s, nil
		}
		limit = min(s.content.blocks[si-1].depth+1, maxDepth)
	}

	blocks := slices.Clone(s.content.blocks)
	changed := false
	for i := si; i <= ei; i++ {
		b := blocks[i]
		if !b.typ.IsList() {
			continue
		}
		depth := max(0, min(b.depth+delta, limit))
		if depth != b.depth {
			blocks[i] = b.withDepth(depth)
			changed = true
		}
	}
	if !changed {
		return s, nil
	}
	return s.PushPreservingStyle(newContent(blocks, s.selection, s.selection)), nil
}
