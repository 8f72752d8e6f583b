package document

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrBlockNotFound is returned when a selection references a key absent from the content.
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidSelection is returned when a selection offset lies outside its block.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidContent is returned when blocks cannot form a document
	// (no blocks, empty or duplicate keys).
	ErrInvalidContent = errors.New("invalid content")
)

// Content is an immutable ordered list of blocks, together with the selections
// before and after the edit that produced it.
type Content struct {
	blocks          []*Block
	index           map[string]int
	selectionBefore Selection
	selectionAfter  Selection
}

// NewContent builds a document from blocks. The selections point at the start
// of the first block.
func NewContent(blocks ...*Block) (*Content, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrInvalidContent)
	}
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if b.key == "" {
			return nil, fmt.Errorf("%w: empty block key", ErrInvalidContent)
		}
		if seen[b.key] {
			return nil, fmt.Errorf("%w: duplicate block key %q", ErrInvalidContent, b.key)
		}
		seen[b.key] = true
	}
	sel := Collapsed(blocks[0].key, 0)
	return newContent(slices.Clone(blocks), sel, sel), nil
}

func newContent(blocks []*Block, before, after Selection) *Content {
	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		index[b.key] = i
	}
	return &Content{
		blocks:          blocks,
		index:           index,
		selectionBefore: before,
		selectionAfter:  after,
	}
}

// Blocks returns the blocks in document order.
func (c *Content) Blocks() []*Block {
	return slices.Clone(c.blocks)
}

// BlockCount returns the number of blocks.
func (c *Content) BlockCount() int {
	return len(c.blocks)
}

// Block returns the block with the given key.
func (c *Content) Block(key string) (*Block, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.blocks[i], true
}

// BlockBefore returns the block preceding key, or nil.
func (c *Content) BlockBefore(key string) *Block {
	i, ok := c.index[key]
	if !ok || i == 0 {
		return nil
	}
	return c.blocks[i-1]
}

// BlockAfter returns the block following key, or nil.
func (c *Content) BlockAfter(key string) *Block {
	i, ok := c.index[key]
	if !ok || i == len(c.blocks)-1 {
		return nil
	}
	return c.blocks[i+1]
}

func (c *Content) FirstBlock() *Block { return c.blocks[0] }
func (c *Content) LastBlock() *Block  { return c.blocks[len(c.blocks)-1] }

// SelectionBefore is the selection in place before the edit that produced c.
func (c *Content) SelectionBefore() Selection { return c.selectionBefore }

// SelectionAfter is the selection resulting from the edit that produced c.
func (c *Content) SelectionAfter() Selection { return c.selectionAfter }

// PlainText joins the text of all blocks with newlines.
func (c *Content) PlainText() string {
	lines := make([]string, len(c.blocks))
	for i, b := range c.blocks {
		lines[i] = b.Text()
	}
	return strings.Join(lines, "\n")
}

// HasText reports whether any block holds text.
func (c *Content) HasText() bool {
	return len(c.blocks) > 1 || c.blocks[0].Len() > 0
}

// locate resolves a point to its block index.
func (c *Content) locate(p Point) (int, *Block, error) {
	i, ok := c.index[p.Key]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrBlockNotFound, p.Key)
	}
	b := c.blocks[i]
	if p.Offset < 0 || p.Offset > b.Len() {
		return 0, nil, fmt.Errorf("%w: offset %d outside block %q of length %d", ErrInvalidSelection, p.Offset, p.Key, b.Len())
	}
	return i, b, nil
}

// span orders the selection end points in document order.
func (c *Content) span(sel Selection) (start, end Point, si, ei int, err error) {
	ai, _, err := c.locate(sel.Anchor)
	if err != nil {
		return start, end, 0, 0, err
	}
	fi, _, err := c.locate(sel.Focus)
	if err != nil {
		return start, end, 0, 0, err
	}
	if ai < fi || (ai == fi && sel.Anchor.Offset <= sel.Focus.Offset) {
		return sel.Anchor, sel.Focus, ai, fi, nil
	}
	return sel.Focus, sel.Anchor, fi, ai, nil
}

// Validate checks that sel references existing blocks and offsets.
func (c *Content) Validate(sel Selection) error {
	_, _, _, _, err := c.span(sel)
	return err
}

func (c *Content) replaceBlock(i int, b *Block, before, after Selection) *Content {
	blocks := slices.Clone(c.blocks)
	blocks[i] = b
	return newContent(blocks, before, after)
}

func (c *Content) withSelections(before, after Selection) *Content {
	return newContent(c.blocks, before, after)
}
