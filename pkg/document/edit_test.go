package document_test

import (
	"testing"

	"github.com/aretw0/draftkit/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_NewEmpty(t *testing.T) {
	eng := sequentialKeys()
	s := eng.NewEmpty()

	require.Equal(t, 1, s.Content().BlockCount())
	b := s.Content().FirstBlock()
	assert.Equal(t, "k1", b.Key())
	assert.Equal(t, document.Unstyled, b.Type())
	assert.Equal(t, "", b.Text())
	assert.Equal(t, document.Collapsed("k1", 0), s.Selection())
	assert.False(t, s.Content().HasText())
}

func TestEngine_InsertText(t *testing.T) {
	eng := sequentialKeys()
	s, err := eng.InsertText(eng.NewEmpty(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", s.Content().PlainText())
	assert.Equal(t, document.Collapsed("k1", 5), s.Selection())

	t.Run("Newlines split blocks", func(t *testing.T) {
		next, err := eng.InsertText(s, " world\nsecond\r\nthird")
		require.NoError(t, err)
		assert.Equal(t, "hello world\nsecond\nthird", next.Content().PlainText())
		assert.Equal(t, 3, next.Content().BlockCount())
		assert.Equal(t, next.Content().LastBlock().Key(), next.Selection().Focus.Key)
		assert.Equal(t, 5, next.Selection().Focus.Offset)
	})

	t.Run("Replaces a selection", func(t *testing.T) {
		sel, err := s.WithSelection(document.Range("k1", 1, "k1", 4))
		require.NoError(t, err)
		next, err := eng.InsertText(sel, "ipp")
		require.NoError(t, err)
		assert.Equal(t, "hippo", next.Content().PlainText())
	})

	t.Run("Original state is untouched", func(t *testing.T) {
		assert.Equal(t, "hello", s.Content().PlainText())
	})
}

func TestEngine_ToggleInlineStyle_Collapsed(t *testing.T) {
	eng := sequentialKeys()
	s, err := eng.ToggleInlineStyle(eng.NewEmpty(), document.RedColor)
	require.NoError(t, err)

	override, ok := s.InlineStyleOverride()
	require.True(t, ok)
	assert.True(t, override.Has(document.RedColor))

	s, err = eng.InsertText(s, "a")
	require.NoError(t, err)
	_, ok = s.InlineStyleOverride()
	assert.False(t, ok, "insertion consumes the override")

	s, err = eng.InsertText(s, "b")
	require.NoError(t, err)

	b := s.Content().FirstBlock()
	assert.True(t, b.StyleAt(0).Has(document.RedColor))
	assert.True(t, b.StyleAt(1).Has(document.RedColor), "following characters inherit the style")

	s, err = eng.ToggleInlineStyle(s, document.RedColor)
	require.NoError(t, err)
	s, err = eng.InsertText(s, "c")
	require.NoError(t, err)
	assert.False(t, s.Content().FirstBlock().StyleAt(2).Has(document.RedColor))
}

func TestEngine_ToggleInlineStyle_Range(t *testing.T) {
	eng := sequentialKeys()
	s, err := eng.InsertText(eng.NewEmpty(), "abcd")
	require.NoError(t, err)
	s, err = s.WithSelection(document.Range("k1", 3, "k1", 1))
	require.NoError(t, err)

	bold, err := eng.ToggleInlineStyle(s, document.Bold)
	require.NoError(t, err)
	b := bold.Content().FirstBlock()
	assert.False(t, b.StyleAt(0).Has(document.Bold))
	assert.True(t, b.StyleAt(1).Has(document.Bold))
	assert.True(t, b.StyleAt(2).Has(document.Bold))
	assert.False(t, b.StyleAt(3).Has(document.Bold))

	plain, err := eng.ToggleInlineStyle(bold, document.Bold)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.False(t, plain.Content().FirstBlock().StyleAt(i).Has(document.Bold))
	}
}

func TestEngine_ToggleBlockType(t *testing.T) {
	eng := sequentialKeys()
	s := eng.NewEmpty()

	once, err := eng.ToggleBlockType(s, document.HeaderOne)
	require.NoError(t, err)
	assert.Equal(t, document.HeaderOne, once.CaretBlock().Type())

	twice, err := eng.ToggleBlockType(once, document.HeaderOne)
	require.NoError(t, err)
	assert.Equal(t, document.Unstyled, twice.CaretBlock().Type(), "second toggle reverts to the default type")
}

func TestEngine_SplitBlock(t *testing.T) {
	eng := sequentialKeys()
	s, err := eng.InsertText(eng.NewEmpty(), "headtail")
	require.NoError(t, err)
	s, err = eng.ToggleBlockType(s, document.Blockquote)
	require.NoError(t, err)

	c, err := eng.SplitBlock(s.Content(), document.Collapsed("k1", 4))
	require.NoError(t, err)

	blocks := c.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "head", blocks[0].Text())
	assert.Equal(t, "tail", blocks[1].Text())
	assert.Equal(t, document.Blockquote, blocks[1].Type())
	assert.Equal(t, document.Collapsed(blocks[1].Key(), 0), c.SelectionAfter())
	assert.Equal(t, document.Collapsed("k1", 4), c.SelectionBefore())
}

func TestEngine_InvalidSelection(t *testing.T) {
	eng := sequentialKeys()
	s := eng.NewEmpty()

	_, err := eng.SplitBlock(s.Content(), document.Collapsed("missing", 0))
	assert.ErrorIs(t, err, document.ErrBlockNotFound)

	_, err = eng.SetBlockType(s.Content(), document.Collapsed("k1", 3), document.CodeBlock)
	assert.ErrorIs(t, err, document.ErrInvalidSelection)

	_, err = s.WithSelection(document.Collapsed("k1", -1))
	assert.ErrorIs(t, err, document.ErrInvalidSelection)
}

func TestEngine_RemoveRange_AcrossBlocks(t *testing.T) {
	eng := sequentialKeys()
	s, err := eng.InsertText(eng.NewEmpty(), "one\ntwo\nthree")
	require.NoError(t, err)
	blocks := s.Content().Blocks()

	c, err := eng.RemoveRange(s.Content(), document.Range(blocks[0].Key(), 1, blocks[2].Key(), 2))
	require.NoError(t, err)
	assert.Equal(t, "oree", c.PlainText())
	assert.Equal(t, document.Collapsed(blocks[0].Key(), 1), c.SelectionAfter())
}

func TestEngine_AdjustDepth(t *testing.T) {
	eng := sequentialKeys()
	s, err := eng.InsertText(eng.NewEmpty(), "a\nb")
	require.NoError(t, err)
	all, err := s.WithSelection(document.Range("k1", 0, "k2", 1))
	require.NoError(t, err)
	all, err = eng.ToggleBlockType(all, document.UnorderedListItem)
	require.NoError(t, err)

	second, err := all.WithSelection(document.Collapsed("k2", 1))
	require.NoError(t, err)

	indented, err := eng.AdjustDepth(second, 1, document.MaxDepth)
	require.NoError(t, err)
	assert.Equal(t, 1, indented.CaretBlock().Depth())

	again, err := eng.AdjustDepth(indented, 1, document.MaxDepth)
	require.NoError(t, err)
	assert.Same(t, indented, again, "depth is bounded by the previous item")

	outdented, err := eng.AdjustDepth(indented, -1, document.MaxDepth)
	require.NoError(t, err)
	assert.Equal(t, 0, outdented.CaretBlock().Depth())

	first, err := all.WithSelection(document.Collapsed("k1", 0))
	require.NoError(t, err)
	unchanged, err := eng.AdjustDepth(first, 1, document.MaxDepth)
	require.NoError(t, err)
	assert.Same(t, first, unchanged, "first list item has no parent to nest under")
}

func TestState_CurrentInlineStyle_LooksUpward(t *testing.T) {
	eng := sequentialKeys()
	s, err := eng.ToggleInlineStyle(eng.NewEmpty(), document.Italic)
	require.NoError(t, err)
	s, err = eng.InsertText(s, "x\n")
	require.NoError(t, err)

	assert.Equal(t, "", s.CaretBlock().Text())
	assert.True(t, s.CurrentInlineStyle().Has(document.Italic))
}
