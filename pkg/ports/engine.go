package ports

import "github.com/aretw0/draftkit/pkg/document"

// DocumentEngine is the rich-text model the autoformat core drives.
// All operations are pure: they return new values and never modify their inputs.
type DocumentEngine interface {
	NewEmpty() *document.State
	NewWithContent(c *document.Content) *document.State

	InsertText(s *document.State, text string) (*document.State, error)
	RemoveRange(c *document.Content, sel document.Selection) (*document.Content, error)
	SplitBlock(c *document.Content, sel document.Selection) (*document.Content, error)
	SetBlockType(c *document.Content, sel document.Selection, typ document.BlockType) (*document.Content, error)

	ToggleBlockType(s *document.State, typ document.BlockType) (*document.State, error)
	ToggleInlineStyle(s *document.State, style document.InlineStyle) (*document.State, error)
	AdjustDepth(s *document.State, delta, maxDepth int) (*document.State, error)

	ToRaw(c *document.Content) document.Raw
	FromRaw(raw document.Raw) (*document.Content, error)
}

var _ DocumentEngine = (*document.Engine)(nil)
