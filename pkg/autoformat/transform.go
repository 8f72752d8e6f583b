package autoformat

import "github.com/aretw0/draftkit/pkg/document"

// Kind enumerates the transforms a trigger can request.
type Kind int

const (
	// SetBlockType retypes the caret block.
	SetBlockType Kind = iota + 1
	// ToggleInlineStyle toggles a character style at the caret.
	ToggleInlineStyle
	// SplitAndSetBlockType splits the caret block and retypes the new one.
	SplitAndSetBlockType
)

func (k Kind) String() string {
	switch k {
	case SetBlockType:
		return "set-block-type"
	case ToggleInlineStyle:
		return "toggle-inline-style"
	case SplitAndSetBlockType:
		return "split-and-set-block-type"
	}
	return "unknown"
}

// Transform is a tagged variant: Kind plus the block type or style it targets.
type Transform struct {
	Kind Kind
	Name string
}

// BlockType returns a SetBlockType transform.
func BlockType(t document.BlockType) Transform {
	return Transform{Kind: SetBlockType, Name: string(t)}
}

// InlineStyle returns a ToggleInlineStyle transform.
func InlineStyle(s document.InlineStyle) Transform {
	return Transform{Kind: ToggleInlineStyle, Name: string(s)}
}

// SplitAndBlockType returns a SplitAndSetBlockType transform.
func SplitAndBlockType(t document.BlockType) Transform {
	return Transform{Kind: SplitAndSetBlockType, Name: string(t)}
}

func (t Transform) String() string {
	return t.Kind.String() + "(" + t.Name + ")"
}
