package runtime

import (
	"fmt"

	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/domain"
)

// Dispatch applies a transform to the state. It either returns a new state
// or a *domain.TransformError, never a partially transformed document.
func (e *Engine) Dispatch(s *document.State, t autoformat.Transform) (*document.State, error) {
	next, err := e.apply(s, t)
	if err != nil {
		return nil, &domain.TransformError{Kind: t.Kind.String(), Name: t.Name, Err: err}
	}
	return next, nil
}

func (e *Engine) apply(s *document.State, t autoformat.Transform) (*document.State, error) {
	switch t.Kind {
	case autoformat.SetBlockType:
		return e.doc.ToggleBlockType(s, document.BlockType(t.Name))

	case autoformat.ToggleInlineStyle:
		return e.doc.ToggleInlineStyle(s, document.InlineStyle(t.Name))

	case autoformat.SplitAndSetBlockType:
		split, err := e.doc.SplitBlock(s.Content(), s.Selection())
		if err != nil {
			return nil, err
		}
		typed, err := e.doc.SetBlockType(split, split.SelectionAfter(), document.BlockType(t.Name))
		if err != nil {
			return nil, err
		}
		return s.PushPreservingStyle(typed), nil
	}
	return nil, fmt.Errorf("unknown transform kind %d", t.Kind)
}

// consumeMarker clears the caret block so the marker that triggered a
// transform is not left behind as literal text.
func (e *Engine) consumeMarker(s *document.State) (*document.State, error) {
	b := s.CaretBlock()
	if b.Len() == 0 {
		return s, nil
	}
	c, err := e.doc.RemoveRange(s.Content(), document.Range(b.Key(), 0, b.Key(), b.Len()))
	if err != nil {
		return nil, err
	}
	return s.PushPreservingStyle(c), nil
}
