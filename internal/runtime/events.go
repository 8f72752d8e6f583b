package runtime

import (
	"context"

	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/domain"
)

// OnChange handles a content change. When the caret block holds exactly one
// marker, the marker is consumed and its transform applied. The resulting
// state is persisted either way.
func (e *Engine) OnChange(ctx context.Context, s *document.State) *document.State {
	next := s
	text := s.CaretBlock().Text()
	if p, ok := e.table.Match(text, autoformat.ModeSuffix); ok {
		transformed, err := e.trigger(s, p.Transform)
		if err != nil {
			e.emitTransformError(ctx, domain.SourceTyping, p.Marker, p.Transform, err)
		} else {
			e.logger.DebugContext(ctx, "marker triggered", "marker", p.Marker, "transform", p.Transform.String())
			e.emitTrigger(ctx, domain.SourceTyping, p.Marker, p.Transform)
			next = transformed
		}
	}

	_ = e.persist(ctx, next, false)
	return next
}

// trigger consumes the marker and dispatches t. The style the marker was
// typed in becomes the pending style, so an inline toggle starts from what
// the user was typing rather than from the emptied block.
func (e *Engine) trigger(s *document.State, t autoformat.Transform) (*document.State, error) {
	typing := s.CurrentInlineStyle()
	cleared, err := e.consumeMarker(s)
	if err != nil {
		return nil, &domain.TransformError{Kind: t.Kind.String(), Name: t.Name, Err: err}
	}
	return e.Dispatch(cleared.WithInlineStyleOverride(typing), t)
}

// OnPaste handles pasted text. A payload equal to a marker is never inserted;
// its transform is applied to the current state instead and the paste is
// reported as handled. The html payload is accepted but not interpreted.
func (e *Engine) OnPaste(ctx context.Context, text, html string, s *document.State) (domain.HandleResult, *document.State) {
	p, ok := e.table.Match(text, autoformat.ModeExact)
	if !ok {
		return domain.NotHandled, s
	}

	next, err := e.Dispatch(s, p.Transform)
	if err != nil {
		e.emitTransformError(ctx, domain.SourcePaste, p.Marker, p.Transform, err)
		return domain.Handled, s
	}
	e.logger.DebugContext(ctx, "paste triggered", "marker", p.Marker, "transform", p.Transform.String())
	e.emitTrigger(ctx, domain.SourcePaste, p.Marker, p.Transform)

	_ = e.persist(ctx, next, false)
	return domain.Handled, next
}
