package runtime

import (
	"context"
	"time"

	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/domain"
)

func (e *Engine) emitTrigger(ctx context.Context, source domain.Source, marker string, t autoformat.Transform) {
	e.emitTriggerKind(ctx, source, marker, t.Kind.String(), t.Name)
}

func (e *Engine) emitTriggerKind(ctx context.Context, source domain.Source, marker, kind, name string) {
	if e.hooks.OnTrigger == nil {
		return
	}
	e.hooks.OnTrigger(ctx, &domain.TriggerEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTrigger},
		Source:    source,
		Marker:    marker,
		Transform: kind,
		Name:      name,
	})
}

func (e *Engine) emitTransformError(ctx context.Context, source domain.Source, marker string, t autoformat.Transform, err error) {
	e.emitTransformErrorKind(ctx, source, marker, t.Kind.String(), t.Name, err)
}

func (e *Engine) emitTransformErrorKind(ctx context.Context, source domain.Source, marker, kind, name string, err error) {
	e.logger.WarnContext(ctx, "transform rejected", "source", source, "transform", kind, "name", name, "error", err)
	if e.hooks.OnTransformError == nil {
		return
	}
	e.hooks.OnTransformError(ctx, &domain.TriggerEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransformError},
		Source:    source,
		Marker:    marker,
		Transform: kind,
		Name:      name,
		Err:       err,
	})
}

func (e *Engine) emitSave(ctx context.Context, bytes int, explicit bool, err error) {
	if e.hooks.OnSave == nil {
		return
	}
	e.hooks.OnSave(ctx, &domain.SaveEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSave},
		Key:       e.key,
		Bytes:     bytes,
		Explicit:  explicit,
		Err:       err,
	})
}

func (e *Engine) emitRestore(ctx context.Context, found bool, blocks int, err error) {
	if e.hooks.OnRestore == nil {
		return
	}
	e.hooks.OnRestore(ctx, &domain.RestoreEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRestore},
		Key:       e.key,
		Found:     found,
		Blocks:    blocks,
		Err:       err,
	})
}
