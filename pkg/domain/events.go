package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTrigger        EventType = "trigger"
	EventTransformError EventType = "transform_error"
	EventSave           EventType = "save"
	EventRestore        EventType = "restore"
)

// Source tells which host input produced a trigger.
type Source string

const (
	SourceTyping  Source = "typing"
	SourcePaste   Source = "paste"
	SourceCommand Source = "command"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TriggerEvent describes a transform fired by a typed marker, a paste or a key command.
type TriggerEvent struct {
	EventBase
	Source    Source `json:"source"`
	Marker    string `json:"marker,omitempty"`
	Transform string `json:"transform"`
	Name      string `json:"name"`
	Err       error  `json:"-"`
}

// SaveEvent describes a write of the persisted blob.
type SaveEvent struct {
	EventBase
	Key      string `json:"key"`
	Bytes    int    `json:"bytes"`
	Explicit bool   `json:"explicit"`
	Err      error  `json:"-"`
}

// RestoreEvent describes the read performed on mount.
type RestoreEvent struct {
	EventBase
	Key    string `json:"key"`
	Found  bool   `json:"found"`
	Blocks int    `json:"blocks"`
	Err    error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTrigger        func(context.Context, *TriggerEvent)
	OnTransformError func(context.Context, *TriggerEvent)
	OnSave           func(context.Context, *SaveEvent)
	OnRestore        func(context.Context, *RestoreEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTrigger:        chain(h.OnTrigger, other.OnTrigger),
		OnTransformError: chain(h.OnTransformError, other.OnTransformError),
		OnSave:           chain(h.OnSave, other.OnSave),
		OnRestore:        chain(h.OnRestore, other.OnRestore),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
