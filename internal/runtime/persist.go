package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/domain"
)

// Mount restores the persisted document. It never fails: a missing blob
// yields an empty document and an unreadable one is logged and replaced by
// an empty document.
func (e *Engine) Mount(ctx context.Context) *document.State {
	s, err := e.Restore(ctx)
	if err != nil {
		e.logger.WarnContext(ctx, "discarding persisted document", "key", e.key, "error", err)
	}
	return s
}

// Restore is Mount with the restore error exposed. The returned state is
// always usable; on error it is an empty document.
func (e *Engine) Restore(ctx context.Context) (*document.State, error) {
	blob, err := e.store.Get(ctx, e.key)
	if errors.Is(err, domain.ErrBlobNotFound) {
		e.logger.DebugContext(ctx, "no persisted document", "key", e.key)
		e.emitRestore(ctx, false, 0, nil)
		return e.doc.NewEmpty(), nil
	}

	c, err := e.decode(blob, err)
	if err != nil {
		derr := &domain.DeserializeError{Key: e.key, Err: err}
		e.emitRestore(ctx, true, 0, derr)
		return e.doc.NewEmpty(), derr
	}

	e.logger.DebugContext(ctx, "document restored", "key", e.key, "blocks", c.BlockCount())
	e.emitRestore(ctx, true, c.BlockCount(), nil)
	return e.doc.NewWithContent(c), nil
}

func (e *Engine) decode(blob string, readErr error) (*document.Content, error) {
	if readErr != nil {
		return nil, fmt.Errorf("read failed: %w", readErr)
	}
	var raw document.Raw
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return e.doc.FromRaw(raw)
}

// Save persists the document and raises the saving indicator.
func (e *Engine) Save(ctx context.Context, s *document.State) error {
	e.raiseSaving()
	return e.persist(ctx, s, true)
}

// Saving reports whether an explicit save happened within the indicator window.
func (e *Engine) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// raiseSaving sets the indicator and schedules its reset.
// A later save restarts the window.
func (e *Engine) raiseSaving() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.saving = true
	e.savingGen++
	gen := e.savingGen
	if e.savingStop != nil {
		e.savingStop.Stop()
	}
	e.savingStop = time.AfterFunc(e.indicator, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.savingGen == gen {
			e.saving = false
		}
	})
}

// persist writes the serialized content under the storage key.
// Failures are logged and reported to hooks; the document is unaffected.
func (e *Engine) persist(ctx context.Context, s *document.State, explicit bool) error {
	data, err := json.Marshal(e.doc.ToRaw(s.Content()))
	if err != nil {
		return e.saveFailed(ctx, explicit, fmt.Errorf("failed to encode document: %w", err))
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, e.key, e.lockTTL)
		if err != nil {
			return e.saveFailed(ctx, explicit, fmt.Errorf("failed to acquire lock: %w", err))
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				e.logger.WarnContext(ctx, "failed to release lock", "key", e.key, "error", err)
			}
		}()
	}

	if err := e.store.Set(ctx, e.key, string(data)); err != nil {
		return e.saveFailed(ctx, explicit, fmt.Errorf("failed to write document: %w", err))
	}

	e.logger.DebugContext(ctx, "document saved", "key", e.key, "bytes", len(data), "explicit", explicit)
	e.emitSave(ctx, len(data), explicit, nil)
	return nil
}

func (e *Engine) saveFailed(ctx context.Context, explicit bool, err error) error {
	e.logger.WarnContext(ctx, "save failed", "key", e.key, "explicit", explicit, "error", err)
	e.emitSave(ctx, 0, explicit, err)
	return err
}
