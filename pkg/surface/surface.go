package surface

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/draftkit/internal/logging"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/aretw0/draftkit/pkg/ports"
)

// Engine is the trigger engine a Surface reports to.
// *draftkit.Engine satisfies it.
type Engine interface {
	Mount(ctx context.Context) *document.State
	OnChange(ctx context.Context, s *document.State) *document.State
	OnPaste(ctx context.Context, text, html string, s *document.State) (domain.HandleResult, *document.State)
	OnKeyCommand(ctx context.Context, command string, s *document.State) (domain.HandleResult, *document.State)
	Save(ctx context.Context, s *document.State) error
	Saving() bool
	Document() ports.DocumentEngine
}

// Surface owns the current document state. One event is processed at a time.
type Surface struct {
	engine Engine
	logger *slog.Logger

	mu    sync.Mutex
	state *document.State
}

// Option configures the Surface.
type Option func(*Surface)

// WithLogger configures a logger for the Surface.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Surface) {
		s.logger = logger
	}
}

// New mounts the persisted document and returns a surface over it.
func New(ctx context.Context, engine Engine, opts ...Option) *Surface {
	s := &Surface{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = engine.Mount(ctx)
	return s
}

// State returns the current document state.
func (s *Surface) State() *document.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Saving reports whether the saving indicator is raised.
func (s *Surface) Saving() bool {
	return s.engine.Saving()
}

// Type inserts text one character at a time. Each character is one change
// event, so markers trigger exactly as they would from a keyboard.
func (s *Surface) Type(ctx context.Context, text string) (*document.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range text {
		if err := ctx.Err(); err != nil {
			return s.state, err
		}
		next, err := s.engine.Document().InsertText(s.state, string(r))
		if err != nil {
			return s.state, fmt.Errorf("failed to insert %q: %w", r, err)
		}
		s.state = s.engine.OnChange(ctx, next)
	}
	return s.state, nil
}

// Paste offers text to the trigger engine. When the engine does not handle
// it, the text is inserted at once as a single change.
func (s *Surface) Paste(ctx context.Context, text, html string) (domain.HandleResult, *document.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, next := s.engine.OnPaste(ctx, text, html, s.state)
	if res == domain.Handled {
		s.logger.DebugContext(ctx, "paste handled by trigger", "len", len(text))
		s.state = next
		return res, s.state, nil
	}

	inserted, err := s.engine.Document().InsertText(s.state, text)
	if err != nil {
		return res, s.state, fmt.Errorf("failed to insert pasted text: %w", err)
	}
	s.state = s.engine.OnChange(ctx, inserted)
	return res, s.state, nil
}

// KeyCommand offers a named command (e.g. "bold", "tab") to the trigger engine.
func (s *Surface) KeyCommand(ctx context.Context, command string) (domain.HandleResult, *document.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, next := s.engine.OnKeyCommand(ctx, command, s.state)
	s.state = next
	return res, s.state
}

// Select moves the selection. The change is reported to the engine like any other.
func (s *Surface) Select(ctx context.Context, sel document.Selection) (*document.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.WithSelection(sel)
	if err != nil {
		return s.state, err
	}
	s.state = s.engine.OnChange(ctx, next)
	return s.state, nil
}

// Save persists the current document explicitly.
func (s *Surface) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Save(ctx, s.state)
}
