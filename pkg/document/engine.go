package document

import (
	"strings"

	"github.com/google/uuid"
)

// MaxDepth is the default nesting limit for list items.
const MaxDepth = 4

// KeyGenerator produces block keys. Keys already used in the content are
// rejected and a new one is requested.
type KeyGenerator func() string

// DefaultKeyGenerator returns the first 8 hex digits of a random UUID.
func DefaultKeyGenerator() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Engine performs edits on immutable documents.
type Engine struct {
	keys KeyGenerator
}

// Option configures the Engine.
type Option func(*Engine)

// WithKeyGenerator overrides the block key generator.
func WithKeyGenerator(gen KeyGenerator) Option {
	return func(e *Engine) {
		e.keys = gen
	}
}

// NewEngine creates a document engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{keys: DefaultKeyGenerator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) newKey(c *Content) string {
	for {
		k := e.keys()
		if k == "" {
			continue
		}
		if c == nil {
			return k
		}
		if _, taken := c.index[k]; !taken {
			return k
		}
	}
}

// NewEmpty creates a document with a single empty unstyled block.
func (e *Engine) NewEmpty() *State {
	key := e.newKey(nil)
	sel := Collapsed(key, 0)
	c := newContent([]*Block{NewBlock(key, Unstyled, "")}, sel, sel)
	return &State{content: c, selection: sel}
}

// NewWithContent creates a state over existing content with the caret at the
// end of the last block.
func (e *Engine) NewWithContent(c *Content) *State {
	last := c.LastBlock()
	sel := Collapsed(last.key, last.Len())
	return &State{content: c.withSelections(sel, sel), selection: sel}
}
