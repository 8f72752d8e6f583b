package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/draftkit/internal/logging"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/aretw0/draftkit/pkg/render"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request payloads (typed or pasted text).
const maxBodyBytes = 1 << 20

// Editor is the host surface the API drives. *surface.Surface satisfies it.
type Editor interface {
	State() *document.State
	Saving() bool
	Type(ctx context.Context, text string) (*document.State, error)
	Paste(ctx context.Context, text, html string) (domain.HandleResult, *document.State, error)
	KeyCommand(ctx context.Context, command string) (domain.HandleResult, *document.State)
	Select(ctx context.Context, sel document.Selection) (*document.State, error)
	Save(ctx context.Context) error
}

// TypeRequest is the body of POST /type.
type TypeRequest struct {
	Text string `json:"text"`
}

// PasteRequest is the body of POST /paste.
type PasteRequest struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

// CommandRequest is the body of POST /command.
type CommandRequest struct {
	Command string `json:"command"`
}

// SelectRequest is the body of POST /select.
type SelectRequest struct {
	Selection document.Selection `json:"selection"`
}

// DocumentResponse describes the document after a request.
type DocumentResponse struct {
	Document  document.Raw       `json:"document"`
	Selection document.Selection `json:"selection"`
	Result    string             `json:"result,omitempty"`
	Saving    bool               `json:"saving"`
}

// Server exposes an Editor over HTTP.
type Server struct {
	Editor  Editor
	Doc     ports.DocumentEngine
	Streams *StreamManager
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the editor.
func NewHandler(editor Editor, doc ports.DocumentEngine, opts ...Option) http.Handler {
	return NewServer(editor, doc, opts...).Routes()
}

// NewServer creates a Server without routing it.
func NewServer(editor Editor, doc ports.DocumentEngine, opts ...Option) *Server {
	s := &Server{
		Editor:  editor,
		Doc:     doc,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the chi router serving the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/document", s.GetDocument)
	r.Get("/render", s.GetRender)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/type", s.PostType)
	r.Post("/paste", s.PostPaste)
	r.Post("/command", s.PostCommand)
	r.Post("/select", s.PostSelect)
	r.Post("/save", s.PostSave)
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDocument handles the GET /document request.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.Editor.State(), "")
}

// GetRender handles the GET /render?format=markdown|html request.
func (s *Server) GetRender(w http.ResponseWriter, r *http.Request) {
	c := s.Editor.State().Content()
	switch format := r.URL.Query().Get("format"); format {
	case "", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, render.Markdown(c))
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, render.HTML(c))
	default:
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
	}
}

// PostType handles the POST /type request.
func (s *Server) PostType(w http.ResponseWriter, r *http.Request) {
	var body TypeRequest
	if !s.decode(w, r, &body) {
		return
	}
	state, err := s.Editor.Type(r.Context(), body.Text)
	if err != nil {
		s.fail(w, "Type", err)
		return
	}
	s.broadcast(state)
	s.respond(w, state, "")
}

// PostPaste handles the POST /paste request.
func (s *Server) PostPaste(w http.ResponseWriter, r *http.Request) {
	var body PasteRequest
	if !s.decode(w, r, &body) {
		return
	}
	res, state, err := s.Editor.Paste(r.Context(), body.Text, body.HTML)
	if err != nil {
		s.fail(w, "Paste", err)
		return
	}
	s.broadcast(state)
	s.respond(w, state, string(res))
}

// PostCommand handles the POST /command request.
func (s *Server) PostCommand(w http.ResponseWriter, r *http.Request) {
	var body CommandRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Command == "" {
		http.Error(w, "command is required", http.StatusBadRequest)
		return
	}
	res, state := s.Editor.KeyCommand(r.Context(), body.Command)
	if res == domain.Handled {
		s.broadcast(state)
	}
	s.respond(w, state, string(res))
}

// PostSelect handles the POST /select request.
func (s *Server) PostSelect(w http.ResponseWriter, r *http.Request) {
	var body SelectRequest
	if !s.decode(w, r, &body) {
		return
	}
	state, err := s.Editor.Select(r.Context(), body.Selection)
	if err != nil {
		s.fail(w, "Select", err)
		return
	}
	s.respond(w, state, "")
}

// PostSave handles the POST /save request.
func (s *Server) PostSave(w http.ResponseWriter, r *http.Request) {
	if err := s.Editor.Save(r.Context()); err != nil {
		s.fail(w, "Save", err)
		return
	}
	s.respond(w, s.Editor.State(), "")
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, document.ErrInvalidSelection) || errors.Is(err, document.ErrBlockNotFound) {
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}

func (s *Server) snapshot(state *document.State, result string) DocumentResponse {
	return DocumentResponse{
		Document:  s.Doc.ToRaw(state.Content()),
		Selection: state.Selection(),
		Result:    result,
		Saving:    s.Editor.Saving(),
	}
}

func (s *Server) respond(w http.ResponseWriter, state *document.State, result string) {
	s.writeJSON(w, http.StatusOK, s.snapshot(state, result))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) broadcast(state *document.State) {
	if bytes, err := json.Marshal(s.snapshot(state, "")); err == nil {
		s.Streams.Broadcast(string(bytes))
	}
}

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty subscriber set.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a listener. The returned function unregisters it.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of active listeners.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast sends msg to every listener, dropping it for slow ones.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE).
// Each committed change is sent as a DocumentResponse.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
