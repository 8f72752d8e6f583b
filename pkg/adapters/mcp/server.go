package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/draftkit/internal/logging"
	httpAdapter "github.com/aretw0/draftkit/pkg/adapters/http"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/ports"
	"github.com/aretw0/draftkit/pkg/render"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentURI is the resource exposing the document as markdown.
const DocumentURI = "draftkit://document"

// DocumentResult is the structured output of every tool.
type DocumentResult struct {
	Markdown  string             `json:"markdown" jsonschema_description:"The document rendered as markdown"`
	Document  document.Raw       `json:"document" jsonschema_description:"The serialized content tree"`
	Selection document.Selection `json:"selection" jsonschema_description:"The caret or selected range"`
	Result    string             `json:"result,omitempty" jsonschema_description:"handled or not-handled, for paste and key commands"`
	Saving    bool               `json:"saving" jsonschema_description:"True shortly after an explicit save"`
}

// TypeArgs are the arguments of type_text.
type TypeArgs struct {
	Text string `json:"text"`
}

// PasteArgs are the arguments of paste_text.
type PasteArgs struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

// CommandArgs are the arguments of key_command.
type CommandArgs struct {
	Command string `json:"command"`
}

// Server exposes an editor as an MCP Server.
type Server struct {
	editor    httpAdapter.Editor
	doc       ports.DocumentEngine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(editor httpAdapter.Editor, doc ports.DocumentEngine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		editor:    editor,
		doc:       doc,
		mcpServer: server.NewMCPServer("draftkit-mcp", version),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("type_text",
		mcp.WithDescription(`Type text at the caret, one character at a time. Markers such as "# ", "* ", "** ", "*** " and "`+"``` "+`" are turned into formatting instead of being inserted.`),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to type. Newlines split blocks.")),
		mcp.WithOutputSchema[DocumentResult](),
	), mcp.NewStructuredToolHandler(s.handleTypeText))

	s.mcpServer.AddTool(mcp.NewTool("paste_text",
		mcp.WithDescription("Paste text at the caret. A payload equal to a marker applies its formatting."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Pasted plain text")),
		mcp.WithString("html", mcp.Description("Pasted HTML (optional, not interpreted)")),
		mcp.WithOutputSchema[DocumentResult](),
	), mcp.NewStructuredToolHandler(s.handlePasteText))

	s.mcpServer.AddTool(mcp.NewTool("key_command",
		mcp.WithDescription("Run an editor key command: bold, italic, underline, code, strikethrough, backspace, tab, shift-tab."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command name")),
		mcp.WithOutputSchema[DocumentResult](),
	), mcp.NewStructuredToolHandler(s.handleKeyCommand))

	s.mcpServer.AddTool(mcp.NewTool("save_document",
		mcp.WithDescription("Persist the document explicitly."),
		mcp.WithOutputSchema[DocumentResult](),
	), mcp.NewStructuredToolHandler(s.handleSave))

	s.mcpServer.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get the current document, its selection and a markdown rendering."),
		mcp.WithOutputSchema[DocumentResult](),
	), mcp.NewStructuredToolHandler(s.handleGetDocument))
}

func (s *Server) result(state *document.State, res string) DocumentResult {
	return DocumentResult{
		Markdown:  render.Markdown(state.Content()),
		Document:  s.doc.ToRaw(state.Content()),
		Selection: state.Selection(),
		Result:    res,
		Saving:    s.editor.Saving(),
	}
}

func (s *Server) handleTypeText(ctx context.Context, request mcp.CallToolRequest, args TypeArgs) (DocumentResult, error) {
	state, err := s.editor.Type(ctx, args.Text)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("type failed: %w", err)
	}
	return s.result(state, ""), nil
}

func (s *Server) handlePasteText(ctx context.Context, request mcp.CallToolRequest, args PasteArgs) (DocumentResult, error) {
	res, state, err := s.editor.Paste(ctx, args.Text, args.HTML)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("paste failed: %w", err)
	}
	return s.result(state, string(res)), nil
}

func (s *Server) handleKeyCommand(ctx context.Context, request mcp.CallToolRequest, args CommandArgs) (DocumentResult, error) {
	if args.Command == "" {
		return DocumentResult{}, fmt.Errorf("command is required")
	}
	res, state := s.editor.KeyCommand(ctx, args.Command)
	return s.result(state, string(res)), nil
}

func (s *Server) handleSave(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (DocumentResult, error) {
	if err := s.editor.Save(ctx); err != nil {
		s.logger.Error("MCP save failed", "error", err)
		return DocumentResult{}, fmt.Errorf("save failed: %w", err)
	}
	return s.result(s.editor.State(), ""), nil
}

func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (DocumentResult, error) {
	return s.result(s.editor.State(), ""), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DocumentURI, "Current Document",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DocumentURI,
				MIMEType: "text/markdown",
				Text:     render.Markdown(s.editor.State().Content()),
			},
		}, nil
	})
}
