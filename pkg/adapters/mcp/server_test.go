package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/draftkit"
	"github.com/aretw0/draftkit/pkg/adapters/memory"
	"github.com/aretw0/draftkit/pkg/surface"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := draftkit.New("", draftkit.WithStore(memory.NewStore()))
	require.NoError(t, err)
	return NewServer(surface.New(context.Background(), eng), eng.Document(), "test", nil)
}

func TestServer_Tools(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	res, err := s.handleTypeText(ctx, mcp.CallToolRequest{}, TypeArgs{Text: "# Plan"})
	require.NoError(t, err)
	assert.Equal(t, "# Plan\n", res.Markdown)
	require.Len(t, res.Document.Blocks, 1)

	res, err = s.handleKeyCommand(ctx, mcp.CallToolRequest{}, CommandArgs{Command: "italic"})
	require.NoError(t, err)
	assert.Equal(t, "handled", res.Result)

	res, err = s.handlePasteText(ctx, mcp.CallToolRequest{}, PasteArgs{Text: "hello# "})
	require.NoError(t, err)
	assert.Equal(t, "not-handled", res.Result)
	assert.Equal(t, "# Plan*hello#* \n", res.Markdown)

	res, err = s.handleSave(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.True(t, res.Saving)

	res, err = s.handleGetDocument(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Planhello# ", res.Document.Blocks[0].Text)

	_, err = s.handleKeyCommand(ctx, mcp.CallToolRequest{}, CommandArgs{})
	assert.Error(t, err)
}

func TestServer_ListTools(t *testing.T) {
	s := newTestServer(t)

	msg := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`)
	resp := s.MCPServer().HandleMessage(context.Background(), msg)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"type_text", "paste_text", "key_command", "save_document", "get_document"} {
		assert.Contains(t, string(out), name)
	}
}
