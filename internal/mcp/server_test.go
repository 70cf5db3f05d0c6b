package mcp

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/services/page"
)

type recordingHandler struct {
	last  domain.RelayRequest
	reply domain.RelayReply
}

func (h *recordingHandler) Handle(ctx context.Context, req domain.RelayRequest) domain.RelayReply {
	h.last = req
	return h.reply
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func newTestServer(h *recordingHandler, maxChars int) *Server {
	loader := page.NewLoader(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewServer(h, loader, maxChars, "test")
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
		required string
	}{
		{translateTool, "translate", "text"},
		{summarizeTool, "summarize", "text"},
		{summarizePageTool, "summarize_page", "source"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.tool.Name)
			assert.Contains(t, tt.tool.InputSchema.Required, tt.required)
		})
	}
}

func TestHandleTranslate(t *testing.T) {
	h := &recordingHandler{reply: domain.ReplyText("Hello world")}
	srv := newTestServer(h, 100)
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"text":            "Bonjour le monde",
			"target_language": "English",
		}

		result, err := srv.handleTranslate(ctx, req)
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "Hello world", resultText(t, result))
		assert.Equal(t, domain.RelayRequest{Action: domain.ActionTranslate, Text: "Bonjour le monde", TargetLanguage: "English"}, h.last)
	})

	t.Run("missing text", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleTranslate(ctx, req)
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("relay error", func(t *testing.T) {
		h.reply = domain.ReplyError("API Key not found. Please set it in Settings.")
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"text": "x"}

		result, err := srv.handleTranslate(ctx, req)
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "API Key not found. Please set it in Settings.", resultText(t, result))
	})
}

func TestHandleSummarize_Truncates(t *testing.T) {
	h := &recordingHandler{reply: domain.ReplyText("- short")}
	srv := newTestServer(h, 10)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"text": strings.Repeat("a", 50)}

	result, err := srv.handleSummarize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, domain.ActionSummarize, h.last.Action)
	assert.Len(t, h.last.Text, 10)
}

func TestHandleSummarizePage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nBody text."), 0o644))

	h := &recordingHandler{reply: domain.ReplyText("- body")}
	srv := newTestServer(h, 1000)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"source": path, "target_language": "French"}

	result, err := srv.handleSummarizePage(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Title\n\nBody text.", h.last.Text)
	assert.Equal(t, "French", h.last.TargetLanguage)

	req.Params.Arguments = map[string]any{"source": filepath.Join(dir, "missing.md")}
	result, err = srv.handleSummarizePage(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
