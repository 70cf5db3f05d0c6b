package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/services/page"
)

func (s *Server) handleTranslate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}
	return s.run(ctx, domain.ActionTranslate, text, request.GetString("target_language", "")), nil
}

func (s *Server) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}
	return s.run(ctx, domain.ActionSummarize, page.Truncate(text, s.maxChars), request.GetString("target_language", "")), nil
}

func (s *Server) handleSummarizePage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: source"), nil
	}

	p, err := s.pages.Load(ctx, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load page: %v", err)), nil
	}
	if p.Text == "" {
		return mcp.NewToolResultError("Could not extract text from this page."), nil
	}

	return s.run(ctx, domain.ActionSummarize, page.Truncate(p.Text, s.maxChars), request.GetString("target_language", "")), nil
}

func (s *Server) run(ctx context.Context, action domain.Action, text, lang string) *mcp.CallToolResult {
	reply := s.handler.Handle(ctx, domain.RelayRequest{
		Action:         action,
		Text:           text,
		TargetLanguage: lang,
	})
	if !reply.Ok() {
		return mcp.NewToolResultError(reply.ErrorMessage)
	}
	return mcp.NewToolResultText(reply.Text)
}
