// Package mcp exposes the relay as Model Context Protocol tools so agents
// can translate and summarize through the same credential and model
// resolution as the reader.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/riordanpawley/translate-ai/internal/services/channel"
	"github.com/riordanpawley/translate-ai/internal/services/page"
)

// PageLoader loads a page for summarize_page
type PageLoader interface {
	Load(ctx context.Context, source string) (*page.Page, error)
}

// Server wraps an MCP server backed by the relay
type Server struct {
	handler  channel.Handler
	pages    PageLoader
	maxChars int
	mcp      *server.MCPServer
}

// NewServer creates an MCP server. maxChars bounds page text sent for
// summaries.
func NewServer(h channel.Handler, pages PageLoader, maxChars int, version string) *Server {
	s := &Server{
		handler:  h,
		pages:    pages,
		maxChars: maxChars,
	}

	s.mcp = server.NewMCPServer(
		"translate-ai",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(translateTool, s.handleTranslate)
	s.mcp.AddTool(summarizeTool, s.handleSummarize)
	s.mcp.AddTool(summarizePageTool, s.handleSummarizePage)

	return s
}

// Serve starts the MCP server on stdio. Stdout carries protocol messages;
// all logging must go elsewhere.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
