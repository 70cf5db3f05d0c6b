package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

func languageNames() []string {
	names := make([]string, 0, len(domain.Languages))
	for _, l := range domain.Languages {
		names = append(names, l.Code)
	}
	return names
}

var translateTool = mcp.NewTool("translate",
	mcp.WithDescription("Translate text, preserving paragraphs and lists. Text already in the target language is corrected instead."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Text to translate"),
	),
	mcp.WithString("target_language",
		mcp.Description("Target language (default English)"),
		mcp.Enum(languageNames()...),
	),
)

var summarizeTool = mcp.NewTool("summarize",
	mcp.WithDescription("Summarize text as concise bullet points."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Text to summarize"),
	),
	mcp.WithString("target_language",
		mcp.Description("Language of the summary (default English)"),
		mcp.Enum(languageNames()...),
	),
)

var summarizePageTool = mcp.NewTool("summarize_page",
	mcp.WithDescription("Load a web page or local document and summarize its readable text."),
	mcp.WithString("source",
		mcp.Required(),
		mcp.Description("http(s) URL or file path of an HTML, Markdown or text document"),
	),
	mcp.WithString("target_language",
		mcp.Description("Language of the summary (default English)"),
		mcp.Enum(languageNames()...),
	),
)
