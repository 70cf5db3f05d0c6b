// Package page loads a document from a file or URL and reduces it to the
// readable text shown in the reader and sent for summaries.
package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// DefaultMaxChars bounds the text sent for a page summary
const DefaultMaxChars = 20000

const maxBodyBytes = 8 << 20

// Format is the markup of a source document
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Page is a loaded document
type Page struct {
	Source string
	Title  string
	Format Format
	Text   string
}

// Loader reads pages from disk or the network
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// NewLoader creates a loader. A nil client uses http.DefaultClient.
func NewLoader(client *http.Client, logger *slog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, logger: logger}
}

// Load reads source, which is either an http(s) URL or a file path
func (l *Loader) Load(ctx context.Context, source string) (*Page, error) {
	var (
		raw    []byte
		format Format
		err    error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, format, err = l.fetch(ctx, source)
	} else {
		raw, err = os.ReadFile(source)
		format = formatForPath(source)
	}
	if err != nil {
		return nil, &domain.PageError{Source: source, Op: "load", Err: err}
	}

	if !utf8.Valid(raw) {
		return nil, &domain.PageError{Source: source, Op: "decode", Err: fmt.Errorf("content is not valid UTF-8")}
	}

	p := Parse(raw, format)
	p.Source = source
	if p.Title == "" {
		p.Title = filepath.Base(source)
	}
	l.logger.Debug("page loaded", "source", source, "format", p.Format, "chars", utf8.RuneCountInString(p.Text))
	return p, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/html, text/markdown;q=0.9, text/plain;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("server returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", err
	}

	format := formatForPath(req.URL.Path)
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		switch mediaType {
		case "text/html", "application/xhtml+xml":
			format = FormatHTML
		case "text/markdown", "text/x-markdown":
			format = FormatMarkdown
		}
	}
	return raw, format, nil
}

func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown":
		return FormatMarkdown
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	default:
		return FormatText
	}
}

// Parse extracts readable text from raw in the given format
func Parse(raw []byte, format Format) *Page {
	p := &Page{Format: format}
	switch format {
	case FormatMarkdown:
		p.Title, p.Text = extractMarkdown(raw)
	case FormatHTML:
		p.Title, p.Text = extractHTML(raw)
	default:
		p.Text = string(raw)
	}
	p.Text = normalize(p.Text)
	return p
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(blankRuns.ReplaceAllString(s, "\n\n"))
}

// Truncate keeps at most max characters of s
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
