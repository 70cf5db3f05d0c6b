package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/metrics"
	"github.com/riordanpawley/translate-ai/internal/services/gemini"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticKey string

func (k staticKey) APIKey(ctx context.Context) (string, error) {
	if k == "" {
		return "", domain.ErrMissingCredential
	}
	return string(k), nil
}

type brokenStore struct{}

func (brokenStore) APIKey(ctx context.Context) (string, error) {
	return "", errors.New("database is locked")
}

type fixedResolver string

func (f fixedResolver) Resolve(ctx context.Context, key string) string { return string(f) }

type fakeGenerator struct {
	calls  int
	prompt string
	text   string
	err    error
	panic  bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, key, model, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.panic {
		panic("boom")
	}
	return f.text, f.err
}

func TestHandle_Translate(t *testing.T) {
	gen := &fakeGenerator{text: "Hello world"}
	r := New(staticKey("k"), fixedResolver("gemini-1.5-flash"), gen, nil, discardLogger())

	reply := r.Handle(context.Background(), domain.RelayRequest{
		Action:         domain.ActionTranslate,
		Text:           "Bonjour le monde",
		TargetLanguage: "English",
	})

	assert.Equal(t, domain.ReplyText("Hello world"), reply)
	assert.Contains(t, gen.prompt, "Translate the following text to English")
	assert.Contains(t, gen.prompt, `"Bonjour le monde"`)
}

func TestHandle_DefaultLanguage(t *testing.T) {
	gen := &fakeGenerator{text: "- point"}
	r := New(staticKey("k"), fixedResolver("m"), gen, nil, discardLogger())

	r.Handle(context.Background(), domain.RelayRequest{Action: domain.ActionSummarize, Text: "article"})

	assert.Contains(t, gen.prompt, "Summarize the following web page content in English")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		gen       *fakeGenerator
		action    domain.Action
		want      string
		wantCalls int
	}{
		{
			name:      "missing key",
			creds:     staticKey(""),
			gen:       &fakeGenerator{text: "x"},
			action:    domain.ActionTranslate,
			want:      MissingKeyTranslateMessage,
			wantCalls: 0,
		},
		{
			name:      "missing key for summary",
			creds:     staticKey(""),
			gen:       &fakeGenerator{text: "x"},
			action:    domain.ActionSummarize,
			want:      MissingKeyMessage,
			wantCalls: 0,
		},
		{
			name:      "store failure",
			creds:     brokenStore{},
			gen:       &fakeGenerator{text: "x"},
			action:    domain.ActionSummarize,
			want:      "Summarization failed: database is locked",
			wantCalls: 0,
		},
		{
			name:      "provider message verbatim",
			creds:     staticKey("k"),
			gen:       &fakeGenerator{err: &domain.ProviderError{Status: 400, Message: "API key not valid. Please pass a valid API key."}},
			action:    domain.ActionTranslate,
			want:      "Translation failed: API key not valid. Please pass a valid API key.",
			wantCalls: 1,
		},
		{
			name:      "empty translation",
			creds:     staticKey("k"),
			gen:       &fakeGenerator{err: domain.ErrEmptyResult},
			action:    domain.ActionTranslate,
			want:      "Translation failed: No translation found in response",
			wantCalls: 1,
		},
		{
			name:      "empty summary",
			creds:     staticKey("k"),
			gen:       &fakeGenerator{err: domain.ErrEmptyResult},
			action:    domain.ActionSummarize,
			want:      "Summarization failed: No summary generated",
			wantCalls: 1,
		},
		{
			name:      "panic becomes reply",
			creds:     staticKey("k"),
			gen:       &fakeGenerator{panic: true},
			action:    domain.ActionTranslate,
			want:      "Translation failed: boom",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.creds, fixedResolver("m"), tt.gen, nil, discardLogger())

			reply := r.Handle(context.Background(), domain.RelayRequest{Action: tt.action, Text: "hi"})

			assert.False(t, reply.Ok())
			assert.Equal(t, tt.want, reply.ErrorMessage)
			assert.Equal(t, tt.wantCalls, tt.gen.calls)
		})
	}
}

func TestHandle_UnknownAction(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	r := New(staticKey("k"), fixedResolver("m"), gen, nil, discardLogger())

	reply := r.Handle(context.Background(), domain.RelayRequest{Action: "dance"})

	assert.False(t, reply.Ok())
	assert.Contains(t, reply.ErrorMessage, "unknown action")
	assert.Zero(t, gen.calls)
}

func TestHandle_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewRelayMetrics(reg)
	r := New(staticKey(""), fixedResolver("m"), &fakeGenerator{}, m, discardLogger())

	r.Handle(context.Background(), domain.RelayRequest{Action: domain.ActionTranslate, Text: "x"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("translate", "config")))
}

// End to end against a fake provider: catalog, then generation.
func TestHandle_AgainstProvider(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch {
		case r.URL.Path == "/models":
			w.Write([]byte(`{"models":[{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent"]}]}`))
		case strings.HasSuffix(r.URL.Path, "/gemini-1.5-flash:generateContent"):
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello world"}]}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := gemini.NewClient(server.URL, server.Client(), discardLogger())
	resolver := gemini.NewResolver(client, nil, "", discardLogger())

	r := New(staticKey("k"), resolver, client, nil, discardLogger())
	reply := r.Handle(context.Background(), domain.RelayRequest{Action: domain.ActionTranslate, Text: "Bonjour le monde", TargetLanguage: "English"})
	require.True(t, reply.Ok(), reply.ErrorMessage)
	assert.Equal(t, "Hello world", reply.Text)
	assert.Equal(t, int32(2), hits.Load())

	// Missing credential never touches the network
	hits.Store(0)
	r = New(staticKey(""), resolver, client, nil, discardLogger())
	reply = r.Handle(context.Background(), domain.RelayRequest{Action: domain.ActionTranslate, Text: "x"})
	assert.Equal(t, MissingKeyTranslateMessage, reply.ErrorMessage)
	assert.Equal(t, int32(0), hits.Load())
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(domain.RelayRequest{Action: domain.ActionTranslate, Text: "line one\n\nline two", TargetLanguage: "Italian"})
	assert.Contains(t, p, "Do not merge paragraphs")
	assert.Contains(t, p, "If the text is already in Italian")
	assert.Contains(t, p, "line one\n\nline two")

	p = BuildPrompt(domain.RelayRequest{Action: domain.ActionSummarize, Text: "body", TargetLanguage: "French"})
	assert.Contains(t, p, "bullet points")
	assert.Contains(t, p, "Output must be in French")
}
