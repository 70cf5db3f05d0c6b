package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/services/channel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type echoHandler struct{}

func (echoHandler) Handle(ctx context.Context, req domain.RelayRequest) domain.RelayReply {
	if req.Text == "" {
		return domain.ReplyError("Translation failed: empty")
	}
	return domain.ReplyText("[" + req.TargetLanguage + "] " + req.Text)
}

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"chrome-extension://*"}
	}
	s := New(cfg, echoHandler{}, prometheus.NewRegistry(), discardLogger())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postMessage(t *testing.T, url string, body string) (*http.Response, domain.Response) {
	t.Helper()
	resp, err := http.Post(url+channel.MessagesPath, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out domain.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestHandleMessage(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, out := postMessage(t, ts.URL, `{"action":"translate","text":"Bonjour","targetLanguage":"English"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.Response{Translation: "[English] Bonjour"}, out)

	_, out = postMessage(t, ts.URL, `{"action":"summarize","text":"Article"}`)
	assert.Equal(t, domain.Response{Summary: "[] Article"}, out)

	_, out = postMessage(t, ts.URL, `{"action":"translate","text":""}`)
	assert.Equal(t, "Translation failed: empty", out.Error)
}

func TestHandleMessage_BadInput(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, out := postMessage(t, ts.URL, `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid message format", out.Error)

	resp, out = postMessage(t, ts.URL, `{"action":"dance","text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown action: dance", out.Error)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Config{RatePerMinute: 1})

	resp, _ := postMessage(t, ts.URL, `{"action":"translate","text":"a"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, out := postMessage(t, ts.URL, `{"action":"translate","text":"b"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, RateLimitedMessage, out.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})
	postMessage(t, ts.URL, `{"action":"translate","text":"a"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `translate_ai_http_requests_total{method="POST",route="/v1/messages",status_code="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, Config{})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+channel.MessagesPath, nil)
	req.Header.Set("Origin", "chrome-extension://abcdef")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "chrome-extension://abcdef", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestPort(t *testing.T) {
	ts := newTestServer(t, Config{})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + channel.PortPath

	port, err := channel.DialWebSocket(context.Background(), url, discardLogger())
	require.NoError(t, err)
	defer port.Close()

	resp, err := port.Send(context.Background(), domain.Message{Action: domain.ActionTranslate, Text: "Hola", TargetLanguage: "English"})
	require.NoError(t, err)
	assert.Equal(t, "[English] Hola", resp.Translation)
}

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"chrome-extension://*", "http://localhost:*"}

	assert.True(t, originAllowed("", patterns))
	assert.True(t, originAllowed("chrome-extension://abc", patterns))
	assert.True(t, originAllowed("http://localhost:5173", patterns))
	assert.False(t, originAllowed("https://evil.example", patterns))
	assert.True(t, originAllowed("https://evil.example", []string{"*"}))
}

func TestClientLimiter(t *testing.T) {
	l := NewClientLimiter(20)

	allowed := 0
	for i := 0; i < 5; i++ {
		if l.Allow("1.2.3.4") {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)
	assert.True(t, l.Allow("5.6.7.8"))
}
