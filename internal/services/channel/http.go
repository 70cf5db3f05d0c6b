package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// MessagesPath is the relay server endpoint for single messages
const MessagesPath = "/v1/messages"

// HTTP posts messages to a relay server
type HTTP struct {
	endpoint string
	client   *http.Client
}

// NewHTTP creates an HTTP channel to the relay at baseURL.
// A zero timeout waits for as long as the provider takes.
func NewHTTP(baseURL string, timeout time.Duration) *HTTP {
	return &HTTP{
		endpoint: strings.TrimRight(baseURL, "/") + MessagesPath,
		client:   &http.Client{Timeout: timeout},
	}
}

// Send posts msg and decodes the relay's response. Error responses from
// the server (rate limiting included) come back as Response.Error.
func (h *HTTP) Send(ctx context.Context, msg domain.Message) (domain.Response, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return domain.Response{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return domain.Response{}, err
	}
	defer resp.Body.Close()

	var out domain.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return domain.Response{}, fmt.Errorf("relay returned status %d", resp.StatusCode)
		}
		return domain.Response{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
