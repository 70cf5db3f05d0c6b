// Package gemini talks to the Google Generative Language API over plain HTTP.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// DefaultBaseURL is the production API root
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const generateMethod = "generateContent"

// Client calls the models and generateContent endpoints
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

type modelsResponse struct {
	Models []modelEntry `json:"models"`
}

type modelEntry struct {
	Name                       string   `json:"name"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content *content `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ListModels fetches the model catalog visible to key
func (c *Client) ListModels(ctx context.Context, key string) ([]domain.ModelCandidate, error) {
	endpoint := fmt.Sprintf("%s/models?key=%s", c.baseURL, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list models request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ProviderError{Status: resp.StatusCode, Message: readAPIError(resp.Body)}
	}

	var body modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}

	models := make([]domain.ModelCandidate, 0, len(body.Models))
	for _, m := range body.Models {
		models = append(models, domain.ModelCandidate{
			Name:               m.Name,
			SupportsGeneration: supports(m.SupportedGenerationMethods, generateMethod),
		})
	}
	return models, nil
}

// GenerateContent sends prompt to model as a single user turn and returns
// the text of the first part of the first candidate.
// Returns domain.ErrEmptyResult when the provider answered with no text.
func (c *Client) GenerateContent(ctx context.Context, key, model, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	model = strings.TrimPrefix(model, "models/")
	endpoint := fmt.Sprintf("%s/models/%s:%s?key=%s", c.baseURL, model, generateMethod, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readAPIError(resp.Body)
		c.logger.Debug("provider rejected request", "model", model, "status", resp.StatusCode, "message", msg)
		return "", &domain.ProviderError{Status: resp.StatusCode, Message: msg}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var body generateResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(body.Candidates) == 0 || body.Candidates[0].Content == nil || len(body.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrEmptyResult
	}
	text := body.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", domain.ErrEmptyResult
	}
	return text, nil
}

// readAPIError extracts error.message from an error body, or "" if absent
func readAPIError(r io.Reader) string {
	var body generateResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil || body.Error == nil {
		return ""
	}
	return body.Error.Message
}

func supports(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
