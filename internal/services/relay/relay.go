// Package relay services translate and summarize requests: it reads the
// credential, resolves a model, calls the provider and always produces
// exactly one reply.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/metrics"
)

// Replies when no credential is stored. Translate requests point at the
// options, summaries at the Settings tab.
const (
	MissingKeyMessage          = "API Key not found. Please set it in Settings."
	MissingKeyTranslateMessage = "API Key not found. Please set it in options."
)

// MissingKeyFor returns the missing-credential reply for action
func MissingKeyFor(action domain.Action) string {
	if action == domain.ActionTranslate {
		return MissingKeyTranslateMessage
	}
	return MissingKeyMessage
}

// Credentials provides the provider API key.
// Returns domain.ErrMissingCredential when none is stored.
type Credentials interface {
	APIKey(ctx context.Context) (string, error)
}

// ModelResolver picks the model for a credential
type ModelResolver interface {
	Resolve(ctx context.Context, key string) string
}

// Generator runs a prompt against a model
type Generator interface {
	GenerateContent(ctx context.Context, key, model, prompt string) (string, error)
}

// Relay handles requests from the overlay
type Relay struct {
	creds     Credentials
	resolver  ModelResolver
	generator Generator
	metrics   *metrics.RelayMetrics
	logger    *slog.Logger
}

// New creates a relay. m may be nil.
func New(creds Credentials, resolver ModelResolver, generator Generator, m *metrics.RelayMetrics, logger *slog.Logger) *Relay {
	return &Relay{
		creds:     creds,
		resolver:  resolver,
		generator: generator,
		metrics:   m,
		logger:    logger,
	}
}

// Handle processes one request and returns its reply. It never panics.
func (r *Relay) Handle(ctx context.Context, req domain.RelayRequest) (reply domain.RelayReply) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("relay panic", "action", req.Action, "panic", p)
			reply = domain.ReplyError(failurePrefix(req.Action) + fmt.Sprint(p))
			r.metrics.Observe(string(req.Action), string(domain.KindTransport), time.Since(start))
		}
	}()

	text, err := r.process(ctx, req)
	if err != nil {
		var rerr *domain.RelayError
		kind := domain.KindTransport
		if errors.As(err, &rerr) {
			kind = rerr.Kind
		}
		r.metrics.Observe(string(req.Action), string(kind), time.Since(start))
		r.logger.Warn("relay request failed", "action", req.Action, "kind", kind, "error", err)

		if errors.Is(err, domain.ErrMissingCredential) {
			return domain.ReplyError(MissingKeyFor(req.Action))
		}
		return domain.ReplyError(failurePrefix(req.Action) + err.Error())
	}

	r.metrics.Observe(string(req.Action), "ok", time.Since(start))
	return domain.ReplyText(text)
}

func (r *Relay) process(ctx context.Context, req domain.RelayRequest) (string, error) {
	if !req.Action.Valid() {
		return "", &domain.RelayError{Kind: domain.KindConfig, Action: req.Action, Err: fmt.Errorf("%w: %q", domain.ErrUnknownAction, req.Action)}
	}

	key, err := r.creds.APIKey(ctx)
	if err == nil && key == "" {
		err = domain.ErrMissingCredential
	}
	if err != nil {
		return "", &domain.RelayError{Kind: domain.KindConfig, Action: req.Action, Err: err}
	}

	model := r.resolver.Resolve(ctx, key)
	r.metrics.Resolved(model)
	r.logger.Debug("using model", "model", model, "action", req.Action)

	text, err := r.generator.GenerateContent(ctx, key, model, BuildPrompt(req))
	if errors.Is(err, domain.ErrEmptyResult) {
		return "", &domain.RelayError{Kind: domain.KindEmpty, Action: req.Action, Err: errors.New(emptyMessage(req.Action))}
	}
	if err != nil {
		return "", &domain.RelayError{Kind: domain.KindTransport, Action: req.Action, Err: err}
	}
	return text, nil
}

func failurePrefix(a domain.Action) string {
	if a == domain.ActionSummarize {
		return "Summarization failed: "
	}
	return "Translation failed: "
}

func emptyMessage(a domain.Action) string {
	if a == domain.ActionSummarize {
		return "No summary generated"
	}
	return "No translation found in response"
}
