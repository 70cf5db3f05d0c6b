package gemini

import (
	"context"
	"log/slog"
	"strings"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// DefaultFallbackModel is used whenever the catalog can't be read or
// offers nothing that generates content
const DefaultFallbackModel = "gemini-1.5-flash"

// DefaultPreferredModels is checked in order before the rest of the catalog
var DefaultPreferredModels = []string{
	"models/gemini-1.5-flash",
	"models/gemini-1.5-flash-latest",
	"models/gemini-1.5-flash-001",
	"models/gemini-1.5-pro",
	"models/gemini-1.5-pro-latest",
	"models/gemini-1.0-pro",
	"models/gemini-pro",
}

// ModelLister fetches a model catalog
type ModelLister interface {
	ListModels(ctx context.Context, key string) ([]domain.ModelCandidate, error)
}

// Resolver picks a usable model name for a credential.
// The catalog is fetched on every call.
type Resolver struct {
	lister    ModelLister
	preferred []string
	fallback  string
	logger    *slog.Logger
}

// NewResolver creates a resolver. Empty preferred or fallback use the defaults.
func NewResolver(lister ModelLister, preferred []string, fallback string, logger *slog.Logger) *Resolver {
	if len(preferred) == 0 {
		preferred = DefaultPreferredModels
	}
	if fallback == "" {
		fallback = DefaultFallbackModel
	}
	return &Resolver{
		lister:    lister,
		preferred: preferred,
		fallback:  fallback,
		logger:    logger,
	}
}

// Resolve returns a bare model name (no "models/" prefix). It never fails:
// any problem reading the catalog yields the fallback.
func (r *Resolver) Resolve(ctx context.Context, key string) string {
	models, err := r.lister.ListModels(ctx, key)
	if err != nil {
		r.logger.Warn("model catalog unavailable, using fallback", "fallback", r.fallback, "error", err)
		return r.fallback
	}

	if name, ok := Pick(models, r.preferred); ok {
		return name
	}

	r.logger.Warn("no generation-capable model in catalog, using fallback", "fallback", r.fallback, "count", len(models))
	return r.fallback
}

// Pick applies the selection rule to a catalog: the first preferred name
// that is present and generation-capable, else the first generation-capable
// entry. Preference order wins over catalog order.
func Pick(models []domain.ModelCandidate, preferred []string) (string, bool) {
	capable := make(map[string]bool, len(models))
	for _, m := range models {
		if m.SupportsGeneration {
			capable[m.Name] = true
		}
	}

	for _, name := range preferred {
		if capable[name] {
			return strings.TrimPrefix(name, "models/"), true
		}
	}

	for _, m := range models {
		if m.SupportsGeneration {
			return strings.TrimPrefix(m.Name, "models/"), true
		}
	}
	return "", false
}
