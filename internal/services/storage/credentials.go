package storage

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// APIKeyName is the storage key of the provider credential
const APIKeyName = "geminiApiKey"

// APIKeyEnv overrides the stored credential when set
const APIKeyEnv = "GEMINI_API_KEY"

// Credentials reads and writes the provider API key
type Credentials struct {
	store  *Store
	lookup func(string) (string, bool)
}

// NewCredentials wraps store. The environment is consulted first.
func NewCredentials(store *Store) *Credentials {
	return &Credentials{store: store, lookup: os.LookupEnv}
}

// APIKey returns the credential or domain.ErrMissingCredential
func (c *Credentials) APIKey(ctx context.Context) (string, error) {
	if v, ok := c.lookup(APIKeyEnv); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}

	key, err := c.store.Get(ctx, APIKeyName)
	if errors.Is(err, ErrNotFound) || (err == nil && key == "") {
		return "", domain.ErrMissingCredential
	}
	return key, err
}

// SetAPIKey trims and stores key. An empty key is rejected.
func (c *Credentials) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("please enter a valid API key")
	}
	return c.store.Set(ctx, APIKeyName, key)
}

// ClearAPIKey removes the stored credential
func (c *Credentials) ClearAPIKey(ctx context.Context) error {
	return c.store.Delete(ctx, APIKeyName)
}

// Mask shows the first and last four characters of key
func Mask(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("•", len(key))
	}
	return key[:4] + strings.Repeat("•", len(key)-8) + key[len(key)-4:]
}
