package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func noEnv(string) (string, bool) { return "", false }

func TestStore_CRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "a", "2"))

	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_OpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.Equal(t, path, s.Path())
}

func TestCredentials(t *testing.T) {
	ctx := context.Background()
	c := &Credentials{store: openTestStore(t), lookup: noEnv}

	_, err := c.APIKey(ctx)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)

	assert.Error(t, c.SetAPIKey(ctx, "   "))

	require.NoError(t, c.SetAPIKey(ctx, "  AIzaSy-secret \n"))
	key, err := c.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AIzaSy-secret", key)

	require.NoError(t, c.ClearAPIKey(ctx))
	_, err = c.APIKey(ctx)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestCredentials_EnvOverride(t *testing.T) {
	ctx := context.Background()
	c := &Credentials{
		store: openTestStore(t),
		lookup: func(name string) (string, bool) {
			if name == APIKeyEnv {
				return "from-env", true
			}
			return "", false
		},
	}
	require.NoError(t, c.SetAPIKey(ctx, "stored"))

	key, err := c.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "••••", Mask("abcd"))
	assert.Equal(t, "AIza•••••1234", Mask("AIzaXXXXX1234"))
}
