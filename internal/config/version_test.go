package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRaw(t *testing.T, content string) *koanf.Koanf {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	k := koanf.New(".")
	require.NoError(t, k.Load(file.Provider(path), yaml.Parser()))
	return k
}

func TestMigrate_LegacyFlatKeys(t *testing.T) {
	k := loadRaw(t, "default_language: Japanese\nmodel: gemini-pro\n")

	require.NoError(t, Migrate(k))

	assert.Equal(t, 1, k.Int("version"))
	assert.Equal(t, "Japanese", k.String("overlay.default_language"))
	assert.Equal(t, "gemini-pro", k.String("provider.fallback_model"))
	assert.False(t, k.Exists("default_language"))
}

func TestMigrate_SectionWins(t *testing.T) {
	k := loadRaw(t, "default_language: Japanese\noverlay:\n  default_language: Korean\n")

	require.NoError(t, Migrate(k))
	assert.Equal(t, "Korean", k.String("overlay.default_language"))
}

func TestMigrate_Current(t *testing.T) {
	k := loadRaw(t, "version: 1\noverlay:\n  default_language: Korean\n")

	require.NoError(t, Migrate(k))
	assert.Equal(t, "Korean", k.String("overlay.default_language"))
}

func TestMigrate_FutureVersion(t *testing.T) {
	k := loadRaw(t, "version: 99\n")

	err := Migrate(k)
	assert.ErrorContains(t, err, "newer than supported")
}

func TestLoad_LegacyFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_language: Portuguese\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Portuguese", cfg.Overlay.DefaultLanguage)
	assert.Equal(t, CurrentVersion, cfg.Version)
}
