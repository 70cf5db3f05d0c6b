// Package config loads translate-ai settings from YAML, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. Sections are separated by a
// double underscore: TRANSLATEAI_RELAY__MODE=http sets relay.mode.
const EnvPrefix = "TRANSLATEAI_"

// Relay modes
const (
	RelayLocal     = "local"
	RelayHTTP      = "http"
	RelayWebSocket = "ws"
)

// Config represents the full translate-ai configuration
type Config struct {
	Version  int            `yaml:"version" koanf:"version"`
	Provider ProviderConfig `yaml:"provider" koanf:"provider"`
	Overlay  OverlayConfig  `yaml:"overlay" koanf:"overlay"`
	Relay    RelayConfig    `yaml:"relay" koanf:"relay"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Storage  StorageConfig  `yaml:"storage" koanf:"storage"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
	Summary  SummaryConfig  `yaml:"summary" koanf:"summary"`
	Network  NetworkConfig  `yaml:"network" koanf:"network"`
}

// ProviderConfig contains generative API settings
type ProviderConfig struct {
	BaseURL         string   `yaml:"base_url" koanf:"base_url"`
	FallbackModel   string   `yaml:"fallback_model" koanf:"fallback_model"`
	PreferredModels []string `yaml:"preferred_models" koanf:"preferred_models"`
}

// OverlayConfig contains trigger and panel settings
type OverlayConfig struct {
	DefaultLanguage string `yaml:"default_language" koanf:"default_language"`
	DebounceMs      int    `yaml:"debounce_ms" koanf:"debounce_ms"`
	CopyAckMs       int    `yaml:"copy_ack_ms" koanf:"copy_ack_ms"`
	Margin          int    `yaml:"margin" koanf:"margin"`
	PanelWidth      int    `yaml:"panel_width" koanf:"panel_width"`
	PanelHeight     int    `yaml:"panel_height" koanf:"panel_height"`
	AnchorGap       int    `yaml:"anchor_gap" koanf:"anchor_gap"`
}

// RelayConfig selects how the reader reaches the relay
type RelayConfig struct {
	Mode      string `yaml:"mode" koanf:"mode"`
	URL       string `yaml:"url" koanf:"url"`
	TimeoutMs int    `yaml:"timeout_ms" koanf:"timeout_ms"`
}

// ServerConfig contains relay server settings
type ServerConfig struct {
	Addr           string   `yaml:"addr" koanf:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	RatePerMinute  int      `yaml:"rate_per_minute" koanf:"rate_per_minute"`
}

// StorageConfig contains credential store settings
type StorageConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
	File   string `yaml:"file" koanf:"file"`
}

// SummaryConfig contains page summary settings
type SummaryConfig struct {
	MaxChars int `yaml:"max_chars" koanf:"max_chars"`
}

// NetworkConfig contains reachability check settings
type NetworkConfig struct {
	CheckURL      string `yaml:"check_url" koanf:"check_url"`
	CheckInterval int    `yaml:"check_interval" koanf:"check_interval"`
}

// Dir returns the per-user data directory
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".translate-ai")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dir := Dir()

	return &Config{
		Version: CurrentVersion,
		Provider: ProviderConfig{
			BaseURL:       "https://generativelanguage.googleapis.com/v1beta",
			FallbackModel: "gemini-1.5-flash",
			PreferredModels: []string{
				"models/gemini-1.5-flash",
				"models/gemini-1.5-flash-latest",
				"models/gemini-1.5-flash-001",
				"models/gemini-1.5-pro",
				"models/gemini-1.5-pro-latest",
				"models/gemini-1.0-pro",
				"models/gemini-pro",
			},
		},
		Overlay: OverlayConfig{
			DefaultLanguage: "Italian",
			DebounceMs:      10,
			CopyAckMs:       2000,
			Margin:          2,
			PanelWidth:      48,
			PanelHeight:     12,
			AnchorGap:       1,
		},
		Relay: RelayConfig{
			Mode:      RelayLocal,
			URL:       "http://127.0.0.1:8787",
			TimeoutMs: 0, // wait as long as the provider takes
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8787",
			AllowedOrigins: []string{"chrome-extension://*", "moz-extension://*", "http://localhost:*"},
			RatePerMinute:  60,
		},
		Storage: StorageConfig{
			Path: filepath.Join(dir, "settings.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "translate-ai.log"),
		},
		Summary: SummaryConfig{
			MaxChars: 20000,
		},
		Network: NetworkConfig{
			CheckURL:      "https://generativelanguage.googleapis.com",
			CheckInterval: 60, // 1 minute
		},
	}
}

// Load reads path (if it exists) on top of the defaults, then a .env file
// in the working directory, then TRANSLATEAI_* overrides
func Load(path string) (*Config, error) {
	// .env is optional; it mostly carries GEMINI_API_KEY
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := Migrate(k); err != nil {
			return nil, fmt.Errorf("migrating config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg = MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes cfg to path as YAML
func (c *Config) Save(path string) error {
	c.Version = CurrentVersion
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}

	// Merge Provider config
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = defaults.Provider.BaseURL
	}
	if cfg.Provider.FallbackModel == "" {
		cfg.Provider.FallbackModel = defaults.Provider.FallbackModel
	}
	if len(cfg.Provider.PreferredModels) == 0 {
		cfg.Provider.PreferredModels = defaults.Provider.PreferredModels
	}

	// Merge Overlay config
	if cfg.Overlay.DefaultLanguage == "" {
		cfg.Overlay.DefaultLanguage = defaults.Overlay.DefaultLanguage
	}
	if cfg.Overlay.DebounceMs == 0 {
		cfg.Overlay.DebounceMs = defaults.Overlay.DebounceMs
	}
	if cfg.Overlay.CopyAckMs == 0 {
		cfg.Overlay.CopyAckMs = defaults.Overlay.CopyAckMs
	}
	if cfg.Overlay.Margin == 0 {
		cfg.Overlay.Margin = defaults.Overlay.Margin
	}
	if cfg.Overlay.PanelWidth == 0 {
		cfg.Overlay.PanelWidth = defaults.Overlay.PanelWidth
	}
	if cfg.Overlay.PanelHeight == 0 {
		cfg.Overlay.PanelHeight = defaults.Overlay.PanelHeight
	}
	if cfg.Overlay.AnchorGap == 0 {
		cfg.Overlay.AnchorGap = defaults.Overlay.AnchorGap
	}

	// Merge Relay config
	if cfg.Relay.Mode == "" {
		cfg.Relay.Mode = defaults.Relay.Mode
	}
	if cfg.Relay.URL == "" {
		cfg.Relay.URL = defaults.Relay.URL
	}

	// Merge Server config
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if cfg.Server.RatePerMinute == 0 {
		cfg.Server.RatePerMinute = defaults.Server.RatePerMinute
	}

	// Merge Storage and Log config
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaults.Storage.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	// Merge Summary and Network config
	if cfg.Summary.MaxChars == 0 {
		cfg.Summary.MaxChars = defaults.Summary.MaxChars
	}
	if cfg.Network.CheckURL == "" {
		cfg.Network.CheckURL = defaults.Network.CheckURL
	}
	if cfg.Network.CheckInterval == 0 {
		cfg.Network.CheckInterval = defaults.Network.CheckInterval
	}

	return cfg
}

var validModes = map[string]bool{
	RelayLocal:     true,
	RelayHTTP:      true,
	RelayWebSocket: true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values
func (c *Config) Validate() error {
	if !validModes[c.Relay.Mode] {
		return fmt.Errorf("invalid relay.mode %q: must be one of local, http, ws", c.Relay.Mode)
	}
	if c.Relay.Mode != RelayLocal && c.Relay.URL == "" {
		return fmt.Errorf("relay.url is required for relay.mode %q", c.Relay.Mode)
	}
	if c.Relay.TimeoutMs < 0 {
		return fmt.Errorf("relay.timeout_ms must be non-negative")
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	if c.Summary.MaxChars < 0 {
		return fmt.Errorf("summary.max_chars must be non-negative")
	}
	if c.Server.RatePerMinute < 0 {
		return fmt.Errorf("server.rate_per_minute must be non-negative")
	}
	if c.Overlay.PanelWidth <= 0 || c.Overlay.Margin < 0 {
		return fmt.Errorf("overlay geometry must be positive")
	}
	return nil
}
