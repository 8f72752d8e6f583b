// Package config loads the CLI configuration from a YAML file, with defaults
// and environment overrides.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvEncryptionKey overrides store.encryption_key.
const EnvEncryptionKey = "DRAFTKIT_ENCRYPTION_KEY"

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "draftkit.yaml"

// Store drivers.
const (
	DriverLoam   = "loam"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config is the full CLI configuration.
type Config struct {
	LogLevel string          `mapstructure:"log_level"`
	Store    StoreConfig     `mapstructure:"store"`
	Editor   EditorConfig    `mapstructure:"editor"`
	Server   ServerConfig    `mapstructure:"server"`
	Patterns []PatternConfig `mapstructure:"patterns"`
}

// StoreConfig selects and configures the persistence adapter.
type StoreConfig struct {
	Driver   string        `mapstructure:"driver"`
	Path     string        `mapstructure:"path"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
	Lock     bool          `mapstructure:"lock"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`

	// EncryptionKey is a 32-byte key, hex or base64 encoded. Empty disables encryption.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
}

// EditorConfig tunes the trigger engine.
type EditorConfig struct {
	StorageKey    string        `mapstructure:"storage_key"`
	SaveIndicator time.Duration `mapstructure:"save_indicator"`
}

// ServerConfig configures `draftkit serve`.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	MetricsPath string `mapstructure:"metrics_path"`
}

// PatternConfig declares one trigger pattern. Kind is one of
// "set-block-type", "toggle-inline-style" or "split-and-set-block-type".
type PatternConfig struct {
	Marker      string `mapstructure:"marker"`
	TrimOnPaste bool   `mapstructure:"trim_on_paste"`
	Kind        string `mapstructure:"kind"`
	Name        string `mapstructure:"name"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Driver:  DriverLoam,
			Path:    ".draftkit",
			LockTTL: 2 * time.Second,
		},
		Editor: EditorConfig{
			StorageKey:    domain.DefaultStorageKey,
			SaveIndicator: domain.DefaultSaveIndicator,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			MetricsPath: "/metrics",
		},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// silently falls back to defaults when it does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if key := os.Getenv(EnvEncryptionKey); key != "" {
		cfg.Store.EncryptionKey = key
	}
	return cfg, cfg.Validate()
}

// Decode merges YAML data into cfg. Durations accept Go syntax ("1500ms").
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate checks the driver and the pattern table.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverLoam, DriverFile, DriverMemory:
	case DriverRedis:
		if c.Store.RedisURL == "" {
			return errors.New("store.redis_url is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if _, err := c.Table(); err != nil {
		return err
	}
	return nil
}

// Table returns the configured pattern table, or the default one when no
// patterns are declared.
func (c Config) Table() (autoformat.Table, error) {
	if len(c.Patterns) == 0 {
		return autoformat.DefaultTable, nil
	}

	table := make(autoformat.Table, 0, len(c.Patterns))
	for i, p := range c.Patterns {
		kind, err := parseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("pattern %d: name is required", i)
		}
		table = append(table, autoformat.Pattern{
			Marker:      p.Marker,
			TrimOnPaste: p.TrimOnPaste,
			Transform:   autoformat.Transform{Kind: kind, Name: p.Name},
		})
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func parseKind(s string) (autoformat.Kind, error) {
	for _, k := range []autoformat.Kind{autoformat.SetBlockType, autoformat.ToggleInlineStyle, autoformat.SplitAndSetBlockType} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown transform kind %q", s)
}

// EncryptionKeys decodes the active and fallback keys. A nil active key
// means encryption is disabled.
func (s StoreConfig) EncryptionKeys() ([]byte, [][]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	active, err := decodeKey(s.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	var fallback [][]byte
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid fallback key %d: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if b, err := hex.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	return nil, errors.New("expected 32 bytes, hex or base64 encoded")
}
