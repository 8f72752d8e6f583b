package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/draftkit/internal/config"
	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draftkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
store:
  driver: redis
  redis_url: redis://localhost:6379/0
  lock_ttl: 5s
  lock: true
editor:
  storage_key: notes
  save_indicator: 750ms
patterns:
  - marker: "> "
    kind: set-block-type
    name: blockquote
  - marker: "~~ "
    kind: toggle-inline-style
    name: STRIKETHROUGH
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.DriverRedis, cfg.Store.Driver)
	assert.True(t, cfg.Store.Lock)
	assert.Equal(t, 5*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, ":8080", cfg.Server.Addr, "unset fields keep defaults")
	assert.Equal(t, "notes", cfg.Editor.StorageKey)
	assert.Equal(t, 750*time.Millisecond, cfg.Editor.SaveIndicator)

	table, err := cfg.Table()
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, autoformat.BlockType(document.Blockquote), table[0].Transform)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DriverLoam, cfg.Store.Driver)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, autoformat.DefaultTable, table)

	_, err = config.Load("missing.yaml")
	assert.Error(t, err, "an explicit file must exist")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Unknown key", "stor:\n  driver: file\n", "invalid keys"},
		{"Expiring documents", "store:\n  ttl: 24h\n", "invalid keys"},
		{"Unknown driver", "store:\n  driver: s3\n", "unknown store driver"},
		{"Redis without url", "store:\n  driver: redis\n", "redis_url"},
		{"Bad duration", "editor:\n  save_indicator: soon\n", "save_indicator"},
		{"Bad kind", "patterns:\n  - marker: \"# \"\n    kind: explode\n    name: x\n", "unknown transform kind"},
		{"Shadowed", "patterns:\n  - {marker: \"* \", kind: toggle-inline-style, name: BOLD}\n  - {marker: \"** \", kind: toggle-inline-style, name: RED_COLOR}\n", "shadowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}

func TestEncryptionKeys(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	t.Setenv(config.EnvEncryptionKey, hexKey)

	cfg, err := config.Load(writeConfig(t, "store:\n  fallback_keys: \""+strings.Repeat("A", 43)+"=\"\n"))
	require.NoError(t, err)
	assert.Equal(t, hexKey, cfg.Store.EncryptionKey)

	active, fallback, err := cfg.Store.EncryptionKeys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	require.Len(t, fallback, 1)
	assert.Len(t, fallback[0], 32)

	cfg.Store.EncryptionKey = "short"
	_, _, err = cfg.Store.EncryptionKeys()
	assert.Error(t, err)

	cfg.Store.EncryptionKey = ""
	active, _, err = cfg.Store.EncryptionKeys()
	assert.NoError(t, err)
	assert.Nil(t, active)
}
