package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/vizscript/internal/config"
	"github.com/aretw0/vizscript/pkg/adapters/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "vizscript.yaml", `
scripts_home: /tmp/scripts
log_level: debug
strict_registry: true
undo:
  max: 10
  enabled: true
redis:
  addr: localhost:6379
  db: 2
http:
  addr: ":9090"
metrics:
  enabled: false
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/scripts", cfg.ScriptsHome)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.True(t, cfg.StrictRegistry)
	assert.False(t, cfg.StrictCapabilities)
	assert.Equal(t, 10, cfg.Undo.Max)
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "vizscript:script:", cfg.Redis.Prefix, "unset keys keep their default")
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "vizscript.json", `{"scripts_home": "s", "undo": {"max": -1, "enabled": false}}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s", cfg.ScriptsHome)
	assert.Equal(t, -1, cfg.Undo.Max)
	assert.False(t, cfg.Undo.Enabled)
	assert.False(t, cfg.UseRedis())
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err, "a missing default file means defaults")
	assert.Equal(t, file.DefaultHome, cfg.ScriptsHome)
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	_, err = config.Load("nope.yaml")
	assert.Error(t, err, "a missing explicit file is an error")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero undo depth", "undo:\n  max: 0\n"},
		{"undo depth below unlimited", "undo:\n  max: -5\n"},
		{"bad log level", "log_level: loud\n"},
		{"negative db", "redis:\n  db: -1\n"},
		{"malformed", "undo: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "vizscript.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EncryptionKeyFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.KeyEnv, "c2VjcmV0")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "c2VjcmV0", cfg.Encryption.Key)

	path := writeFile(t, "vizscript.yaml", "encryption:\n  key: ZmlsZQ==\n  fallback_keys: [b2xk]\n")
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "c2VjcmV0", cfg.Encryption.Key, "the environment wins over the file")
	assert.Equal(t, []string{"b2xk"}, cfg.Encryption.FallbackKeys)
}
