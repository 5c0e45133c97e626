package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/haytac/emotions/internal/emotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Console)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, ":9090", cfg.MetricsPort)
	assert.Equal(t, emotion.ToneRemove, cfg.Tone)
	assert.Zero(t, cfg.RateLimit.PerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
static_serve_path: https://static.example.com/
tone_action: parse
sanitize_input: true
log:
  level: debug
rate_limit:
  per_second: 5
  burst: 2
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://static.example.com", cfg.StaticServePath)
	assert.Equal(t, emotion.ToneParse, cfg.Tone)
	assert.True(t, cfg.SanitizeInput)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5.0, cfg.RateLimit.PerSecond)
	assert.Equal(t, 2, cfg.RateLimit.Burst)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("EMOTIONS_STATIC_SERVE_PATH", "https://cdn.example.com")
	t.Setenv("EMOTIONS_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(writeConfig(t, "static_serve_path: https://static.example.com\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", cfg.StaticServePath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigBadTone(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "tone_action: keep\n"))
	assert.ErrorContains(t, err, "tone_action")
}
