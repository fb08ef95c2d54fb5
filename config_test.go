package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/aouyang1/mouseglass/contact"
	"github.com/aouyang1/mouseglass/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"MG_ADDR", "MG_BASE_URL", "MG_DB_PATH", "MG_CATALOG", "MG_IMAGE_DIR", "MG_S3_BUCKET",
		"MG_AWS_PROFILE", "MG_SUBMIT_DELAY", "MG_RESET_DELAY", "MG_SESSION_TTL", "MG_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultAddr, cfg.Addr)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, contact.DefaultSubmitDelay, cfg.SubmitDelay)
	assert.Equal(t, contact.DefaultResetDelay, cfg.ResetDelay)
	assert.Equal(t, session.DefaultTTL, cfg.SessionTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MG_ADDR", "127.0.0.1:9000")
	t.Setenv("MG_BASE_URL", "https://mice.example")
	t.Setenv("MG_SUBMIT_DELAY", "10ms")
	t.Setenv("MG_RESET_DELAY", "2s")
	t.Setenv("MG_SESSION_TTL", "1h")
	t.Setenv("MG_LOG_LEVEL", "debug")
	t.Setenv("MG_IMAGE_DIR", "/tmp/mice")
	t.Setenv("MG_S3_BUCKET", "mice")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "https://mice.example", cfg.BaseURL)
	assert.Equal(t, 10*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 2*time.Second, cfg.ResetDelay)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "mice", cfg.S3Bucket)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "MG_SUBMIT_DELAY", "soon"},
		{"negative duration", "MG_RESET_DELAY", "-1s"},
		{"bad level", "MG_LOG_LEVEL", "loud"},
		{"bucket without image dir", "MG_S3_BUCKET", "mice"},
		{"relative base url", "MG_BASE_URL", "mice.example/gallery"},
		{"base url scheme", "MG_BASE_URL", "ftp://mice.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}
