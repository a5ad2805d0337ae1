package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Port, cfg.Port)
	assert.Equal(t, "edemy-session", cfg.SessionCookieName)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edemy.yaml")
	data := `
port: 9000
allowedOrigins:
  - https://edemy.example.com
sessionCookieExpiration: 72h
redisAddr: localhost:6379
textGen:
  model: test-model
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"https://edemy.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 72*time.Hour, cfg.SessionCookieExpiration)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "test-model", cfg.TextGen.Model)
	// Unset keys keep their defaults.
	assert.Equal(t, "https://api.openai.com", cfg.TextGen.BaseURL)
	assert.Equal(t, "edemy-diagnostics", cfg.DiagnosticsChannel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsLongSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edemy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sessionCookieExpiration: 720h\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":                 "3001",
		"EDEMY_HTTPS":          "true",
		"EDEMY_OPENAI_API_KEY": "sk-test",
		"EDEMY_REDIS_ADDR":     "redis:6379",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, applyEnv(cfg, lookup))

	assert.Equal(t, 3001, cfg.Port)
	assert.True(t, cfg.IsHTTPS)
	assert.Equal(t, "sk-test", cfg.TextGen.APIKey)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.FirebaseCredentialsFile)
}

func TestApplyEnvInvalidPort(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == "PORT" {
			return "eighty", true
		}
		return "", false
	}
	assert.Error(t, applyEnv(DefaultConfig(), lookup))
}
