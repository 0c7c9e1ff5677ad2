package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "APP_ENV", "MONGODB_URI", "DB_NAME",
		"JWT_KEY", "SESSION_SECRET", "SMTP_HOST", "SMTP_PORT", "SMTP_USER",
		"SMTP_PASS", "SMTP_SECURE", "EMAIL_FROM", "SENDGRID_API_KEY", "LOG_FILE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "veloura", cfg.DBName)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.Production())
	// Signing with an empty key must be impossible even without a .env file.
	assert.NotEmpty(t, cfg.JWTKey)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	assert.Panics(t, func() { Load() })

	t.Setenv("JWT_KEY", "prod-jwt-key")
	assert.Panics(t, func() { Load() })

	t.Setenv("SESSION_SECRET", "prod-session-secret")
	var cfg *Config
	require.NotPanics(t, func() { cfg = Load() })
	assert.Equal(t, "prod-jwt-key", cfg.JWTKey)
	assert.Equal(t, "prod-session-secret", cfg.SessionSecret)
	assert.True(t, cfg.Production())
}
