package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3600, cfg.Auth.TokenTTLSeconds)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, "refcatalog", cfg.Auth.Issuer)
	assert.Equal(t, "refcatalog-api", cfg.Auth.Audience)
	assert.Equal(t, 5*time.Minute, cfg.Auth.SweepInterval())
	assert.Equal(t, time.Minute, cfg.Auth.LoginWindow())
	assert.True(t, cfg.Auth.RequireVerifiedMail)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "120")
	t.Setenv("AUTH_REQUIRE_VERIFIED_EMAIL", "false")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Auth.TokenTTL())
	assert.False(t, cfg.Auth.RequireVerifiedMail)
	assert.Equal(t, 5*time.Second, cfg.App.RequestTimeout())
}
