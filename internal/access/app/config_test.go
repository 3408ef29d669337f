package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ACCESS_ISSUER", "https://auth.example")
	t.Setenv("ACCESS_AUDIENCE", "reservoir, reservoir-mobile ,")
	t.Setenv("ACCESS_JWKS_URL", "https://auth.example/.well-known/jwks.json")
	t.Setenv("ACCESS_JWKS_REFRESH", "5")
	t.Setenv("ACCESS_INVITATION_TTL", "48h")
	t.Setenv("ACCESS_CORS_ORIGINS", "https://app.example")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, []string{"reservoir", "reservoir-mobile"}, cfg.Audience)
	require.Equal(t, 5*time.Minute, cfg.JWKSRefresh)
	require.Equal(t, 48*time.Hour, cfg.InvitationTTL)
	require.Equal(t, []string{"https://app.example"}, cfg.CORSOrigins)
	require.Equal(t, 8080, cfg.Port)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{DatabaseDriver: "postgres", InvitationTTL: 60 * 24 * time.Hour}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"ACCESS_ISSUER", "ACCESS_JWKS_URL", "ACCESS_DATABASE_URL", "ACCESS_INVITATION_TTL"} {
		require.ErrorContains(t, err, want)
	}

	cfg = Config{DatabaseDriver: "mysql", Issuer: "x", JWKSFile: "jwks.json", InvitationTTL: time.Hour}
	require.ErrorContains(t, cfg.Validate(), "ACCESS_DATABASE_DRIVER")
}
