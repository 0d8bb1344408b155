package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.PostgresDSN)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.False(t, cfg.TemporalDisabled)
}

func TestLoadConfig_ConnectionSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("POSTGRES_DSN", "host=db user=coffee dbname=store")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("TEMPORAL_DISABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "host=db user=coffee dbname=store", cfg.PostgresDSN)
	require.Equal(t, "cache:6379", cfg.RedisAddr)
	require.True(t, cfg.TemporalDisabled)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ACCESS_TOKEN_TTL_MINUTES")
}
