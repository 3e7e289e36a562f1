package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DB_MAX_CONNS", "")

	cfg := Load()
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, localDBURL, cfg.DBURL)
	assert.Equal(t, localJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 20, cfg.RateLimitRPS)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 1000, cfg.NotificationQueueSize)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 2, cfg.DBMinConns)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("AI_SERVICE_TIMEOUT", "bad")
	t.Setenv("RATE_LIMIT_BURST", "-3")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90s")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.AIServiceTimeout)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.False(t, cfg.Migrate)
	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.Equal(t, 90*time.Second, cfg.DBMaxConnIdleTime)
}

func TestLoad_RequiredOutsideLocal(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Empty(t, cfg.DBURL)
	assert.Empty(t, cfg.JWTSecret)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("DB_URL", "postgres://app@db:5432/jala_match")
	t.Setenv("JWT_SECRET", "s3cret")
	cfg = Load()
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_PoolBounds(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MIN_CONNS")
}
