package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/stageboard/internal/cache"
	"github.com/vytor/stageboard/internal/config"
	"github.com/vytor/stageboard/internal/logger"
)

func memoryConfig() config.Config {
	cfg := config.Defaults()
	cfg.DBPath = ":memory:"
	return cfg
}

func TestNew_WithoutRedis(t *testing.T) {
	a, err := New(memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, cache.Noop{}, a.Cache)

	srv := a.Server()
	assert.Len(t, srv.Checks, 1)
	require.Contains(t, srv.Checks, "database")
	assert.NoError(t, srv.Checks["database"].Ping(context.Background()))
	assert.Equal(t, []string{"*"}, srv.CORSOrigins)
}

func TestNew_WithRedisAddsReadinessCheck(t *testing.T) {
	cfg := memoryConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &cache.RedisCache{}, a.Cache)
	assert.Contains(t, a.Server().Checks, "cache")
}

func TestNewLogger(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogLevel = "WARN"

	l := NewLogger(cfg)
	assert.False(t, l.Enabled(logger.INFO))
	assert.True(t, l.Enabled(logger.WARN))
}
