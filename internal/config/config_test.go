package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEYS", "")
	t.Setenv("CACHE_TYPE", "")
	t.Setenv("DB_TYPE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 250*time.Millisecond, cfg.Cache.OpTimeout)
	assert.Equal(t, 4*time.Minute, cfg.Cache.WarmupInterval)
	assert.False(t, cfg.Cache.UsesRedis())
	assert.Empty(t, cfg.Auth.APIKeys)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CACHE_TYPE", "Redis")
	t.Setenv("CACHE_OP_TIMEOUT", "100ms")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("API_KEYS", " k1 , ,k2")
	t.Setenv("DB_TYPE", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cache.UsesRedis())
	assert.Equal(t, 100*time.Millisecond, cfg.Cache.OpTimeout)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.RedisAddress())
	assert.Equal(t, []string{"k1", "k2"}, cfg.Auth.APIKeys)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CACHE_OP_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		Name:     "assist",
		User:     "app",
		Password: "p@ss word",
		SSLMode:  "require",
		Path:     "/var/lib/assist.db",
	}

	d.Type = "postgres"
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/assist?sslmode=require", d.DSN())

	d.Type = "mysql"
	d.Port = 3306
	assert.Equal(t, "app:p@ss word@tcp(db:3306)/assist?parseTime=true&loc=UTC&clientFoundRows=true", d.DSN())

	d.Type = "sqlite"
	assert.Contains(t, d.DSN(), "file:/var/lib/assist.db?")
	assert.Contains(t, d.DSN(), "journal_mode(WAL)")
}
