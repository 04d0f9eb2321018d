package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "plantlease-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "plantlease", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 1<<20, cfg.HTTP.MaxHeaderBytes)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PLANTLEASE_APP_PORT", "9090")
	t.Setenv("PLANTLEASE_DATABASE_HOST", "db.internal")
	t.Setenv("PLANTLEASE_DATABASE_PASSWORD", "s3cret")
	t.Setenv("PLANTLEASE_REDIS_ENABLED", "true")
	t.Setenv("PLANTLEASE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadProductionValidation(t *testing.T) {
	t.Run("requires database password", func(t *testing.T) {
		t.Setenv("PLANTLEASE_APP_ENV", "production")
		t.Setenv("PLANTLEASE_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("rejects disabled ssl", func(t *testing.T) {
		t.Setenv("PLANTLEASE_APP_ENV", "production")
		t.Setenv("PLANTLEASE_DATABASE_PASSWORD", "s3cret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("passes with password and ssl", func(t *testing.T) {
		t.Setenv("PLANTLEASE_APP_ENV", "production")
		t.Setenv("PLANTLEASE_DATABASE_PASSWORD", "s3cret")
		t.Setenv("PLANTLEASE_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestLoadConnPoolValidation(t *testing.T) {
	t.Setenv("PLANTLEASE_DATABASE_MAX_OPEN_CONNS", "5")
	t.Setenv("PLANTLEASE_DATABASE_MAX_IDLE_CONNS", "10")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "plantlease",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "plantlease")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
