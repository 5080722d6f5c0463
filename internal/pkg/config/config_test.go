package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": secret,
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, 10*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, time.Minute, cfg.Auth.LoginWindow)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     secret,
		"JWT_TTL":        "30m",
		"STORAGE_DRIVER": "postgres",
		"REDIS_ENABLED":  "false",
		"ENV":            "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
}

func TestLoadFrom_Invalid(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "short",
		"STORAGE_DRIVER": "sqlite",
		"LOG_LEVEL":      "loud",
	}))
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.Contains(msg, "JWT_SECRET"), msg)
	assert.True(t, strings.Contains(msg, "STORAGE_DRIVER"), msg)
	assert.True(t, strings.Contains(msg, "LOG_LEVEL"), msg)
}
