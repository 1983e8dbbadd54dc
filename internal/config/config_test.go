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

	assert.Equal(t, "piggybank-api", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "piggybank", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, 5, cfg.Throttle.Threshold)
	assert.Equal(t, 30*time.Minute, cfg.Throttle.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Token.ExpiresIn)
	assert.Empty(t, cfg.Consul.Addr)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOGIN_THROTTLE_THRESHOLD", "3")
	t.Setenv("MONGO_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3, cfg.Throttle.Threshold)
	assert.Equal(t, 2*time.Second, cfg.Mongo.Timeout)
}
