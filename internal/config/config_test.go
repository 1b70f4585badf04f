package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.StateBackend)
	assert.Equal(t, AuthModeDemo, cfg.AuthMode)
	assert.Equal(t, uint64(0), cfg.ScoreSeed)
	assert.Equal(t, 1500*time.Millisecond, cfg.Latency.Login)
	assert.Equal(t, 2*time.Second, cfg.Latency.Register)
	assert.Equal(t, 2*time.Second, cfg.Latency.FetchScore)
	assert.Equal(t, 3*time.Second, cfg.Latency.Submit)
	assert.Equal(t, 12, cfg.Password.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STATE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("AUTH_MODE", "strict")
	t.Setenv("SCORE_SEED", "42")
	t.Setenv("LATENCY_SUBMIT", "0s")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "redis", cfg.StateBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, AuthModeStrict, cfg.AuthMode)
	assert.Equal(t, uint64(42), cfg.ScoreSeed)
	assert.Zero(t, cfg.Latency.Submit)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.False(t, cfg.Session.Ephemeral)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"port out of range", "PORT", "70000", "PORT out of range"},
		{"port not a number", "PORT", "eighty", "parse env"},
		{"unknown backend", "STATE_BACKEND", "etcd", "STATE_BACKEND"},
		{"postgres without url", "STATE_BACKEND", "postgres", "DATABASE_URL"},
		{"unknown auth mode", "AUTH_MODE", "open", "AUTH_MODE"},
		{"negative latency", "LATENCY_LOGIN", "-1s", "LATENCY_LOGIN"},
		{"bad bcrypt cost", "BCRYPT_COST", "4", "bcrypt cost out of range"},
		{"bad session ttl", "SESSION_TTL_HOURS", "0", "SESSION_TTL_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
