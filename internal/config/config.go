// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

// Auth modes.
const (
	AuthModeDemo   = "demo"
	AuthModeStrict = "strict"
)

// Config is the full server configuration. Every field can be set through the
// environment; a .env file is loaded by the binary before Load runs.
type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	StateBackend  string `env:"STATE_BACKEND" envDefault:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL   string `env:"DATABASE_URL"`

	// AuthMode is "demo" (any credentials succeed) or "strict".
	AuthMode string `env:"AUTH_MODE" envDefault:"demo"`

	// ScoreSeed seeds the score jitter. Zero draws from an unseeded source.
	ScoreSeed uint64 `env:"SCORE_SEED" envDefault:"0"`

	Latency  LatencyConfig
	Session  SessionConfig
	Password PasswordConfig
}

// LatencyConfig holds the simulated latency of each mock call.
type LatencyConfig struct {
	Login      time.Duration `env:"LATENCY_LOGIN" envDefault:"1500ms"`
	Register   time.Duration `env:"LATENCY_REGISTER" envDefault:"2s"`
	FetchScore time.Duration `env:"LATENCY_FETCH_SCORE" envDefault:"2s"`
	Submit     time.Duration `env:"LATENCY_SUBMIT" envDefault:"3s"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize validates the configuration and fills derived defaults.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if !slices.Contains([]string{"memory", "redis", "postgres"}, c.StateBackend) {
		return fmt.Errorf("STATE_BACKEND must be memory, redis or postgres, got: %q", c.StateBackend)
	}
	if c.StateBackend == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STATE_BACKEND=postgres")
	}
	if c.AuthMode != AuthModeDemo && c.AuthMode != AuthModeStrict {
		return fmt.Errorf("AUTH_MODE must be demo or strict, got: %q", c.AuthMode)
	}
	for name, d := range map[string]time.Duration{
		"LATENCY_LOGIN":       c.Latency.Login,
		"LATENCY_REGISTER":    c.Latency.Register,
		"LATENCY_FETCH_SCORE": c.Latency.FetchScore,
		"LATENCY_SUBMIT":      c.Latency.Submit,
	} {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative, got: %s", name, d)
		}
	}
	if err := c.Session.normalize(); err != nil {
		return err
	}
	return c.Password.normalize()
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
