package ratelimit

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// envConfig is the part of Config that comes from the environment.
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"600"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	IdleTimeout     time.Duration `env:"RATE_LIMIT_IDLE_TIMEOUT" envDefault:"1h"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST" envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST" envSeparator:","`
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() (*Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse rate limit env: %w", err)
	}
	if !raw.Enabled {
		return &Config{Enabled: false}, nil
	}
	if raw.DefaultLimit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_DEFAULT_LIMIT cannot be negative, got: %d", raw.DefaultLimit)
	}
	if raw.DefaultLimit > 0 && raw.DefaultWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_DEFAULT_WINDOW must be positive, got: %s", raw.DefaultWindow)
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    raw.DefaultLimit,
		DefaultWindow:   raw.DefaultWindow,
		CleanupInterval: raw.CleanupInterval,
		IdleTimeout:     raw.IdleTimeout,
		Whitelist:       ipSet(raw.Whitelist),
		Blacklist:       ipSet(raw.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}, nil
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: credential checks (strictest limits)
		{Path: "/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/register", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/v1/auth/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Tier 2: scoring runs (moderate limits)
		{Path: "/assessment/submit", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/v1/assessments", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/v1/assessments/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/v1/scores/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Tier 3: page views and reads - handled by default limit
		// Tier 4: health check and metrics (unlimited) - handled by special case in matcher
	}
}

// ipSet turns a list of addresses into a lookup set, skipping blanks.
func ipSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
