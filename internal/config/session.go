package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// SessionConfig holds configuration for the signed session token.
type SessionConfig struct {
	Secret   string `env:"SESSION_SECRET"`
	TTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	// Ephemeral is set when no secret was configured and one was generated.
	// Sessions then do not survive a restart.
	Ephemeral bool
}

// TTL returns the token lifetime.
func (c *SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// normalize validates the configuration, generating a secret when unset.
func (c *SessionConfig) normalize() error {
	if c.TTLHours < 1 {
		return fmt.Errorf("SESSION_TTL_HOURS must be at least 1 hour, got: %d", c.TTLHours)
	}
	if c.Secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		c.Secret = hex.EncodeToString(buf)
		c.Ephemeral = true
	}
	return nil
}
