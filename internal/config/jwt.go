package config

import (
	"fmt"
	"os"
	"strconv"
)

// defaultTokenLifetimeHours is how long a dashboard session token stays
// valid when JWT_EXPIRATION_HOURS is not set.
const defaultTokenLifetimeHours = 24

// JWTConfig describes how dashboard session tokens are signed. A login issues
// one token for the owner subject; there is no refresh flow, the owner logs
// in again when it expires.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds the signing config from JWT_SECRET (required) and
// JWT_EXPIRATION_HOURS.
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          os.Getenv("JWT_SECRET"),
		ExpirationHours: defaultTokenLifetimeHours,
	}

	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %v", raw, err)
		}
		cfg.ExpirationHours = hours
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
