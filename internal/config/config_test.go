package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		Port:       "5000",
		Env:        "development",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		JWTExpire:  "168h",
		DBPassword: "secure-password",
		DBSSLMode:  "disable",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Short secret allowed outside production", func(c *Config) { c.JWTSecret = "short" }, false},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with weak DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
			c.DBSSLMode = "require"
		}, true},
		{"Production with SSL disabled", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"Production fully hardened", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_TokenTTL(t *testing.T) {
	tests := []struct {
		name     string
		expire   string
		expected time.Duration
	}{
		{"Configured value", "24h", 24 * time.Hour},
		{"Default week", "168h", 168 * time.Hour},
		{"Malformed falls back to a week", "7d", 7 * 24 * time.Hour},
		{"Empty falls back to a week", "", 7 * 24 * time.Hour},
		{"Negative falls back to a week", "-1h", 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{JWTExpire: tt.expire}
			assert.Equal(t, tt.expected, c.TokenTTL())
		})
	}
}
