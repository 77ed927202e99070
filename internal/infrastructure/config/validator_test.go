package config

import (
	"btc-rate-monitor/internal/domain/apperr"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.CoinAPI.APIKey = "key"
	cfg.Notify.Recipients = []int64{12345}
	cfg.Notify.Telegram.Token = "bot-token"
	return cfg
}

func TestValidator_DefaultsWithSecretsAreValid(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(validConfig()))
}

func TestValidator_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{
			name:          "missing api key",
			mutate:        func(c *Config) { c.CoinAPI.APIKey = "" },
			errorContains: "COIN_API_KEY is required",
		},
		{
			name:          "no recipients",
			mutate:        func(c *Config) { c.Notify.Recipients = nil },
			errorContains: "CHAT_ID must list at least one recipient",
		},
		{
			name:          "telegram without token",
			mutate:        func(c *Config) { c.Notify.Telegram.Token = "" },
			errorContains: "TELOXIDE_TOKEN is required",
		},
		{
			name:          "unknown cache backend",
			mutate:        func(c *Config) { c.Cache.Backend = "memcached" },
			errorContains: "invalid cache backend",
		},
		{
			name:          "unknown notify backend",
			mutate:        func(c *Config) { c.Notify.Backend = "smtp" },
			errorContains: "invalid notify backend",
		},
		{
			name:          "sub-second ttl",
			mutate:        func(c *Config) { c.Cache.TTL = 500 * time.Millisecond },
			errorContains: "cache TTL must be at least 1s",
		},
		{
			name:          "redis addr without port",
			mutate:        func(c *Config) { c.Cache.Redis.Addr = "localhost" },
			errorContains: "expected host:port",
		},
		{
			name:          "redis url with wrong scheme",
			mutate:        func(c *Config) { c.Cache.Redis.Addr = "http://localhost:6379" },
			errorContains: "must be redis or rediss",
		},
		{
			name:          "zero connect attempts",
			mutate:        func(c *Config) { c.Cache.Redis.ConnectAttempts = 0 },
			errorContains: "connect_attempts must be between 1-10",
		},
		{
			name:          "negative retry delay",
			mutate:        func(c *Config) { c.Cache.Redis.RetryDelay = -time.Second },
			errorContains: "retry_delay cannot be negative",
		},
		{
			name:          "zero interval",
			mutate:        func(c *Config) { c.Monitor.Interval = 0 },
			errorContains: "monitor interval must be at least 1s",
		},
		{
			name:          "non-positive threshold",
			mutate:        func(c *Config) { c.Monitor.ThresholdPercent = 0 },
			errorContains: "threshold_percent must be positive",
		},
		{
			name:          "bad port",
			mutate:        func(c *Config) { c.Server.Port = 70000 },
			errorContains: "invalid port",
		},
		{
			name:          "bad log level",
			mutate:        func(c *Config) { c.Logging.Level = "verbose" },
			errorContains: "invalid log level",
		},
		{
			name:          "rate limit without capacity",
			mutate:        func(c *Config) { c.RateLimit.Capacity = 0 },
			errorContains: "rate_limit capacity",
		},
		{
			name:          "bad api url",
			mutate:        func(c *Config) { c.CoinAPI.BaseURL = "ftp://rest.coinapi.io" },
			errorContains: "must be http or https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := NewValidator().Validate(cfg)

			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindConfig))
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestValidator_Allows(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "redis url", mutate: func(c *Config) { c.Cache.Redis.Addr = "redis://:pw@cache:6379/0" }},
		{name: "zero retry delay", mutate: func(c *Config) { c.Cache.Redis.RetryDelay = 0 }},
		{name: "memory backend skips redis checks", mutate: func(c *Config) {
			c.Cache.Backend = "memory"
			c.Cache.Redis.Addr = ""
		}},
		{name: "log backend needs no token", mutate: func(c *Config) {
			c.Notify.Backend = "log"
			c.Notify.Telegram.Token = ""
		}},
		{name: "disabled monitor skips interval", mutate: func(c *Config) {
			c.Monitor.Enabled = false
			c.Monitor.Interval = 0
		}},
		{name: "disabled rate limit skips checks", mutate: func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.Capacity = 0
		}},
		{name: "mock mode needs no api key", mutate: func(c *Config) {
			c.Development.MockMode = true
			c.CoinAPI.APIKey = ""
		}},
		{name: "trace level", mutate: func(c *Config) { c.Logging.Level = "TRACE" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.NoError(t, NewValidator().Validate(cfg))
		})
	}
}
