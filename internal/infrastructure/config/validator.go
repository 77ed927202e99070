package config

import (
	"btc-rate-monitor/internal/domain/apperr"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validator checks a loaded configuration before anything is started
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns a KindConfig error describing the first invalid section
func (v *Validator) Validate(config *Config) error {
	checks := []struct {
		section string
		err     error
	}{
		{"server", v.validateServer(config.Server)},
		{"cache", v.validateCache(config.Cache)},
		{"coinapi", v.validateCoinAPI(config.CoinAPI, config.Development.MockMode)},
		{"monitor", v.validateMonitor(config.Monitor)},
		{"notify", v.validateNotify(config.Notify)},
		{"rate limit", v.validateRateLimit(config.RateLimit)},
		{"logging", v.validateLogging(config.Logging)},
	}

	for _, c := range checks {
		if c.err != nil {
			return apperr.Config("config.Validate", fmt.Errorf("%s config validation failed: %w", c.section, c.err))
		}
	}
	return nil
}

func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	return nil
}

func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	if config.Key == "" {
		return fmt.Errorf("cache key cannot be empty")
	}

	if config.TTL < time.Second {
		return fmt.Errorf("cache TTL must be at least 1s, got: %v", config.TTL)
	}

	if config.Backend == "redis" {
		return v.validateRedis(config.Redis)
	}
	return nil
}

func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if strings.Contains(config.Addr, "://") {
		parsed, err := url.Parse(config.Addr)
		if err != nil {
			return fmt.Errorf("invalid redis url: %v", err)
		}
		if parsed.Scheme != "redis" && parsed.Scheme != "rediss" {
			return fmt.Errorf("invalid redis url scheme: %s, must be redis or rediss", parsed.Scheme)
		}
	} else if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	if config.ConnectAttempts < 1 || config.ConnectAttempts > 10 {
		return fmt.Errorf("redis connect_attempts must be between 1-10, got: %d", config.ConnectAttempts)
	}

	if config.RetryDelay < 0 {
		return fmt.Errorf("redis retry_delay cannot be negative, got: %v", config.RetryDelay)
	}

	return nil
}

func (v *Validator) validateCoinAPI(config CoinAPIConfig, mockMode bool) error {
	if mockMode {
		return nil
	}

	if config.APIKey == "" {
		return fmt.Errorf("COIN_API_KEY is required")
	}

	if err := v.validateURL(config.BaseURL, "coinapi base_url"); err != nil {
		return err
	}

	if config.BaseAsset == "" || config.QuoteAsset == "" {
		return fmt.Errorf("coinapi base_asset and quote_asset cannot be empty")
	}

	if config.Timeout < 0 {
		return fmt.Errorf("coinapi timeout cannot be negative, got: %v", config.Timeout)
	}

	return nil
}

func (v *Validator) validateMonitor(config MonitorConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Interval < time.Second {
		return fmt.Errorf("monitor interval must be at least 1s, got: %v", config.Interval)
	}

	if config.ThresholdPercent <= 0 {
		return fmt.Errorf("monitor threshold_percent must be positive, got: %v", config.ThresholdPercent)
	}

	if config.HeartbeatModulo < 0 || config.HeartbeatModulo > 24 {
		return fmt.Errorf("monitor heartbeat_modulo must be between 0-24, got: %d", config.HeartbeatModulo)
	}

	return nil
}

func (v *Validator) validateNotify(config NotifyConfig) error {
	validBackends := []string{"telegram", "log"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid notify backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	if len(config.Recipients) == 0 {
		return fmt.Errorf("CHAT_ID must list at least one recipient")
	}

	if strings.EqualFold(config.Backend, "telegram") {
		if config.Telegram.Token == "" {
			return fmt.Errorf("TELOXIDE_TOKEN is required for the telegram backend")
		}
		if err := v.validateURL(config.Telegram.APIURL, "telegram api_url"); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateRateLimit(config RateLimitConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Capacity <= 0 || config.Capacity > 10000 {
		return fmt.Errorf("rate_limit capacity must be between 1-10000 when enabled, got: %d", config.Capacity)
	}

	if config.RefillRate <= 0 || config.RefillRate > 1000 {
		return fmt.Errorf("rate_limit refill_rate must be in (0, 1000] when enabled, got: %v", config.RefillRate)
	}

	return nil
}

func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"trace", "debug", "info", "warn", "error"}
	if !contains(validLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, config.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL checks for an absolute http(s) URL
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
