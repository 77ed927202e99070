package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Environment string            `yaml:"environment" mapstructure:"environment"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	CoinAPI     CoinAPIConfig     `yaml:"coinapi" mapstructure:"coinapi"`
	Monitor     MonitorConfig     `yaml:"monitor" mapstructure:"monitor"`
	Notify      NotifyConfig      `yaml:"notify" mapstructure:"notify"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Development DevelopmentConfig `yaml:"development" mapstructure:"development"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CacheConfig contains cache system configuration
type CacheConfig struct {
	Backend string        `yaml:"backend" mapstructure:"backend"`
	Key     string        `yaml:"key" mapstructure:"key"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Redis   RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration.
// Addr accepts host:port or a redis:// URI.
type RedisConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	Password        string        `yaml:"password" mapstructure:"password"`
	DB              int           `yaml:"db" mapstructure:"db"`
	ConnectAttempts uint          `yaml:"connect_attempts" mapstructure:"connect_attempts"`
	RetryDelay      time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
}

// CoinAPIConfig contains price API configuration
type CoinAPIConfig struct {
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	BaseAsset  string        `yaml:"base_asset" mapstructure:"base_asset"`
	QuoteAsset string        `yaml:"quote_asset" mapstructure:"quote_asset"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MonitorConfig controls the movement monitor
type MonitorConfig struct {
	Enabled          bool          `yaml:"enabled" mapstructure:"enabled"`
	Interval         time.Duration `yaml:"interval" mapstructure:"interval"`
	ThresholdPercent float64       `yaml:"threshold_percent" mapstructure:"threshold_percent"`
	HeartbeatModulo  int           `yaml:"heartbeat_modulo" mapstructure:"heartbeat_modulo"`
}

// NotifyConfig selects the notification sink and its recipients
type NotifyConfig struct {
	Backend    string         `yaml:"backend" mapstructure:"backend"`
	Recipients []int64        `yaml:"recipients" mapstructure:"recipients"`
	Telegram   TelegramConfig `yaml:"telegram" mapstructure:"telegram"`
}

// TelegramConfig contains Bot API settings
type TelegramConfig struct {
	Token   string        `yaml:"token" mapstructure:"token"`
	APIURL  string        `yaml:"api_url" mapstructure:"api_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RateLimitConfig throttles the on-demand price endpoint per client
type RateLimitConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int     `yaml:"capacity" mapstructure:"capacity"`
	RefillRate float64 `yaml:"refill_rate" mapstructure:"refill_rate"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DevelopmentConfig contains switches for local development
type DevelopmentConfig struct {
	// MockMode replaces CoinAPI with a simulated random walk
	MockMode bool `yaml:"mock_mode" mapstructure:"mock_mode"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "redis",
			Key:     "bitcoin_exchange_price",
			TTL:     7200 * time.Second,
			Redis: RedisConfig{
				Addr:            "localhost:6379",
				ConnectAttempts: 3,
				RetryDelay:      500 * time.Millisecond,
			},
		},
		CoinAPI: CoinAPIConfig{
			BaseURL:    "https://rest.coinapi.io",
			BaseAsset:  "BTC",
			QuoteAsset: "USD",
		},
		Monitor: MonitorConfig{
			Enabled:          true,
			Interval:         time.Hour,
			ThresholdPercent: 3.0,
			HeartbeatModulo:  11,
		},
		Notify: NotifyConfig{
			Backend: "telegram",
			Telegram: TelegramConfig{
				APIURL:  "https://api.telegram.org",
				Timeout: 10 * time.Second,
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Capacity:   30,
			RefillRate: 0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
