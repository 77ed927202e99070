package config

import (
	"btc-rate-monitor/internal/domain/apperr"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "RATE_MONITOR"

// Loader handles configuration loading using Viper
type Loader struct {
	v       *viper.Viper
	envFile string
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v:       viper.New(),
		envFile: ".env",
	}
}

// WithEnvFile changes the dotenv file read before the environment is consulted
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load reads .env, config.yaml and the environment, in increasing precedence.
// Every failure is a KindConfig error.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	if err := l.loadDotEnv(); err != nil {
		return nil, apperr.Config(op, err)
	}

	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, apperr.Config(op, fmt.Errorf("failed to read config file: %w", err))
		}
	}

	config := GetDefaultConfig()
	registerDefaults(l.v, "", reflect.ValueOf(*config))
	if err := l.v.Unmarshal(config); err != nil {
		return nil, apperr.Config(op, fmt.Errorf("failed to unmarshal config: %w", err))
	}

	if err := l.overrideWithEnvVars(config); err != nil {
		return nil, apperr.Config(op, err)
	}

	return config, nil
}

// registerDefaults makes every leaf key known to viper so that AutomaticEnv
// overrides reach Unmarshal even when no config file mentions them.
func registerDefaults(v *viper.Viper, prefix string, value reflect.Value) {
	t := value.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("mapstructure"), ",")[0]
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		field := value.Field(i)
		if field.Kind() == reflect.Struct {
			registerDefaults(v, key, field)
			continue
		}
		v.SetDefault(key, field.Interface())
	}
}

// loadDotEnv populates unset variables from the env file; a missing file is fine
func (l *Loader) loadDotEnv() error {
	if l.envFile == "" {
		return nil
	}
	if _, err := os.Stat(l.envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(l.envFile); err != nil {
		return fmt.Errorf("failed to read %s: %w", l.envFile, err)
	}
	return nil
}

func (l *Loader) setupViper() {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath("./configs")
	l.v.AddConfigPath("../configs")
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("/etc/btc-rate-monitor")

	// RATE_MONITOR_CACHE_REDIS_ADDR style overrides
	l.v.SetEnvPrefix(envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	l.bindEnvVars()
}

// bindEnvVars maps the bot's established variable names onto config keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":           "PORT",
		"cache.backend":         "CACHE_BACKEND",
		"cache.redis.addr":      "REDIS_URL",
		"cache.redis.password":  "REDIS_PASSWORD",
		"coinapi.api_key":       "COIN_API_KEY",
		"coinapi.base_url":      "COIN_API_URL",
		"notify.backend":        "NOTIFY_BACKEND",
		"notify.telegram.token": "TELOXIDE_TOKEN",
		"logging.level":         "LOG_LEVEL",
		"logging.format":        "LOG_FORMAT",
		"environment":           "ENVIRONMENT",
		"rate_limit.enabled":    "RATE_LIMIT_ENABLED",
		"rate_limit.capacity":   "RATE_LIMIT_CAPACITY",
		"development.mock_mode": "MOCK_MODE",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(configKey, ".", "_")), envVar)
	}
}

// overrideWithEnvVars handles values viper cannot decode directly
func (l *Loader) overrideWithEnvVars(config *Config) error {
	if raw := os.Getenv("CHAT_ID"); raw != "" {
		recipients, err := ParseRecipients(raw)
		if err != nil {
			return fmt.Errorf("invalid CHAT_ID: %w", err)
		}
		config.Notify.Recipients = recipients
	}
	return nil
}

// ParseRecipients parses a comma separated list of chat ids
func ParseRecipients(raw string) ([]int64, error) {
	var recipients []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("recipient %q is not an integer", part)
		}
		recipients = append(recipients, id)
	}
	if len(recipients) == 0 {
		return nil, errors.New("no recipients listed")
	}
	return recipients, nil
}
