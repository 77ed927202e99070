package config

import (
	"btc-rate-monitor/internal/domain/apperr"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp keeps Load from picking up config files of the working tree
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoader_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "bitcoin_exchange_price", cfg.Cache.Key)
	assert.Equal(t, 7200*time.Second, cfg.Cache.TTL)
	assert.Equal(t, uint(3), cfg.Cache.Redis.ConnectAttempts)
	assert.Equal(t, time.Hour, cfg.Monitor.Interval)
	assert.Equal(t, 3.0, cfg.Monitor.ThresholdPercent)
	assert.Equal(t, 11, cfg.Monitor.HeartbeatModulo)
	assert.Equal(t, "https://rest.coinapi.io", cfg.CoinAPI.BaseURL)
}

func TestLoader_BotEnvironmentVariables(t *testing.T) {
	chdirTemp(t)
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("COIN_API_KEY", "coin-key")
	t.Setenv("CHAT_ID", "111, -222,333")
	t.Setenv("TELOXIDE_TOKEN", "123:abc")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, "redis://cache:6379/1", cfg.Cache.Redis.Addr)
	assert.Equal(t, "coin-key", cfg.CoinAPI.APIKey)
	assert.Equal(t, []int64{111, -222, 333}, cfg.Notify.Recipients)
	assert.Equal(t, "123:abc", cfg.Notify.Telegram.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.NoError(t, NewValidator().Validate(cfg))
}

func TestLoader_PrefixedEnvironmentVariables(t *testing.T) {
	chdirTemp(t)
	t.Setenv("RATE_MONITOR_MONITOR_INTERVAL", "90s")
	t.Setenv("RATE_MONITOR_CACHE_REDIS_RETRY_DELAY", "0s")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, time.Duration(0), cfg.Cache.Redis.RetryDelay)
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := []byte("monitor:\n  threshold_percent: 5\nnotify:\n  backend: log\n  recipients: [7, 8]\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Monitor.ThresholdPercent)
	assert.Equal(t, "log", cfg.Notify.Backend)
	assert.Equal(t, []int64{7, 8}, cfg.Notify.Recipients)
}

func TestLoader_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("COIN_API_KEY=from-dotenv\n"), 0o600))
	t.Setenv("COIN_API_KEY", "")
	require.NoError(t, os.Unsetenv("COIN_API_KEY"))

	cfg, err := NewLoader().WithEnvFile(envFile).Load()
	t.Cleanup(func() { _ = os.Unsetenv("COIN_API_KEY") })

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.CoinAPI.APIKey)
}

func TestLoader_InvalidChatID(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CHAT_ID", "12,abc")

	_, err := NewLoader().Load()

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConfig))
	assert.Contains(t, err.Error(), `"abc" is not an integer`)
}

func TestParseRecipients(t *testing.T) {
	ids, err := ParseRecipients(" 1 ,2,,3 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = ParseRecipients(" , ")
	assert.Error(t, err)
}
