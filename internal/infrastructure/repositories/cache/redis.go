package cache

import (
	"btc-rate-monitor/internal/domain/apperr"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultConnectAttempts = 3
	DefaultRetryDelay      = 500 * time.Millisecond
	pingTimeout            = 5 * time.Second
)

var _ interfaces.Store = (*RedisStore)(nil)

// redisClient is the subset of *redis.Client the store uses
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// dialFunc opens a client and proves it usable
type dialFunc func(ctx context.Context, opts *redis.Options) (redisClient, error)

// RedisConfig holds connection settings for the redis store
type RedisConfig struct {
	// Addr is host:port or a redis:// / rediss:// URI
	Addr            string
	Password        string
	DB              int
	ConnectAttempts uint
	RetryDelay      time.Duration
}

func (c RedisConfig) options() (*redis.Options, error) {
	var opts *redis.Options
	if strings.Contains(c.Addr, "://") {
		parsed, err := redis.ParseURL(c.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		if c.Addr == "" {
			return nil, errors.New("redis address is empty")
		}
		opts = &redis.Options{Addr: c.Addr}
	}

	if c.Password != "" {
		opts.Password = c.Password
	}
	if c.DB != 0 {
		opts.DB = c.DB
	}
	return opts, nil
}

// RedisStore keeps one pooled go-redis client for the process lifetime.
// The client multiplexes concurrent Get/Set calls, so no external locking is needed.
type RedisStore struct {
	client redisClient
	addr   string
}

// Connect opens the store, retrying up to cfg.ConnectAttempts times.
// Exhausting the attempts yields a KindConnection error.
func Connect(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	return connect(ctx, cfg, dialRedis)
}

func dialRedis(ctx context.Context, opts *redis.Options) (redisClient, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func connect(ctx context.Context, cfg RedisConfig, dial dialFunc) (*RedisStore, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, apperr.Config("cache.Connect", err)
	}

	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = DefaultConnectAttempts
	}

	var client redisClient
	err = retry.Do(
		func() error {
			c, dialErr := dial(ctx, opts)
			metrics.RecordStoreConnectAttempt(dialErr == nil)
			if dialErr != nil {
				return dialErr
			}
			client = c
			return nil
		},
		retry.Attempts(attempts),
		retry.Delay(cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			remaining := attempts - n - 1
			logging.WarnWithError(ctx, fmt.Sprintf("failed to connect to redis, retrying %d more times", remaining), err, logging.Fields{
				"addr":                 opts.Addr,
				logging.FieldAttempt:   n + 1,
				logging.FieldRemaining: remaining,
			})
		}),
	)
	if err != nil {
		logging.ErrorWithError(ctx, "failed to open redis connection", err, logging.Fields{
			"addr":     opts.Addr,
			"attempts": attempts,
		})
		return nil, apperr.Connection("cache.Connect", fmt.Errorf("redis at %s unreachable after %d attempts: %w", opts.Addr, attempts, err))
	}

	logging.Info(ctx, "Redis connection established successfully", logging.Fields{
		"addr":     opts.Addr,
		"database": opts.DB,
	})

	return &RedisStore{client: client, addr: opts.Addr}, nil
}

// NewRedisStoreWithClient wraps an already connected client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, addr: client.Options().Addr}
}

// Get reads the raw value under key. A missing key, or a key holding a
// non-string type, is reported as found=false with no error.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == nil {
		logging.Debug(ctx, "found key in cache", logging.Fields{logging.FieldCacheKey: key})
		return val, true, nil
	}

	if isAbsent(err) {
		logging.Debug(ctx, "key not present in cache", logging.Fields{logging.FieldCacheKey: key})
		return "", false, nil
	}

	logging.ErrorWithError(ctx, "error occurred while fetching key", err, logging.Fields{
		logging.FieldCacheKey: key,
	})
	return "", false, apperr.Store("cache.Get", fmt.Errorf("get %s: %w", key, err))
}

// Set writes value with an absolute expiration of ttl, replacing whatever was there
func (r *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return apperr.Store("cache.Set", fmt.Errorf("ttl must be positive, got %v", ttl))
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logging.ErrorWithError(ctx, "error occurred while setting key", err, logging.Fields{
			logging.FieldCacheKey: key,
		})
		return apperr.Store("cache.Set", fmt.Errorf("set %s: %w", key, err))
	}

	logging.Debug(ctx, "setting key in cache", logging.Fields{
		logging.FieldCacheKey: key,
		logging.FieldCacheTTL: ttl.Seconds(),
	})
	return nil
}

// Ping checks if Redis connection is alive
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return apperr.Store("cache.Ping", err)
	}
	return nil
}

// Close closes the Redis connection pool
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Addr returns the address the store is connected to
func (r *RedisStore) Addr() string {
	return r.addr
}

func isAbsent(err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	var redisErr redis.Error
	return errors.As(err, &redisErr) && strings.HasPrefix(redisErr.Error(), "WRONGTYPE")
}
