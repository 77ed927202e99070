package services

import (
	"btc-rate-monitor/internal/domain/apperr"
	"btc-rate-monitor/internal/domain/entities"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"context"
	"fmt"
	"time"
)

const (
	DefaultCacheKey = "bitcoin_exchange_price"
	DefaultCacheTTL = 7200 * time.Second
)

var _ interfaces.PriceService = (*PriceCacheService)(nil)

// PriceCacheService serves the exchange rate cache-aside over a Store.
//
// There is no single-flight on a miss: concurrent callers that all miss
// each fetch and each write, and the last write wins.
type PriceCacheService struct {
	store   interfaces.Store
	fetcher interfaces.RateFetcher
	key     string
	ttl     time.Duration
}

// Option customises a PriceCacheService
type Option func(*PriceCacheService)

// WithCacheKey overrides the key the rate is stored under
func WithCacheKey(key string) Option {
	return func(s *PriceCacheService) {
		if key != "" {
			s.key = key
		}
	}
}

// WithTTL overrides the expiration applied on every write
func WithTTL(ttl time.Duration) Option {
	return func(s *PriceCacheService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewPriceCacheService creates the service with the default key and TTL
func NewPriceCacheService(store interfaces.Store, fetcher interfaces.RateFetcher, opts ...Option) *PriceCacheService {
	s := &PriceCacheService{
		store:   store,
		fetcher: fetcher,
		key:     DefaultCacheKey,
		ttl:     DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPrice returns the cached rate, or on a miss fetches it live and caches it.
// A cached entry that cannot be decoded is a KindSerialization error and is
// never papered over with a live fetch.
func (s *PriceCacheService) GetPrice(ctx context.Context) (entities.ExchangeRate, error) {
	raw, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		metrics.RecordCacheOperation("get", "error")
		return entities.ExchangeRate{}, err
	}

	if found {
		rate, decodeErr := entities.DecodeRate(raw)
		if decodeErr != nil {
			metrics.RecordCacheOperation("get", "corrupt")
			logging.ErrorWithError(ctx, "cached rate is not decodable", decodeErr, logging.Fields{
				logging.FieldCacheKey: s.key,
			})
			return entities.ExchangeRate{}, apperr.Serialization("services.GetPrice", fmt.Errorf("decode %s: %w", s.key, decodeErr))
		}

		metrics.RecordCacheOperation("get", "hit")
		logging.Debug(ctx, "serving rate from cache", logging.Fields{
			logging.FieldCacheKey: s.key,
			logging.FieldCacheHit: true,
			logging.FieldRate:     rate.Rate,
		})
		return rate, nil
	}

	metrics.RecordCacheOperation("get", "miss")
	logging.Debug(ctx, "cache miss, fetching live rate", logging.Fields{
		logging.FieldCacheKey: s.key,
		logging.FieldCacheHit: false,
	})

	rate, err := s.fetcher.FetchRate(ctx)
	if err != nil {
		return entities.ExchangeRate{}, err
	}

	if err := s.SetCachePrice(ctx, rate); err != nil {
		return entities.ExchangeRate{}, err
	}

	return rate, nil
}

// SetCachePrice overwrites the cached rate and resets its TTL
func (s *PriceCacheService) SetCachePrice(ctx context.Context, rate entities.ExchangeRate) error {
	raw, err := entities.EncodeRate(rate)
	if err != nil {
		return apperr.Serialization("services.SetCachePrice", err)
	}

	if err := s.store.Set(ctx, s.key, raw, s.ttl); err != nil {
		metrics.RecordCacheOperation("set", "error")
		return err
	}

	metrics.RecordCacheOperation("set", "ok")
	metrics.UpdateCurrentRate(rate.Rate)
	logging.Info(ctx, "cached exchange rate", logging.Fields{
		logging.FieldCacheKey: s.key,
		logging.FieldCacheTTL: s.ttl.Seconds(),
		logging.FieldRate:     rate.Rate,
		logging.FieldRateTime: rate.Time,
	})
	return nil
}

// Ping reports whether the backing store is reachable
func (s *PriceCacheService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
