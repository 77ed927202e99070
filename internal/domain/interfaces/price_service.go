package interfaces

import (
	"btc-rate-monitor/internal/domain/entities"
	"context"
)

// PriceService is the cache-aside view of the exchange rate
type PriceService interface {
	// GetPrice serves the cached rate, fetching and caching it on a miss
	GetPrice(ctx context.Context) (entities.ExchangeRate, error)

	// SetCachePrice overwrites the cached rate with a fresh TTL
	SetCachePrice(ctx context.Context, rate entities.ExchangeRate) error
}
