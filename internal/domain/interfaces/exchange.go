package interfaces

import (
	"btc-rate-monitor/internal/domain/entities"
	"context"
)

// RateFetcher performs a single live lookup of the exchange rate, never cached
type RateFetcher interface {
	FetchRate(ctx context.Context) (entities.ExchangeRate, error)
}
