// Package exchange holds RateFetcher implementations that do not talk to a real price API.
package exchange

import (
	"btc-rate-monitor/internal/domain/entities"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultSimulatedRate     = 65000.0
	DefaultSimulatedVariance = 0.02
)

var _ interfaces.RateFetcher = (*SimulatedFetcher)(nil)

// SimulatedFetcher random-walks the rate for local development.
// Each call moves the previous rate by up to ±variance.
type SimulatedFetcher struct {
	mu       sync.Mutex
	rate     float64
	variance float64
	rng      *rand.Rand
	now      func() time.Time
}

// NewSimulatedFetcher starts the walk at DefaultSimulatedRate
func NewSimulatedFetcher() *SimulatedFetcher {
	return NewSimulatedFetcherWithSeed(DefaultSimulatedRate, DefaultSimulatedVariance, time.Now().UnixNano())
}

// NewSimulatedFetcherWithSeed gives a reproducible walk
func NewSimulatedFetcherWithSeed(start, variance float64, seed int64) *SimulatedFetcher {
	return &SimulatedFetcher{
		rate:     start,
		variance: variance,
		rng:      rand.New(rand.NewSource(seed)),
		now:      time.Now,
	}
}

// FetchRate returns the next step of the walk, stamped with the current time
func (s *SimulatedFetcher) FetchRate(ctx context.Context) (entities.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return entities.ExchangeRate{}, err
	}

	s.mu.Lock()
	variation := (s.rng.Float64()*2 - 1) * s.variance
	s.rate *= 1 + variation
	rate := entities.NewExchangeRate(s.now().UTC().Format(time.RFC3339Nano), s.rate)
	s.mu.Unlock()

	logging.Debug(ctx, "generated simulated rate", logging.Fields{
		logging.FieldRate: rate.Rate,
		"variation_pct":   variation * 100,
	})
	return rate, nil
}
