// Package monitor runs the recurring comparison of the live rate against the
// cached baseline and notifies recipients about significant movements.
package monitor

import (
	"btc-rate-monitor/internal/domain/entities"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"context"
	"time"
)

const (
	DefaultInterval         = time.Hour
	DefaultThresholdPercent = 3.0
	DefaultHeartbeatModulo  = 11
)

// Outcome classifies one evaluation
type Outcome string

const (
	OutcomeFetchError    Outcome = "fetch_error"
	OutcomeBaselineError Outcome = "baseline_error"
	OutcomeQuiet         Outcome = "quiet"
	OutcomeNotified      Outcome = "notified"
)

// Config holds the monitor's tunables
type Config struct {
	Interval         time.Duration
	ThresholdPercent float64
	// HeartbeatModulo forces a notification when the UTC hour is a multiple
	// of it. Zero disables the heartbeat.
	HeartbeatModulo int
	Recipients      []int64
}

// TickResult describes what a single evaluation did
type TickResult struct {
	Outcome   Outcome
	Live      entities.ExchangeRate
	Movement  *entities.Movement
	Heartbeat bool
	Sent      int
	Failed    int
	Persisted bool
	Err       error
}

// Monitor compares the live rate against the cached one on a fixed interval
type Monitor struct {
	fetcher   interfaces.RateFetcher
	prices    interfaces.PriceService
	notifier  interfaces.Notifier
	publisher interfaces.AlertPublisher
	cfg       Config
	now       func() time.Time
}

// Option customises a Monitor
type Option func(*Monitor)

// WithPublisher also fans every sent alert out to live subscribers
func WithPublisher(p interfaces.AlertPublisher) Option {
	return func(m *Monitor) { m.publisher = p }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// New builds a Monitor, filling zero config values with defaults
func New(fetcher interfaces.RateFetcher, prices interfaces.PriceService, notifier interfaces.Notifier, cfg Config, opts ...Option) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ThresholdPercent <= 0 {
		cfg.ThresholdPercent = DefaultThresholdPercent
	}

	m := &Monitor{
		fetcher:  fetcher,
		prices:   prices,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run waits a full interval, evaluates, and re-arms for another full interval
// measured from the end of the evaluation. It returns only when ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	logging.Info(ctx, "movement monitor started", logging.Fields{
		"interval":          m.cfg.Interval.String(),
		"threshold_percent": m.cfg.ThresholdPercent,
		"recipients":        len(m.cfg.Recipients),
	})

	timer := time.NewTimer(m.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			m.Evaluate(logging.NewRequestContext(ctx))
			timer.Reset(m.cfg.Interval)
		case <-ctx.Done():
			logging.Info(ctx, "movement monitor stopped", nil)
			return ctx.Err()
		}
	}
}

// Evaluate performs one comparison cycle. A failed live fetch skips the
// cycle entirely; otherwise the live rate is always written back to the cache.
func (m *Monitor) Evaluate(ctx context.Context) TickResult {
	live, err := m.fetcher.FetchRate(ctx)
	if err != nil {
		logging.ErrorWithError(ctx, "failed to fetch live rate, skipping cycle", err, nil)
		metrics.RecordMonitorTick(string(OutcomeFetchError))
		return TickResult{Outcome: OutcomeFetchError, Err: err}
	}

	result := TickResult{Live: live, Outcome: OutcomeQuiet}

	baseline, err := m.prices.GetPrice(ctx)
	if err != nil {
		logging.WarnWithError(ctx, "failed to read baseline rate, skipping comparison", err, nil)
		result.Outcome = OutcomeBaselineError
		result.Err = err
	} else {
		movement := entities.NewMovement(baseline, live)
		result.Movement = &movement
		result.Heartbeat = m.isHeartbeat()
		metrics.UpdateLastMovement(movement.PercentChange)

		logging.Info(ctx, "compared live rate with baseline", logging.Fields{
			logging.FieldRate:    live.Rate,
			"baseline":           baseline.Rate,
			logging.FieldPercent: movement.PercentChange,
			"heartbeat":          result.Heartbeat,
		})

		if movement.Exceeds(m.cfg.ThresholdPercent) || result.Heartbeat {
			result.Sent, result.Failed = m.notifyAll(ctx, movement.Message())
			result.Outcome = OutcomeNotified
			if m.publisher != nil {
				m.publisher.Publish(entities.MovementAlert{
					Movement:  movement,
					Heartbeat: result.Heartbeat,
					SentAt:    m.now().UTC(),
				})
			}
		}
	}

	if err := m.prices.SetCachePrice(ctx, live); err != nil {
		logging.ErrorWithError(ctx, "failed to persist live rate", err, nil)
	} else {
		result.Persisted = true
	}

	metrics.RecordMonitorTick(string(result.Outcome))
	return result
}

func (m *Monitor) isHeartbeat() bool {
	if m.cfg.HeartbeatModulo <= 0 {
		return false
	}
	return m.now().UTC().Hour()%m.cfg.HeartbeatModulo == 0
}

// notifyAll sends text to every recipient; one failure does not stop the rest
func (m *Monitor) notifyAll(ctx context.Context, text string) (sent, failed int) {
	for _, id := range m.cfg.Recipients {
		if err := m.notifier.Notify(ctx, id, text); err != nil {
			failed++
			metrics.RecordNotification(false)
			logging.ErrorWithError(ctx, "failed to notify recipient", err, logging.Fields{
				logging.FieldRecipient: id,
			})
			continue
		}
		sent++
		metrics.RecordNotification(true)
	}

	logging.Info(ctx, "movement notification sent", logging.Fields{
		"message": text,
		"sent":    sent,
		"failed":  failed,
	})
	return sent, failed
}
