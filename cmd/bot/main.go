// @title BTC Rate Monitor API
// @version 1.0
// @description Cached BTC/USD exchange rate and live movement alerts.
// @BasePath /
package main

import (
	"btc-rate-monitor/internal/application/monitor"
	"btc-rate-monitor/internal/application/services"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/config"
	"btc-rate-monitor/internal/infrastructure/exchange"
	"btc-rate-monitor/internal/infrastructure/exchange/coinapi"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"btc-rate-monitor/internal/infrastructure/notify"
	"btc-rate-monitor/internal/infrastructure/ratelimit"
	"btc-rate-monitor/internal/infrastructure/repositories/cache"
	"btc-rate-monitor/internal/infrastructure/web/handlers"
	"btc-rate-monitor/internal/infrastructure/web/server"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		logging.ErrorWithError(context.Background(), "btc-rate-monitor exited with error", err, nil)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := initLogging(cfg); err != nil {
		return err
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info(ctx, "Starting BTC rate monitor", logging.Fields{
		"version":       version,
		"cache_backend": cfg.Cache.Backend,
		"notify":        cfg.Notify.Backend,
		"recipients":    len(cfg.Notify.Recipients),
	})
	metrics.SetApplicationInfo(version, cfg.Cache.Backend)

	store, err := cache.Open(ctx, cache.Config{
		Backend: cache.Backend(cfg.Cache.Backend),
		Redis: cache.RedisConfig{
			Addr:            cfg.Cache.Redis.Addr,
			Password:        cfg.Cache.Redis.Password,
			DB:              cfg.Cache.Redis.DB,
			ConnectAttempts: cfg.Cache.Redis.ConnectAttempts,
			RetryDelay:      cfg.Cache.Redis.RetryDelay,
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	fetcher := newFetcher(cfg)
	prices := services.NewPriceCacheService(store, fetcher,
		services.WithCacheKey(cfg.Cache.Key),
		services.WithTTL(cfg.Cache.TTL),
	)

	feed := notify.NewAlertFeed()
	defer feed.Close()

	router := server.NewRouter(server.Routes{
		Price:      handlers.NewPriceHandler(prices),
		Health:     handlers.NewHealthHandler(store),
		Alerts:     feed,
		PriceLimit: ratelimit.NewMiddleware(cfg.RateLimit).Handler,
	})
	srv := server.NewServer(router, cfg.Server.Port)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Start(); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if cfg.Monitor.Enabled {
		m := monitor.New(fetcher, prices, newNotifier(cfg.Notify), monitor.Config{
			Interval:         cfg.Monitor.Interval,
			ThresholdPercent: cfg.Monitor.ThresholdPercent,
			HeartbeatModulo:  cfg.Monitor.HeartbeatModulo,
			Recipients:       cfg.Notify.Recipients,
		}, monitor.WithPublisher(feed))

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("monitor: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logging.Info(context.Background(), "Shutdown signal received", nil)
	case runErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(shutdownCtx, "Server forced to shutdown", err, nil)
	}
	feed.Close()

	wg.Wait()
	logging.Info(context.Background(), "Shutdown completed", nil)
	return runErr
}

func initLogging(cfg *config.Config) error {
	logCfg := logging.DefaultConfig().
		WithLevel(logging.LogLevelFromString(cfg.Logging.Level)).
		WithFormat(logging.LogFormatFromString(cfg.Logging.Format))
	logCfg.Version = version
	logCfg.Environment = cfg.Environment

	if err := logging.InitializeGlobalLogger(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

func newFetcher(cfg *config.Config) interfaces.RateFetcher {
	if cfg.Development.MockMode {
		logging.Warn(context.Background(), "mock mode enabled, rates are simulated", nil)
		return exchange.NewSimulatedFetcher()
	}
	return coinapi.NewClient(cfg.CoinAPI)
}

func newNotifier(cfg config.NotifyConfig) interfaces.Notifier {
	if strings.EqualFold(cfg.Backend, "log") {
		return notify.LogNotifier{}
	}
	return notify.NewTelegramNotifier(cfg.Telegram)
}
