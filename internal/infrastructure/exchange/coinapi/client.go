// Package coinapi fetches the live BTC/USD exchange rate from CoinAPI.
package coinapi

import (
	"btc-rate-monitor/internal/domain/apperr"
	"btc-rate-monitor/internal/domain/entities"
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/config"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://rest.coinapi.io"
	APIKeyHeader   = "X-CoinAPI-Key"

	serviceName  = "coinapi"
	maxErrorBody = 4 << 10
)

var _ interfaces.RateFetcher = (*Client)(nil)

// StatusError is returned when CoinAPI answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client issues exactly one request per FetchRate call; it never retries.
// The underlying http.Client is shared across calls and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	base       string
	quote      string
	httpClient *http.Client
}

// NewClient builds a client from configuration. A zero timeout leaves the
// transport default in place.
func NewClient(cfg config.CoinAPIConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, quote := cfg.BaseAsset, cfg.QuoteAsset
	if base == "" {
		base = "BTC"
	}
	if quote == "" {
		quote = "USD"
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		base:       base,
		quote:      quote,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("/v1/exchangerate/%s/%s", c.base, c.quote)
}

// FetchRate performs one GET against the exchange-rate endpoint.
//
// Errors: a missing API key is KindConfig; transport failures, non-2xx
// statuses and unparsable bodies are KindFetch; a JSON body without time
// or rate is KindSerialization.
func (c *Client) FetchRate(ctx context.Context) (entities.ExchangeRate, error) {
	const op = "coinapi.FetchRate"

	if c.apiKey == "" {
		return entities.ExchangeRate{}, apperr.Config(op, errors.New("COIN_API_KEY is not set"))
	}

	endpoint := c.endpoint()
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entities.ExchangeRate{}, apperr.Fetch(op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	logging.Debug(ctx, "Making request to CoinAPI", logging.Fields{"url": url})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordExternalAPICall(serviceName, endpoint, 0, logging.DurationMs(duration))
		logging.ErrorWithError(ctx, "CoinAPI request failed", err, logging.Fields{
			"url":                 url,
			logging.FieldDuration: logging.DurationMs(duration),
		})
		return entities.ExchangeRate{}, apperr.Fetch(op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall(serviceName, endpoint, resp.StatusCode, logging.DurationMs(duration))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		logging.ErrorWithError(ctx, "CoinAPI returned non-success status", statusErr, logging.Fields{
			"url":                   url,
			logging.FieldStatusCode: resp.StatusCode,
		})
		return entities.ExchangeRate{}, apperr.Fetch(op, statusErr)
	}

	var body exchangeRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return entities.ExchangeRate{}, apperr.Fetch(op, fmt.Errorf("failed to decode response: %w", err))
	}

	rate, err := body.toEntity()
	if err != nil {
		return entities.ExchangeRate{}, apperr.Serialization(op, err)
	}

	logging.Info(ctx, "External request completed", logging.Fields{
		"service":               serviceName,
		logging.FieldStatusCode: resp.StatusCode,
		logging.FieldDuration:   logging.DurationMs(duration),
		logging.FieldRate:       rate.Rate,
		logging.FieldRateTime:   rate.Time,
	})

	return rate, nil
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var parsed errorResponse
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return ""
}
