// Package notify delivers movement messages to chat recipients and live subscribers.
package notify

import (
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/config"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultTelegramAPIURL = "https://api.telegram.org"

var _ interfaces.Notifier = (*TelegramNotifier)(nil)

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type botAPIResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// TelegramNotifier sends messages through the Bot API sendMessage method
type TelegramNotifier struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

// NewTelegramNotifier creates a notifier from configuration
func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultTelegramAPIURL
	}
	return &TelegramNotifier{
		apiURL:     apiURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Notify sends text to a single chat
func (t *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordExternalAPICall("telegram", "/sendMessage", 0, logging.DurationMs(duration))
		// the url embeds the token, keep it out of logs
		return fmt.Errorf("sendMessage to %d failed: %w", chatID, redact(err, t.token))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall("telegram", "/sendMessage", resp.StatusCode, logging.DurationMs(duration))

	var body botAPIResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || decodeErr != nil || !body.OK {
		desc := body.Description
		if desc == "" && decodeErr != nil {
			desc = decodeErr.Error()
		}
		return fmt.Errorf("sendMessage to %d rejected: HTTP %d: %s", chatID, resp.StatusCode, desc)
	}

	logging.Debug(ctx, "telegram message delivered", logging.Fields{
		logging.FieldRecipient: chatID,
		logging.FieldDuration:  logging.DurationMs(duration),
	})
	return nil
}

// redactedError hides the bot token in its text and keeps the chain for errors.Is/As
type redactedError struct {
	err   error
	token string
}

func (e *redactedError) Error() string {
	return strings.ReplaceAll(e.err.Error(), e.token, "<token>")
}

func (e *redactedError) Unwrap() error {
	return e.err
}

func redact(err error, token string) error {
	if token == "" || err == nil {
		return err
	}
	return &redactedError{err: err, token: token}
}
