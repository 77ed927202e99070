package notify

import (
	"btc-rate-monitor/internal/infrastructure/config"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotifier_SendsMessage(t *testing.T) {
	var got sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	notifier := NewTelegramNotifier(config.TelegramConfig{APIURL: server.URL + "/", Token: "123:abc"})

	require.NoError(t, notifier.Notify(context.Background(), -100200, "BTC now at $52000, 4.00% up"))
	assert.Equal(t, int64(-100200), got.ChatID)
	assert.Equal(t, "BTC now at $52000, 4.00% up", got.Text)
}

func TestTelegramNotifier_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{name: "chat not found", status: http.StatusBadRequest, body: `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, contains: "chat not found"},
		{name: "ok false on 200", status: http.StatusOK, body: `{"ok":false,"description":"Forbidden"}`, contains: "Forbidden"},
		{name: "garbage body", status: http.StatusBadGateway, body: `<html>`, contains: "HTTP 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewTelegramNotifier(config.TelegramConfig{APIURL: server.URL, Token: "t"}).Notify(context.Background(), 1, "hi")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestTelegramNotifier_TransportErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewTelegramNotifier(config.TelegramConfig{APIURL: url, Token: "secret-token"}).Notify(context.Background(), 1, "hi")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestTelegramNotifier_RedactedErrorKeepsChain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTelegramNotifier(config.TelegramConfig{APIURL: server.URL, Token: "secret-token"}).Notify(ctx, 1, "hi")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
	assert.Contains(t, err.Error(), "<token>")
	assert.ErrorIs(t, err, context.Canceled)

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
}

func TestRedact(t *testing.T) {
	cause := errors.New("dial https://host/botabc/sendMessage: refused")

	assert.Nil(t, redact(nil, "abc"))
	assert.Same(t, cause, redact(cause, ""))

	err := redact(cause, "abc")
	assert.Equal(t, "dial https://host/bot<token>/sendMessage: refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), 1, "hi"))
}
