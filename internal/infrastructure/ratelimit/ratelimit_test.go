package ratelimit

import (
	"btc-rate-monitor/internal/infrastructure/config"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenRefill(t *testing.T) {
	now := time.Unix(1700000000, 0)
	limiter := NewLimiter(2, 1)
	limiter.now = func() time.Time { return now }

	allowed, remaining := limiter.Allow("a")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, _ = limiter.Allow("a")
	assert.True(t, allowed)

	allowed, _ = limiter.Allow("a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("b")
	assert.True(t, allowed, "buckets are per client")

	now = now.Add(1500 * time.Millisecond)
	allowed, _ = limiter.Allow("a")
	assert.True(t, allowed)
}

func TestLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Unix(1700000000, 0)
	limiter := NewLimiter(1, 1)
	limiter.now = func() time.Time { return now }
	limiter.lastCleanup = now

	limiter.Allow("idle")
	now = now.Add(31 * time.Minute)
	limiter.Allow("active")

	assert.Equal(t, 1, limiter.Clients())
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("rejects when exhausted", func(t *testing.T) {
		handler := NewMiddleware(config.RateLimitConfig{Enabled: true, Capacity: 1, RefillRate: 0.001}).Handler(next)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.Equal(t, "1", second.Header().Get("Retry-After"))
	})

	t.Run("disabled passes through", func(t *testing.T) {
		handler := NewMiddleware(config.RateLimitConfig{Enabled: false, Capacity: 0}).Handler(next)

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientID(req))

	req.Header.Set("X-Real-IP", "1.1.1.1")
	assert.Equal(t, "1.1.1.1", clientID(req))

	req.Header.Set("X-Forwarded-For", "2.2.2.2, 3.3.3.3")
	assert.Equal(t, "2.2.2.2", clientID(req))
}
