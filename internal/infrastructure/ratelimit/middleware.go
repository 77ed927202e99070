// Package ratelimit throttles on-demand price requests per client so that a
// burst of cold-cache lookups cannot exhaust the price API quota.
package ratelimit

import (
	"btc-rate-monitor/internal/infrastructure/config"
	"btc-rate-monitor/internal/infrastructure/logging"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// Middleware rejects requests once a client's bucket is empty
type Middleware struct {
	limiter *Limiter
	enabled bool
}

// NewMiddleware builds the middleware from configuration
func NewMiddleware(cfg config.RateLimitConfig) *Middleware {
	return &Middleware{
		limiter: NewLimiter(cfg.Capacity, cfg.RefillRate),
		enabled: cfg.Enabled,
	}
}

// Handler wraps next with the rate limit
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		client := clientID(r)
		allowed, remaining := m.limiter.Allow(client)
		metrics.RecordRateLimitResult(allowed)

		if !allowed {
			logging.Warn(r.Context(), "Rate limit exceeded", logging.Fields{
				"client_id":         client,
				logging.FieldPath:   r.URL.Path,
				logging.FieldMethod: r.Method,
			})

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"RATE_LIMIT_EXCEEDED","message":"Rate limit exceeded. Please slow down your requests."}`))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}

// clientID keys buckets by the first forwarded address, else the peer IP
func clientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
