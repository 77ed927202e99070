package middleware

import (
	"btc-rate-monitor/internal/infrastructure/logging"
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"
)

const RequestIDHeader = "X-Request-ID"

// responseWriter captures the status code and size of a response
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack lets websocket upgrades pass through the wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying ResponseWriter does not support hijacking")
	}
	return hijacker.Hijack()
}

// RequestTracingMiddleware tags each request with an id and logs its outcome.
// An incoming X-Request-ID is reused.
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		startTime := time.Now()
		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)

		w.Header().Set(RequestIDHeader, requestID)

		wrapped := &responseWriter{ResponseWriter: w}
		remoteIP := getRemoteIP(r)

		logging.Debug(ctx, "HTTP request started", logging.Fields{
			logging.FieldMethod:   r.Method,
			logging.FieldPath:     r.URL.Path,
			logging.FieldRemoteIP: remoteIP,
			"user_agent":          r.UserAgent(),
		})

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		status := wrapped.statusCode
		if status == 0 {
			status = http.StatusOK
		}

		fields := logging.Fields{
			logging.FieldMethod:     r.Method,
			logging.FieldPath:       r.URL.Path,
			logging.FieldStatusCode: status,
			logging.FieldRemoteIP:   remoteIP,
			logging.FieldDuration:   logging.DurationMs(time.Since(startTime)),
			"response_size":         wrapped.written,
		}
		switch {
		case status >= 500:
			logging.Error(ctx, "HTTP request completed", fields)
		case status >= 400:
			logging.Warn(ctx, "HTTP request completed", fields)
		default:
			logging.Info(ctx, "HTTP request completed", fields)
		}
	})
}

// getRemoteIP extracts the client IP, honouring proxy headers
func getRemoteIP(r *http.Request) string {
	if xForwardedFor := r.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		return xForwardedFor
	}
	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}
	return r.RemoteAddr
}

// RecoveryMiddleware turns a handler panic into a 500 and a log entry
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.Error(r.Context(), "panic while serving request", logging.Fields{
					"panic":           rec,
					logging.FieldPath: r.URL.Path,
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"INTERNAL_ERROR","message":"Internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
