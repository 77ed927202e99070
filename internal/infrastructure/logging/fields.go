package logging

import (
	"context"
	"time"
)

// Fields holds structured key/value pairs attached to a log entry
type Fields map[string]interface{}

// LogLevel is one of the supported severities
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Standard field names
const (
	FieldRequestID  = "request_id"
	FieldDomain     = "domain"
	FieldError      = "error"
	FieldErrorKind  = "error_kind"
	FieldDuration   = "duration_ms"
	FieldStatusCode = "status_code"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldRemoteIP   = "remote_ip"
)

// Cache and business fields
const (
	FieldCacheKey  = "cache_key"
	FieldCacheHit  = "cache_hit"
	FieldCacheTTL  = "cache_ttl_seconds"
	FieldRate      = "rate"
	FieldRateTime  = "rate_time"
	FieldPercent   = "percent_change"
	FieldRecipient = "recipient_id"
	FieldAttempt   = "attempt"
	FieldRemaining = "attempts_remaining"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	StartTimeKey contextKey = "start_time"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, StartTimeKey, startTime)
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func GetStartTime(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Time{}
	}
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}

// DurationMs converts a duration to fractional milliseconds for the duration_ms field
func DurationMs(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
