package logging

import (
	"context"
	"fmt"
	"time"

	"btc-rate-monitor/internal/domain/apperr"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging contract used across the service
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// StructuredLogger implements Logger on top of logrus
type StructuredLogger struct {
	config *LoggerConfig
	entry  *logrus.Entry
}

// NewStructuredLogger builds a logger from config, falling back to DefaultConfig
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	base := logrus.New()
	base.SetOutput(config.Output)
	base.SetLevel(toLogrusLevel(config.Level))

	switch config.Format {
	case FormatText:
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		})
	}

	entry := base.WithFields(logrus.Fields{
		"service":     config.Service,
		"version":     config.Version,
		"environment": config.Environment,
	})

	return &StructuredLogger{
		config: config,
		entry:  entry,
	}, nil
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (sl *StructuredLogger) with(ctx context.Context, fields Fields) *logrus.Entry {
	entry := sl.entry
	if requestID := GetRequestID(ctx); requestID != "" {
		entry = entry.WithField(FieldRequestID, requestID)
	}
	if startTime := GetStartTime(ctx); !startTime.IsZero() {
		if _, ok := fields[FieldDuration]; !ok {
			entry = entry.WithField(FieldDuration, DurationMs(time.Since(startTime)))
		}
	}
	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	return entry
}

func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.with(ctx, fields).Debug(message)
}

func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.with(ctx, fields).Info(message)
}

func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.with(ctx, fields).Warn(message)
}

func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.with(ctx, fields).Error(message)
}

func (sl *StructuredLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.with(ctx, enrichWithError(fields, err)).Info(message)
}

func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.with(ctx, enrichWithError(fields, err)).Warn(message)
}

func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.with(ctx, enrichWithError(fields, err)).Error(message)
}

// enrichWithError copies fields and adds the error text and its kind
func enrichWithError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}

	enriched := make(Fields, len(fields)+2)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched[FieldError] = err.Error()
	if kind := apperr.KindOf(err); kind != apperr.KindUnknown {
		enriched[FieldErrorKind] = kind.String()
	}
	return enriched
}

func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.config.Level = level
	sl.entry.Logger.SetLevel(toLogrusLevel(level))
}

func (sl *StructuredLogger) GetLevel() LogLevel {
	return sl.config.Level
}
