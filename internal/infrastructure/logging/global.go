package logging

import (
	"context"
	"fmt"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger Logger
)

// InitializeGlobalLogger replaces the package-level logger
func InitializeGlobalLogger(config *LoggerConfig) error {
	logger, err := NewStructuredLogger(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global logger: %w", err)
	}

	SetGlobalLogger(logger)
	return nil
}

// SetGlobalLogger installs an already built logger, mainly for tests
func SetGlobalLogger(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the package-level logger, creating a default one on first use
func GetGlobalLogger() Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()
	if logger != nil {
		return logger
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger, _ = NewStructuredLogger(DefaultConfig())
	}
	return globalLogger
}

// SetLogLevel updates the level of the global logger
func SetLogLevel(level LogLevel) {
	GetGlobalLogger().SetLevel(level)
}

func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Debug(ctx, message, fields)
}

func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Info(ctx, message, fields)
}

func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Warn(ctx, message, fields)
}

func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Error(ctx, message, fields)
}

func InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().InfoWithError(ctx, message, err, fields)
}

func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().WarnWithError(ctx, message, err, fields)
}

func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().ErrorWithError(ctx, message, err, fields)
}
