package logging

import (
	"context"

	"github.com/google/uuid"
)

// GenerateRequestID returns a new random request id
func GenerateRequestID() string {
	return uuid.New().String()
}

// NewRequestContext attaches a fresh request id unless ctx already carries one
func NewRequestContext(ctx context.Context) context.Context {
	if GetRequestID(ctx) != "" {
		return ctx
	}
	return WithRequestID(ctx, GenerateRequestID())
}
