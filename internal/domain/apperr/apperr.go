// Package apperr holds the closed set of failure kinds that cross component
// boundaries: store connection, store operation, price fetch, serialization
// and configuration.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies where a failure originated
type Kind int

const (
	KindUnknown Kind = iota
	// KindConnection: the cache store stayed unreachable after every connect attempt. Fatal at startup.
	KindConnection
	// KindStore: a cache operation failed on an established connection.
	KindStore
	// KindFetch: the price API could not be reached or answered with a non-2xx status.
	KindFetch
	// KindSerialization: a cached payload or an API payload had an unexpected shape.
	KindSerialization
	// KindConfig: a required configuration value is missing or invalid. Fatal.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindStore:
		return "store"
	case KindFetch:
		return "fetch"
	case KindSerialization:
		return "serialization"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error carries the kind, the operation that failed and the underlying cause
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind and the name of the failing operation
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Connection(op string, err error) *Error    { return New(KindConnection, op, err) }
func Store(op string, err error) *Error         { return New(KindStore, op, err) }
func Fetch(op string, err error) *Error         { return New(KindFetch, op, err) }
func Serialization(op string, err error) *Error { return New(KindSerialization, op, err) }
func Config(op string, err error) *Error        { return New(KindConfig, op, err) }

// KindOf returns the kind of the outermost *Error in the chain
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
