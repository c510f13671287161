// Package backend performs the outbound completion calls to providers.
//
// It is the only package permitted to do network I/O. Every call is bounded
// by a caller-supplied timeout and attempted exactly once: retry policy, if
// any, belongs to callers.
package backend

import (
	"context"
	"time"

	"chatrelay/pkg/registry"
)

// Failure is a backend invocation failure carrying the raw error text from
// the attempted call. Timeouts are Failures like any other; they are not a
// distinct error path.
type Failure struct {
	// Provider is the id of the provider that was called.
	Provider string

	// Message is the raw error string, preserved verbatim for classification.
	Message string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Message
}

// Invoker sends a single message to a provider's completion endpoint.
type Invoker interface {
	// Invoke sends message to the provider under the given model and returns
	// the completion text. The call is bounded by timeout and attempted once.
	// Errors are *Failure values carrying the raw backend error text.
	Invoke(ctx context.Context, rec registry.Record, model, message string, timeout time.Duration) (string, error)
}
