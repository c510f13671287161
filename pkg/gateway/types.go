package gateway

import (
	"time"

	"chatrelay/pkg/health"
)

// ChatRequest is a single message to forward to a provider.
// It is created per call and never persisted.
type ChatRequest struct {
	// Message is the user message text. The gateway itself accepts empty
	// messages; requiring non-empty input is a transport concern.
	Message string `json:"message"`

	// Provider optionally names the provider to use. Empty means no provider
	// was selected and the configured default carries the call. A non-empty
	// id that resolves to nothing also degrades to the default: the caller's
	// choice is advisory, mirroring the upstream service.
	Provider string `json:"provider,omitempty"`

	// Model overrides the default model when non-empty.
	Model string `json:"model,omitempty"`
}

// ChatResult is the normalized outcome of a send. Exactly one of Message and
// Error is populated, keyed by Success.
type ChatResult struct {
	Success bool `json:"success"`

	// Message is the completion text on success.
	Message string `json:"message,omitempty"`

	// Error is the raw failure text, or the fixed empty-response message.
	Error string `json:"error,omitempty"`

	// Provider echoes the requested provider id, resolved or not.
	Provider string `json:"provider,omitempty"`

	// Timestamp is when the result was produced, rendered RFC3339.
	Timestamp time.Time `json:"timestamp"`
}

// ProbeRecord is an audit record of a single health probe.
type ProbeRecord struct {
	// Provider is the probed provider id.
	Provider string

	// Status is the classified probe outcome.
	Status health.Status

	// Error is the raw failure text, empty on success.
	Error string

	// Latency is how long the probe took.
	Latency time.Duration

	// CheckedAt is when the probe completed.
	CheckedAt time.Time
}

// Recorder receives probe outcomes for audit logging. Implementations must
// be safe for concurrent use and must not block on failure; recording is
// best-effort and never influences health decisions.
type Recorder interface {
	RecordProbe(rec ProbeRecord)
}

// Metrics receives gateway observations. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ObserveProbe(provider string, status health.Status, latency time.Duration)
	ObserveChat(provider string, success bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordProbe(ProbeRecord) {}

type nopMetrics struct{}

func (nopMetrics) ObserveProbe(string, health.Status, time.Duration) {}
func (nopMetrics) ObserveChat(string, bool)                          {}
