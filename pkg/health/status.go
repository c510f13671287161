// Package health tracks the last-known availability of each provider.
//
// It owns the status enumeration, the TTL-bounded health cache, and the
// failure classification rules. Network probing itself lives elsewhere; this
// package only stores and interprets probe outcomes.
package health

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the closed set of provider availability states.
type Status int

const (
	// StatusUnknown is the state before any probe has run.
	StatusUnknown Status = iota

	// StatusAvailable means the last probe returned a non-empty response.
	StatusAvailable

	// StatusUnavailable means the last probe failed or returned blank text.
	StatusUnavailable

	// StatusRateLimited means the last probe failed with rate-limit signaling.
	StatusRateLimited
)

// statusStrings is the wire serialization table. Internal representation and
// wire representation are deliberately decoupled; this table is the only
// place they meet.
var statusStrings = map[Status]string{
	StatusUnknown:     "unknown",
	StatusAvailable:   "available",
	StatusUnavailable: "unavailable",
	StatusRateLimited: "rate_limited",
}

var statusValues = map[string]Status{
	"unknown":      StatusUnknown,
	"available":    StatusAvailable,
	"unavailable":  StatusUnavailable,
	"rate_limited": StatusRateLimited,
}

// String returns the lowercase wire form of the status.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// MarshalJSON renders the status as its lowercase string value.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a lowercase status string.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := statusValues[str]
	if !ok {
		return fmt.Errorf("unknown health status %q", str)
	}
	*s = v
	return nil
}

// ParseStatus converts a lowercase status string back into a Status.
func ParseStatus(str string) (Status, error) {
	v, ok := statusValues[str]
	if !ok {
		return StatusUnknown, fmt.Errorf("unknown health status %q", str)
	}
	return v, nil
}

// Entry is the cached health record for a single provider.
// Values are copied on read; no caller holds a mutable reference into the cache.
type Entry struct {
	// ID is the provider identifier this entry belongs to.
	ID string `json:"id"`

	// Name is the provider display name, carried for rendering.
	Name string `json:"name"`

	// Status is the classified outcome of the most recent probe.
	Status Status `json:"status"`

	// LastChecked is when the most recent probe completed.
	LastChecked time.Time `json:"last_checked"`

	// Model is the model the probe was issued against, when known.
	Model string `json:"model,omitempty"`

	// ErrorMessage carries the raw failure text of an unsuccessful probe.
	ErrorMessage string `json:"error_message,omitempty"`
}
