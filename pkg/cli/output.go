package cli

import (
	"encoding/json"
	"io"
)

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// JSONFormatter writes output as JSON, optionally indented.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// ProvidersEnvelope is the listing envelope shared with the HTTP API.
type ProvidersEnvelope struct {
	Success   bool `json:"success"`
	Providers any  `json:"providers"`
	Count     int  `json:"count"`
}

// ResultEnvelope wraps a single provider test result.
type ResultEnvelope struct {
	Success bool `json:"success"`
	Result  any  `json:"result"`
}

// ResponseEnvelope wraps a chat result.
type ResponseEnvelope struct {
	Success  bool `json:"success"`
	Response any  `json:"response"`
}

// FailureEnvelope is the generic failure shape.
type FailureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewFailure builds a failure envelope from an error.
func NewFailure(err error) FailureEnvelope {
	return FailureEnvelope{Success: false, Error: err.Error()}
}
