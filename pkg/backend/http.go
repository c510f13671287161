package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chatrelay/pkg/registry"
)

const completionPath = "/v1/chat/completions"

// HTTPInvoker calls provider completion endpoints over HTTP using an
// OpenAI-style chat completion body. A single pooled client serves all
// providers; per-call deadlines come from the context, not the client.
type HTTPInvoker struct {
	client *http.Client
}

// HTTPConfig tunes the invoker's connection pool.
type HTTPConfig struct {
	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per provider host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool.
	IdleConnTimeout time.Duration
}

// NewHTTPInvoker creates an invoker with connection pooling.
func NewHTTPInvoker(cfg HTTPConfig) *HTTPInvoker {
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 20
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = 5
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPInvoker{
		client: &http.Client{Transport: transport},
	}
}

// completionRequest is the OpenAI-style request body shared by the free
// provider gateways.
type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionResponse is the subset of the response body this invoker reads.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Invoke sends a single user message to the provider's completion endpoint.
// All outcomes other than a decodable 2xx response are returned as *Failure
// with the raw error text; the caller classifies, this layer does not.
func (inv *HTTPInvoker) Invoke(ctx context.Context, rec registry.Record, model, message string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(completionRequest{
		Model: model,
		Messages: []completionMessage{
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", &Failure{Provider: rec.ID, Message: fmt.Sprintf("encode request: %v", err)}
	}

	url := strings.TrimRight(rec.BaseURL, "/") + completionPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &Failure{Provider: rec.ID, Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := inv.client.Do(req)
	if err != nil {
		slog.Debug("backend call failed",
			"provider", rec.ID,
			"model", model,
			"error", err,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return "", &Failure{Provider: rec.ID, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Failure{Provider: rec.ID, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Failure{Provider: rec.ID, Message: statusFailureMessage(resp.StatusCode, respBytes)}
	}

	var decoded completionResponse
	if err := json.Unmarshal(respBytes, &decoded); err != nil {
		return "", &Failure{Provider: rec.ID, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if decoded.Error != nil {
		return "", &Failure{Provider: rec.ID, Message: decoded.Error.Message}
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}

	slog.Debug("backend call completed",
		"provider", rec.ID,
		"model", model,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return decoded.Choices[0].Message.Content, nil
}

// statusFailureMessage builds the raw failure text for a non-2xx response.
// The body text is preserved so provider-supplied wording ("rate limit
// exceeded", etc.) stays visible to the classifier; a bare 429 without a
// body still carries a recognizable marker.
func statusFailureMessage(statusCode int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if statusCode == http.StatusTooManyRequests && text == "" {
		return fmt.Sprintf("status %d: too many requests", statusCode)
	}
	if text == "" {
		return fmt.Sprintf("status %d: %s", statusCode, http.StatusText(statusCode))
	}
	return fmt.Sprintf("status %d: %s", statusCode, text)
}
