// Package config loads and validates the chatrelay configuration.
//
// Configuration comes from a YAML file with defaults applied for anything
// unset, then CHATRELAY_* environment variable overrides on top. A malformed
// configuration is a hard startup failure; the rest of the system assumes a
// validated Config.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Gateway contains provider gateway tunables: cache TTL, probe and chat
	// timeouts, and default provider/model selection.
	Gateway GatewayConfig `yaml:"gateway"`

	// Providers optionally overrides per-provider settings, keyed by
	// provider id. The provider id set itself is fixed in the catalog.
	Providers map[string]ProviderConfig `yaml:"providers"`

	// History configures the probe audit log.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:5001"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes. It must exceed the chat timeout or long sends are cut off.
	// Default: 60s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle limit. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// CORSEnabled controls whether cross-origin requests are allowed.
	// Default: true (the service is meant to sit behind browser frontends)
	CORSEnabled *bool `yaml:"cors_enabled"`
}

// GatewayConfig contains provider gateway tunables.
type GatewayConfig struct {
	// CacheTTL is the maximum age of a cached health entry. Default: 300s
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// ProbeTimeout bounds health probes. Default: 10s
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// ChatTimeout bounds user message sends. Default: 30s
	ChatTimeout time.Duration `yaml:"chat_timeout"`

	// DefaultModel is used when a request names no model.
	// Default: "gpt-3.5-turbo"
	DefaultModel string `yaml:"default_model"`

	// DefaultProvider carries sends with no resolved provider.
	// Default: first catalog entry.
	DefaultProvider string `yaml:"default_provider"`
}

// ProviderConfig overrides settings for a single cataloged provider.
type ProviderConfig struct {
	// BaseURL overrides the provider's endpoint base URL.
	BaseURL string `yaml:"base_url"`
}

// HistoryConfig configures the probe audit log.
type HistoryConfig struct {
	// Enabled controls whether probe outcomes are persisted. Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the SQLite database file path. Default: "data/history.db"
	Path string `yaml:"path"`

	// RetentionDays is how long probe records are kept. Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is the cron expression for retention pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is the output format: json or text. Default: json
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served. Default: true
	Enabled *bool `yaml:"enabled"`

	// Namespace prefixes all metric names. Default: "chatrelay"
	Namespace string `yaml:"namespace"`

	// Path is the metrics endpoint path. Default: "/metrics"
	Path string `yaml:"path"`
}
