package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:5001"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	// Gateway defaults
	DefaultCacheTTL        = 300 * time.Second
	DefaultProbeTimeout    = 10 * time.Second
	DefaultChatTimeout     = 30 * time.Second
	DefaultModel           = "gpt-3.5-turbo"

	// History defaults
	DefaultHistoryPath       = "data/history.db"
	DefaultRetentionDays     = 30
	DefaultPruneSchedule     = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsNamespace = "chatrelay"
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults fills in default values for any unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.CORSEnabled == nil {
		cfg.Server.CORSEnabled = boolPtr(true)
	}

	if cfg.Gateway.CacheTTL == 0 {
		cfg.Gateway.CacheTTL = DefaultCacheTTL
	}
	if cfg.Gateway.ProbeTimeout == 0 {
		cfg.Gateway.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Gateway.ChatTimeout == 0 {
		cfg.Gateway.ChatTimeout = DefaultChatTimeout
	}
	if cfg.Gateway.DefaultModel == "" {
		cfg.Gateway.DefaultModel = DefaultModel
	}

	if cfg.History.Enabled == nil {
		cfg.History.Enabled = boolPtr(true)
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultRetentionDays
	}
	if cfg.History.PruneSchedule == "" {
		cfg.History.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Enabled == nil {
		cfg.Telemetry.Metrics.Enabled = boolPtr(true)
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func boolPtr(b bool) *bool {
	return &b
}
