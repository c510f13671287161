package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate checks the configuration for errors that would make the service
// misbehave at runtime. It is called after defaults and overrides, so every
// field is expected to hold its final value.
func Validate(cfg *Config) error {
	var errs []string

	if _, _, err := net.SplitHostPort(cfg.Server.ListenAddress); err != nil {
		errs = append(errs, fmt.Sprintf("server.listen_address %q is not host:port: %v", cfg.Server.ListenAddress, err))
	}
	if cfg.Server.ReadTimeout < 0 {
		errs = append(errs, "server.read_timeout must not be negative")
	}
	if cfg.Server.WriteTimeout < 0 {
		errs = append(errs, "server.write_timeout must not be negative")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}

	if cfg.Gateway.CacheTTL <= 0 {
		errs = append(errs, "gateway.cache_ttl must be positive")
	}
	if cfg.Gateway.ProbeTimeout <= 0 {
		errs = append(errs, "gateway.probe_timeout must be positive")
	}
	if cfg.Gateway.ChatTimeout <= 0 {
		errs = append(errs, "gateway.chat_timeout must be positive")
	}
	if cfg.Server.WriteTimeout > 0 && cfg.Server.WriteTimeout < cfg.Gateway.ChatTimeout {
		errs = append(errs, fmt.Sprintf(
			"server.write_timeout (%s) must be at least gateway.chat_timeout (%s)",
			cfg.Server.WriteTimeout, cfg.Gateway.ChatTimeout))
	}

	for id, pc := range cfg.Providers {
		if pc.BaseURL != "" && !strings.HasPrefix(pc.BaseURL, "http://") && !strings.HasPrefix(pc.BaseURL, "https://") {
			errs = append(errs, fmt.Sprintf("providers.%s.base_url %q must start with http:// or https://", id, pc.BaseURL))
		}
	}

	if cfg.History.RetentionDays < 0 {
		errs = append(errs, "history.retention_days must not be negative")
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("telemetry.logging.level %q is not one of debug, info, warn, error", cfg.Telemetry.Logging.Level))
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("telemetry.logging.format %q is not one of json, text", cfg.Telemetry.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
