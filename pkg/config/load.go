package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults, applies
// CHATRELAY_* environment variable overrides, and validates the result.
// A missing file is not an error: defaults plus environment apply.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// Run on defaults; the service is usable without a config file.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
// Variables use the format CHATRELAY_SECTION_FIELD and always take
// precedence over file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CHATRELAY_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("CHATRELAY_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("CHATRELAY_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	if val := os.Getenv("CHATRELAY_GATEWAY_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.CacheTTL = d
		}
	}
	if val := os.Getenv("CHATRELAY_GATEWAY_PROBE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.ProbeTimeout = d
		}
	}
	if val := os.Getenv("CHATRELAY_GATEWAY_CHAT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.ChatTimeout = d
		}
	}
	if val := os.Getenv("CHATRELAY_GATEWAY_DEFAULT_MODEL"); val != "" {
		cfg.Gateway.DefaultModel = val
	}
	if val := os.Getenv("CHATRELAY_GATEWAY_DEFAULT_PROVIDER"); val != "" {
		cfg.Gateway.DefaultProvider = val
	}

	if val := os.Getenv("CHATRELAY_HISTORY_ENABLED"); val != "" {
		cfg.History.Enabled = boolPtr(strings.EqualFold(val, "true") || val == "1")
	}
	if val := os.Getenv("CHATRELAY_HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}

	if val := os.Getenv("CHATRELAY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CHATRELAY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}
