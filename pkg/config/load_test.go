package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("ListenAddress = %q, want default", cfg.Server.ListenAddress)
	}
	if cfg.Gateway.CacheTTL != 300*time.Second {
		t.Errorf("CacheTTL = %v, want 300s", cfg.Gateway.CacheTTL)
	}
	if cfg.Gateway.ProbeTimeout != 10*time.Second {
		t.Errorf("ProbeTimeout = %v, want 10s", cfg.Gateway.ProbeTimeout)
	}
	if cfg.Gateway.ChatTimeout != 30*time.Second {
		t.Errorf("ChatTimeout = %v, want 30s", cfg.Gateway.ChatTimeout)
	}
	if cfg.Gateway.DefaultModel != "gpt-3.5-turbo" {
		t.Errorf("DefaultModel = %q, want gpt-3.5-turbo", cfg.Gateway.DefaultModel)
	}
	if cfg.History.Enabled == nil || !*cfg.History.Enabled {
		t.Error("History.Enabled default should be true")
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q, want info/json",
			cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() with missing file: %v", err)
	}
	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("ListenAddress = %q, want default", cfg.Server.ListenAddress)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "0.0.0.0:8080"
gateway:
  cache_ttl: 60s
  default_provider: you
providers:
  bing:
    base_url: "http://localhost:9001"
telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:8080" {
		t.Errorf("ListenAddress = %q", cfg.Server.ListenAddress)
	}
	if cfg.Gateway.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.Gateway.CacheTTL)
	}
	if cfg.Gateway.DefaultProvider != "you" {
		t.Errorf("DefaultProvider = %q, want you", cfg.Gateway.DefaultProvider)
	}
	if cfg.Providers["bing"].BaseURL != "http://localhost:9001" {
		t.Errorf("bing base_url = %q", cfg.Providers["bing"].BaseURL)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
gateway:
  cache_ttl: 60s
`)

	t.Setenv("CHATRELAY_GATEWAY_CACHE_TTL", "90s")
	t.Setenv("CHATRELAY_SERVER_LISTEN_ADDRESS", "127.0.0.1:6001")
	t.Setenv("CHATRELAY_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Gateway.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, env override must win over file", cfg.Gateway.CacheTTL)
	}
	if cfg.Server.ListenAddress != "127.0.0.1:6001" {
		t.Errorf("ListenAddress = %q", cfg.Server.ListenAddress)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("logging level = %q", cfg.Telemetry.Logging.Level)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a mapping")

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "bad listen address",
			mutate:  func(cfg *Config) { cfg.Server.ListenAddress = "not-an-address" },
			wantErr: "listen_address",
		},
		{
			name:    "zero cache ttl",
			mutate:  func(cfg *Config) { cfg.Gateway.CacheTTL = 0 },
			wantErr: "cache_ttl",
		},
		{
			name:    "negative probe timeout",
			mutate:  func(cfg *Config) { cfg.Gateway.ProbeTimeout = -time.Second },
			wantErr: "probe_timeout",
		},
		{
			name: "write timeout below chat timeout",
			mutate: func(cfg *Config) {
				cfg.Server.WriteTimeout = 5 * time.Second
				cfg.Gateway.ChatTimeout = 30 * time.Second
			},
			wantErr: "write_timeout",
		},
		{
			name: "bad provider base url",
			mutate: func(cfg *Config) {
				cfg.Providers = map[string]ProviderConfig{"bing": {BaseURL: "ftp://nope"}}
			},
			wantErr: "base_url",
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *Config) { cfg.Telemetry.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() accepted invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}
