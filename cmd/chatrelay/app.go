package main

import (
	"fmt"

	"chatrelay/pkg/backend"
	"chatrelay/pkg/config"
	"chatrelay/pkg/gateway"
	"chatrelay/pkg/health"
	"chatrelay/pkg/history"
	"chatrelay/pkg/registry"
	"chatrelay/pkg/telemetry/logging"
)

// app bundles the wired components a command needs.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	gateway *gateway.Gateway
	store   *history.Store
}

// close releases resources held by the app.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// loadApp loads configuration, installs logging, and wires the gateway.
// When withHistory is true and the audit log is enabled, probe outcomes
// are recorded to SQLite.
func loadApp(withHistory bool, extra ...gateway.Metrics) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault()

	a := &app{cfg: cfg, logger: logger}

	var opts []registry.Option
	for id, pc := range cfg.Providers {
		if pc.BaseURL != "" {
			opts = append(opts, registry.WithBaseURL(id, pc.BaseURL))
		}
	}

	gwCfg := gateway.Config{
		Registry:        registry.New(opts...),
		Cache:           health.NewCache(),
		Invoker:         backend.NewHTTPInvoker(backend.HTTPConfig{}),
		TTL:             cfg.Gateway.CacheTTL,
		ProbeTimeout:    cfg.Gateway.ProbeTimeout,
		ChatTimeout:     cfg.Gateway.ChatTimeout,
		DefaultModel:    cfg.Gateway.DefaultModel,
		DefaultProvider: cfg.Gateway.DefaultProvider,
	}
	if len(extra) > 0 {
		gwCfg.Metrics = extra[0]
	}

	if withHistory && cfg.History.Enabled != nil && *cfg.History.Enabled {
		store, err := history.NewStore(&history.StoreConfig{Path: cfg.History.Path})
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		a.store = store
		gwCfg.Recorder = store
	}

	gw, err := gateway.New(gwCfg)
	if err != nil {
		a.close()
		return nil, err
	}
	a.gateway = gw

	return a, nil
}
