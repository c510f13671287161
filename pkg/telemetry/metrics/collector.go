// Package metrics exposes Prometheus instrumentation for the gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"chatrelay/pkg/health"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false, all observation
	// methods are no-ops but the endpoint still serves an empty registry.
	Enabled bool

	// Namespace is the metric name prefix.
	Namespace string
}

// Collector registers and records all gateway metrics.
//
// Metrics:
//   - chatrelay_provider_health: current health by provider (1=available, 0=not)
//   - chatrelay_probe_duration_seconds: health probe latency
//   - chatrelay_probes_total: probe count by provider and resulting status
//   - chatrelay_chat_requests_total: chat sends by provider and outcome
type Collector struct {
	config   Config
	registry *prometheus.Registry

	providerHealth *prometheus.GaugeVec
	probeDuration  *prometheus.HistogramVec
	probes         *prometheus.CounterVec
	chatRequests   *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics with the
// given registry. A nil registry gets a fresh private one.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "chatrelay"
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		providerHealth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "provider_health",
				Help:      "Provider health status (1=available, 0=unavailable or rate limited)",
			},
			[]string{"provider"},
		),

		probeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "probe_duration_seconds",
				Help:      "Health probe latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"provider"},
		),

		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "probes_total",
				Help:      "Total health probes by provider and resulting status",
			},
			[]string{"provider", "status"},
		),

		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "chat_requests_total",
				Help:      "Total chat sends by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
	}

	registry.MustRegister(
		c.providerHealth,
		c.probeDuration,
		c.probes,
		c.chatRequests,
	)

	return c
}

// Registry returns the registry holding this collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveProbe records the outcome of a single health probe.
func (c *Collector) ObserveProbe(provider string, status health.Status, latency time.Duration) {
	if !c.config.Enabled {
		return
	}

	value := 0.0
	if status == health.StatusAvailable {
		value = 1.0
	}
	c.providerHealth.WithLabelValues(provider).Set(value)
	c.probeDuration.WithLabelValues(provider).Observe(latency.Seconds())
	c.probes.WithLabelValues(provider, status.String()).Inc()
}

// ObserveChat records the outcome of a chat send.
func (c *Collector) ObserveChat(provider string, success bool) {
	if !c.config.Enabled {
		return
	}

	outcome := "failure"
	if success {
		outcome = "success"
	}
	c.chatRequests.WithLabelValues(provider, outcome).Inc()
}
