// Package gateway orchestrates provider selection, health probing, and
// message dispatch over a set of unreliable free chat-completion backends.
//
// The gateway owns the health cache explicitly: there is no package-level
// state, and every dependency is injected. Backend instability is a steady
// state, not an exception, so failures become normal result values; the
// gateway never panics for a misbehaving provider.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chatrelay/pkg/backend"
	"chatrelay/pkg/health"
	"chatrelay/pkg/registry"
)

// ErrProviderNotFound is returned by TestProvider for ids absent from the
// registry. It is the only hard error the public operations produce for
// ordinary input.
var ErrProviderNotFound = errors.New("provider not found")

// probeMessage is the synthetic message sent to determine provider health.
const probeMessage = "test"

// notFoundMessage is the error text recorded when testing an unknown id.
const notFoundMessage = "Provider not found"

// Config assembles a Gateway. Registry, Cache, and Invoker are required;
// everything else has a default.
type Config struct {
	Registry *registry.Registry
	Cache    *health.Cache
	Invoker  backend.Invoker

	// Recorder receives probe audit records. Optional.
	Recorder Recorder

	// Metrics receives probe and chat observations. Optional.
	Metrics Metrics

	// TTL bounds how long a cached health entry satisfies reads.
	// Default: health.DefaultTTL (300s).
	TTL time.Duration

	// ProbeTimeout bounds health probes. Default: 10s.
	ProbeTimeout time.Duration

	// ChatTimeout bounds user message sends. Default: 30s.
	ChatTimeout time.Duration

	// DefaultModel is used when a request names no model.
	// Default: registry.DefaultModel.
	DefaultModel string

	// DefaultProvider is the id carrying sends with no resolved provider.
	// Default: the first catalog entry.
	DefaultProvider string

	// Now is the clock, injectable for tests. Default: time.Now.
	Now func() time.Time
}

// Gateway is the public entry point combining registry, health cache,
// backend invoker, and failure classification.
type Gateway struct {
	registry *registry.Registry
	cache    *health.Cache
	invoker  backend.Invoker
	recorder Recorder
	metrics  Metrics

	probeTimeout time.Duration
	chatTimeout  time.Duration
	defaultModel string
	defaultRec   registry.Record
	now          func() time.Time

	// ttl is guarded separately so configuration reloads can adjust it
	// while probes are in flight.
	ttlMu sync.RWMutex
	ttl   time.Duration
}

// New validates the configuration and builds a Gateway. A misassembled
// configuration is a programming error and fails hard at startup.
func New(cfg Config) (*Gateway, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("gateway: registry is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("gateway: health cache is required")
	}
	if cfg.Invoker == nil {
		return nil, fmt.Errorf("gateway: backend invoker is required")
	}
	if cfg.Registry.Len() == 0 {
		return nil, fmt.Errorf("gateway: registry catalog is empty")
	}

	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}
	if cfg.TTL == 0 {
		cfg.TTL = health.DefaultTTL
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = 10 * time.Second
	}
	if cfg.ChatTimeout == 0 {
		cfg.ChatTimeout = 30 * time.Second
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = registry.DefaultModel
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	defaultRec := cfg.Registry.List()[0]
	if cfg.DefaultProvider != "" {
		rec, ok := cfg.Registry.Resolve(cfg.DefaultProvider)
		if !ok {
			return nil, fmt.Errorf("gateway: default provider %q is not in the catalog", cfg.DefaultProvider)
		}
		defaultRec = rec
	}

	return &Gateway{
		registry:     cfg.Registry,
		cache:        cfg.Cache,
		invoker:      cfg.Invoker,
		recorder:     cfg.Recorder,
		metrics:      cfg.Metrics,
		ttl:          cfg.TTL,
		probeTimeout: cfg.ProbeTimeout,
		chatTimeout:  cfg.ChatTimeout,
		defaultModel: cfg.DefaultModel,
		defaultRec:   defaultRec,
		now:          cfg.Now,
	}, nil
}

// TTL returns the current cache TTL.
func (g *Gateway) TTL() time.Duration {
	g.ttlMu.RLock()
	defer g.ttlMu.RUnlock()
	return g.ttl
}

// SetTTL adjusts the cache TTL. Used by configuration hot reload.
func (g *Gateway) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	g.ttlMu.Lock()
	g.ttl = ttl
	g.ttlMu.Unlock()
}

// ListProviders returns the health of every cataloged provider, in catalog
// order. Fresh cache entries are returned as-is; stale or missing entries
// trigger a probe. Probes run independently: one provider failing, hanging,
// or rate-limiting never blocks or aborts the others.
func (g *Gateway) ListProviders(ctx context.Context) []health.Entry {
	records := g.registry.List()
	results := make([]health.Entry, len(records))

	ttl := g.TTL()
	now := g.now()

	var wg sync.WaitGroup
	for i, rec := range records {
		if entry, ok := g.cache.Get(rec.ID); ok && health.Fresh(entry, ttl, now) {
			results[i] = entry
			continue
		}

		wg.Add(1)
		go func(i int, rec registry.Record) {
			defer wg.Done()
			results[i] = g.probe(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	slog.Debug("listed providers", "count", len(results))
	return results
}

// TestProvider probes a single provider immediately, bypassing the TTL
// check: an explicit test is a user-triggered diagnostic, not passive
// discovery. Unknown ids yield an unavailable entry and ErrProviderNotFound;
// the entry is not cached.
func (g *Gateway) TestProvider(ctx context.Context, id string) (health.Entry, error) {
	rec, ok := g.registry.Resolve(id)
	if !ok {
		return health.Entry{
			ID:           id,
			Status:       health.StatusUnavailable,
			LastChecked:  g.now(),
			ErrorMessage: notFoundMessage,
		}, ErrProviderNotFound
	}

	return g.probe(ctx, rec), nil
}

// SendMessage forwards a user message to a provider and normalizes the
// outcome. It never consults or mutates the health cache: sending and health
// are independent paths, and a send failure does not demote cached health.
func (g *Gateway) SendMessage(ctx context.Context, req ChatRequest) ChatResult {
	rec := g.defaultRec
	if req.Provider != "" {
		if resolved, ok := g.registry.Resolve(req.Provider); ok {
			rec = resolved
		} else {
			// Unresolved ids degrade to "no provider selected" rather than
			// failing the call; the backend default carries it.
			slog.Debug("unknown provider id, using default",
				"requested", req.Provider,
				"default", rec.ID,
			)
		}
	}

	model := req.Model
	if model == "" {
		model = g.defaultModel
	}

	slog.Info("sending message",
		"provider", req.Provider,
		"resolved", rec.ID,
		"model", model,
	)

	text, err := g.invoker.Invoke(ctx, rec, model, req.Message, g.chatTimeout)
	result := ChatResult{
		Provider:  req.Provider,
		Timestamp: g.now(),
	}

	switch {
	case err != nil:
		result.Error = err.Error()
		slog.Error("message send failed",
			"provider", rec.ID,
			"model", model,
			"error", err,
		)
	case text == "":
		// Only a truly empty reply fails a send. Whitespace-only text is
		// still a delivered reply here; the stricter trimmed check belongs
		// to probes.
		result.Error = health.EmptyResponseMessage
	default:
		result.Success = true
		result.Message = text
	}

	g.metrics.ObserveChat(rec.ID, result.Success)
	return result
}

// probe performs a single health check, classifies it, caches the entry,
// and reports it to the recorder and metrics.
func (g *Gateway) probe(ctx context.Context, rec registry.Record) health.Entry {
	start := time.Now()
	text, err := g.invoker.Invoke(ctx, rec, rec.DefaultModel, probeMessage, g.probeTimeout)
	latency := time.Since(start)

	entry := health.Entry{
		ID:          rec.ID,
		Name:        rec.Name,
		Model:       rec.DefaultModel,
		LastChecked: g.now(),
	}

	switch {
	case err != nil:
		entry.Status = health.Classify(err.Error())
		entry.ErrorMessage = err.Error()
		slog.Warn("provider probe failed",
			"provider", rec.ID,
			"status", entry.Status.String(),
			"error", err,
			"latency_ms", latency.Milliseconds(),
		)
	case health.ClassifyResponse(text) == health.StatusUnavailable:
		entry.Status = health.StatusUnavailable
		entry.ErrorMessage = health.EmptyResponseMessage
	default:
		entry.Status = health.StatusAvailable
		slog.Debug("provider probe passed",
			"provider", rec.ID,
			"latency_ms", latency.Milliseconds(),
		)
	}

	g.cache.Put(rec.ID, entry)

	g.metrics.ObserveProbe(rec.ID, entry.Status, latency)
	g.recorder.RecordProbe(ProbeRecord{
		Provider:  rec.ID,
		Status:    entry.Status,
		Error:     entry.ErrorMessage,
		Latency:   latency,
		CheckedAt: entry.LastChecked,
	})

	return entry
}
