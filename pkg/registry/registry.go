// Package registry holds the static catalog of chat-completion providers.
//
// The catalog is hand-maintained: adding a provider means adding a row to the
// table below, not accepting user input. Records are immutable after
// construction and safe for concurrent reads.
package registry

import "strings"

// Record describes a single provider in the catalog.
type Record struct {
	// ID is the stable, lowercase provider identifier (e.g. "bing").
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// DefaultModel is the model used when a request does not name one.
	DefaultModel string `json:"default_model"`

	// BaseURL is the provider's completion endpoint base URL.
	BaseURL string `json:"-"`
}

// DefaultModel is the model assumed for every cataloged provider unless a
// request overrides it.
const DefaultModel = "gpt-3.5-turbo"

// catalog is the fixed provider table. Order is significant: listings are
// always rendered in this order.
var catalog = []Record{
	{ID: "bing", Name: "Bing", DefaultModel: DefaultModel, BaseURL: "https://gateway.bing.example.com"},
	{ID: "chatgptai", Name: "ChatgptAi", DefaultModel: DefaultModel, BaseURL: "https://gateway.chatgptai.example.com"},
	{ID: "freegpt", Name: "FreeGpt", DefaultModel: DefaultModel, BaseURL: "https://gateway.freegpt.example.com"},
	{ID: "liaobots", Name: "Liaobots", DefaultModel: DefaultModel, BaseURL: "https://gateway.liaobots.example.com"},
	{ID: "you", Name: "You", DefaultModel: DefaultModel, BaseURL: "https://gateway.you.example.com"},
	{ID: "yqcloud", Name: "Yqcloud", DefaultModel: DefaultModel, BaseURL: "https://gateway.yqcloud.example.com"},
}

// Registry resolves provider identifiers against the static catalog.
type Registry struct {
	records []Record
	byID    map[string]Record
}

// Option customizes registry construction.
type Option func(*Registry)

// WithBaseURL overrides the endpoint base URL for a cataloged provider.
// Unknown ids are ignored; the id set itself never changes.
func WithBaseURL(id, baseURL string) Option {
	return func(r *Registry) {
		key := normalize(id)
		rec, ok := r.byID[key]
		if !ok || baseURL == "" {
			return
		}
		rec.BaseURL = baseURL
		r.byID[key] = rec
		for i := range r.records {
			if r.records[i].ID == key {
				r.records[i] = rec
			}
		}
	}
}

// New builds a registry from the static catalog, applying any overrides.
func New(opts ...Option) *Registry {
	r := &Registry{
		records: make([]Record, len(catalog)),
		byID:    make(map[string]Record, len(catalog)),
	}
	copy(r.records, catalog)
	for _, rec := range r.records {
		r.byID[rec.ID] = rec
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up a provider by id. The match is case-insensitive and exact;
// there is no fuzzy or prefix matching.
func (r *Registry) Resolve(id string) (Record, bool) {
	rec, ok := r.byID[normalize(id)]
	return rec, ok
}

// List returns all records in catalog order. The returned slice is a copy.
func (r *Registry) List() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of cataloged providers.
func (r *Registry) Len() int {
	return len(r.records)
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
