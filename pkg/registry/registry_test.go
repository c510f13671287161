package registry

import "testing"

func TestResolve_CaseInsensitive(t *testing.T) {
	r := New()

	tests := []struct {
		name   string
		id     string
		wantOK bool
		wantID string
	}{
		{name: "exact lowercase", id: "bing", wantOK: true, wantID: "bing"},
		{name: "uppercase", id: "BING", wantOK: true, wantID: "bing"},
		{name: "mixed case", id: "ChatgptAi", wantOK: true, wantID: "chatgptai"},
		{name: "surrounding whitespace", id: "  you  ", wantOK: true, wantID: "you"},
		{name: "unknown id", id: "nosuch", wantOK: false},
		{name: "empty id", id: "", wantOK: false},
		{name: "partial match rejected", id: "bin", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := r.Resolve(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if ok && rec.ID != tt.wantID {
				t.Errorf("Resolve(%q).ID = %q, want %q", tt.id, rec.ID, tt.wantID)
			}
		})
	}
}

func TestList_CatalogOrder(t *testing.T) {
	r := New()

	want := []string{"bing", "chatgptai", "freegpt", "liaobots", "you", "yqcloud"}
	records := r.List()

	if len(records) != len(want) {
		t.Fatalf("List() returned %d records, want %d", len(records), len(want))
	}
	for i, rec := range records {
		if rec.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, want %q", i, rec.ID, want[i])
		}
		if rec.DefaultModel != DefaultModel {
			t.Errorf("List()[%d].DefaultModel = %q, want %q", i, rec.DefaultModel, DefaultModel)
		}
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	r := New()

	records := r.List()
	records[0].ID = "mutated"

	fresh := r.List()
	if fresh[0].ID != "bing" {
		t.Errorf("mutating List() result leaked into registry: got %q", fresh[0].ID)
	}
}

func TestWithBaseURL(t *testing.T) {
	r := New(
		WithBaseURL("bing", "http://localhost:9001"),
		WithBaseURL("nosuch", "http://ignored.example.com"),
		WithBaseURL("you", ""),
	)

	rec, ok := r.Resolve("bing")
	if !ok {
		t.Fatal("Resolve(bing) failed")
	}
	if rec.BaseURL != "http://localhost:9001" {
		t.Errorf("BaseURL = %q, want override", rec.BaseURL)
	}

	// The override must be visible through List as well.
	if got := r.List()[0].BaseURL; got != "http://localhost:9001" {
		t.Errorf("List()[0].BaseURL = %q, want override", got)
	}

	// Empty override leaves the catalog default.
	you, _ := r.Resolve("you")
	if you.BaseURL == "" {
		t.Error("empty override cleared BaseURL")
	}

	if r.Len() != 6 {
		t.Errorf("Len() = %d, want 6 (overrides must not add providers)", r.Len())
	}
}
