package health

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_GetPut(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.Get("bing"); ok {
		t.Error("Get() on empty cache returned an entry")
	}

	entry := Entry{
		ID:          "bing",
		Name:        "Bing",
		Status:      StatusAvailable,
		LastChecked: time.Now(),
	}
	cache.Put("bing", entry)

	got, ok := cache.Get("bing")
	if !ok {
		t.Fatal("Get() returned false after Put()")
	}
	if got.Status != StatusAvailable {
		t.Errorf("Status = %v, want %v", got.Status, StatusAvailable)
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}
}

func TestCache_LastWriteWins(t *testing.T) {
	cache := NewCache()

	first := Entry{ID: "you", Status: StatusAvailable, LastChecked: time.Now()}
	second := Entry{ID: "you", Status: StatusRateLimited, LastChecked: time.Now().Add(time.Second)}

	cache.Put("you", first)
	cache.Put("you", second)

	got, _ := cache.Get("you")
	if got.Status != StatusRateLimited {
		t.Errorf("Status = %v, want last written %v", got.Status, StatusRateLimited)
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1 (overwrite, not append)", cache.Size())
	}
}

func TestCache_ReadersGetCopies(t *testing.T) {
	cache := NewCache()
	cache.Put("bing", Entry{ID: "bing", Status: StatusAvailable})

	got, _ := cache.Get("bing")
	got.Status = StatusUnavailable
	got.ErrorMessage = "mutated"

	fresh, _ := cache.Get("bing")
	if fresh.Status != StatusAvailable || fresh.ErrorMessage != "" {
		t.Error("mutating a read entry leaked into the cache")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache()
	providers := []string{"bing", "chatgptai", "freegpt", "liaobots", "you", "yqcloud"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			id := providers[i%len(providers)]
			cache.Put(id, Entry{
				ID:          id,
				Status:      StatusAvailable,
				LastChecked: time.Now(),
			})
		}(i)
		go func(i int) {
			defer wg.Done()
			cache.Get(providers[i%len(providers)])
		}(i)
	}
	wg.Wait()

	if cache.Size() > len(providers) {
		t.Errorf("Size() = %d, want at most %d", cache.Size(), len(providers))
	}
}

func TestFresh(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		checked time.Time
		ttl     time.Duration
		want    bool
	}{
		{name: "just checked", checked: now, ttl: 300 * time.Second, want: true},
		{name: "inside window", checked: now.Add(-299 * time.Second), ttl: 300 * time.Second, want: true},
		{name: "exactly at ttl", checked: now.Add(-300 * time.Second), ttl: 300 * time.Second, want: false},
		{name: "past ttl", checked: now.Add(-time.Hour), ttl: 300 * time.Second, want: false},
		{name: "zero ttl", checked: now, ttl: 0, want: false},
		{name: "negative ttl", checked: now, ttl: -time.Second, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Entry{LastChecked: tt.checked}
			if got := Fresh(entry, tt.ttl, now); got != tt.want {
				t.Errorf("Fresh(checked=%v, ttl=%v) = %v, want %v", tt.checked, tt.ttl, got, tt.want)
			}
		})
	}
}

func TestStatus_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		status Status
		wire   string
	}{
		{StatusUnknown, `"unknown"`},
		{StatusAvailable, `"available"`},
		{StatusUnavailable, `"unavailable"`},
		{StatusRateLimited, `"rate_limited"`},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			data, err := tt.status.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error: %v", err)
			}
			if string(data) != tt.wire {
				t.Errorf("MarshalJSON() = %s, want %s", data, tt.wire)
			}

			var parsed Status
			if err := parsed.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON(%s) error: %v", data, err)
			}
			if parsed != tt.status {
				t.Errorf("round trip = %v, want %v", parsed, tt.status)
			}
		})
	}

	var s Status
	if err := s.UnmarshalJSON([]byte(`"degraded"`)); err == nil {
		t.Error("UnmarshalJSON accepted a status outside the closed set")
	}
}

func BenchmarkCache_Get(b *testing.B) {
	cache := NewCache()
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("provider-%d", i)
		cache.Put(id, Entry{ID: id, Status: StatusAvailable, LastChecked: time.Now()})
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			cache.Get("provider-3")
		}
	})
}
