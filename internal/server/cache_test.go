package server

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func payloadOf(n int) *Payload {
	return &Payload{JSON: bytes.Repeat([]byte("x"), n)}
}

func TestCacheBasic(t *testing.T) {
	cache := NewPayloadCache(1024 * 1024)

	if stats := cache.Stats(); stats.Entries != 0 {
		t.Errorf("Expected empty cache, got %d entries", stats.Entries)
	}

	loadCount := 0
	p, err := cache.Get("v1/points", func() (*Payload, error) {
		loadCount++
		return &Payload{JSON: []byte(`{"a":1}`)}, nil
	})
	if err != nil {
		t.Fatalf("Failed to load payload: %v", err)
	}
	if string(p.JSON) != `{"a":1}` {
		t.Errorf("Unexpected payload %s", p.JSON)
	}

	p2, err := cache.Get("v1/points", func() (*Payload, error) {
		loadCount++
		return &Payload{JSON: []byte(`{"a":2}`)}, nil
	})
	if err != nil {
		t.Fatalf("Failed to get cached payload: %v", err)
	}
	if string(p2.JSON) != `{"a":1}` {
		t.Errorf("Expected cached payload, got %s", p2.JSON)
	}
	if loadCount != 1 {
		t.Errorf("Expected loader called once, got %d times", loadCount)
	}

	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %+v", stats)
	}
}

func TestCacheEviction(t *testing.T) {
	cache := NewPayloadCache(10 * 1024)

	for i := 0; i < 10; i++ {
		key := string(rune('A' + i))
		if _, err := cache.Get(key, func() (*Payload, error) { return payloadOf(2000), nil }); err != nil {
			t.Fatalf("Failed to add payload %s: %v", key, err)
		}
	}

	stats := cache.Stats()
	if stats.Entries >= 10 {
		t.Errorf("Expected eviction, but cache has %d entries", stats.Entries)
	}
	if stats.UsedBytes > stats.MaxBytes {
		t.Errorf("Cache exceeded max size: %d > %d", stats.UsedBytes, stats.MaxBytes)
	}

	// The most recent entry survives, the oldest does not
	loaded := false
	cache.Get("J", func() (*Payload, error) { loaded = true; return payloadOf(1), nil })
	if loaded {
		t.Error("Expected most recent entry to be cached")
	}
	cache.Get("A", func() (*Payload, error) { loaded = true; return payloadOf(1), nil })
	if !loaded {
		t.Error("Expected oldest entry to be evicted")
	}
}

func TestCacheLRUOrder(t *testing.T) {
	cache := NewPayloadCache(3 * (256 + 100))
	load := func() (*Payload, error) { return payloadOf(100), nil }

	cache.Get("A", load)
	cache.Get("B", load)
	cache.Get("C", load)
	cache.Get("A", load) // A is now most recent
	cache.Get("D", load) // evicts B

	reloaded := map[string]bool{}
	for _, key := range []string{"A", "C", "D", "B"} {
		cache.Get(key, func() (*Payload, error) {
			reloaded[key] = true
			return payloadOf(100), nil
		})
	}
	if reloaded["A"] || reloaded["C"] || reloaded["D"] {
		t.Errorf("Expected A, C and D cached, reloaded %v", reloaded)
	}
	if !reloaded["B"] {
		t.Error("Expected B evicted")
	}
}

func TestCacheTooLarge(t *testing.T) {
	cache := NewPayloadCache(1024)

	p, err := cache.Get("big", func() (*Payload, error) { return payloadOf(4096), nil })
	if err != nil {
		t.Fatalf("Expected oversize payload to be returned, got %v", err)
	}
	if len(p.JSON) != 4096 {
		t.Errorf("Expected 4096-byte payload, got %d", len(p.JSON))
	}
	if cache.Stats().Entries != 0 {
		t.Error("Expected oversize payload not to be cached")
	}
	if err := cache.Add("big", p); err == nil {
		t.Error("Expected Add to reject oversize payload")
	}
}

func TestCacheLoaderError(t *testing.T) {
	cache := NewPayloadCache(0)
	boom := errors.New("boom")

	if _, err := cache.Get("k", func() (*Payload, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped loader error, got %v", err)
	}
	if cache.Stats().Entries != 0 {
		t.Error("Expected failed load not to be cached")
	}
}

func TestCacheClearAndRemove(t *testing.T) {
	cache := NewPayloadCache(0)

	for i := 0; i < 5; i++ {
		cache.Add(string(rune('A'+i)), payloadOf(10))
	}
	if cache.Stats().Entries != 5 {
		t.Errorf("Expected 5 entries, got %d", cache.Stats().Entries)
	}

	cache.Remove("A")
	if cache.Stats().Entries != 4 {
		t.Errorf("Expected 4 entries after remove, got %d", cache.Stats().Entries)
	}

	cache.Clear()
	if stats := cache.Stats(); stats.Entries != 0 || stats.UsedBytes != 0 {
		t.Errorf("Expected empty cache after clear, got %+v", stats)
	}
}

func TestCacheGetDuringClear(t *testing.T) {
	cache := NewPayloadCache(0)
	keys := []string{"A", "B", "C", "D"}
	load := func() (*Payload, error) { return payloadOf(10), nil }

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; ; n++ {
				select {
				case <-stop:
					return
				default:
				}
				if _, err := cache.Get(keys[n%len(keys)], load); err != nil {
					t.Errorf("Unexpected error: %v", err)
					return
				}
			}
		}()
	}

	for i := 0; i < 20000; i++ {
		cache.Clear()
	}
	close(stop)
	wg.Wait()

	if err := checkLRU(cache); err != nil {
		t.Error(err)
	}
}

// checkLRU verifies the LRU list and the entry map hold the same entries.
func checkLRU(c *PayloadCache) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	walked := 0
	var used int64
	for e := c.lru.Front(); e != nil; e = e.Next() {
		walked++
		entry := e.Value.(*cacheEntry)
		if c.entries[entry.key] != entry {
			return fmt.Errorf("Expected list entry %q in the entry map", entry.key)
		}
		used += entry.size
		if walked > len(c.entries) {
			break
		}
	}
	if walked != c.lru.Len() || walked != len(c.entries) {
		return fmt.Errorf("Expected %d list elements, walked %d with Len() %d", len(c.entries), walked, c.lru.Len())
	}
	if used != c.usedBytes {
		return fmt.Errorf("Expected %d used bytes, got %d", used, c.usedBytes)
	}
	return nil
}
