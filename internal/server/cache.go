package server

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// Payload is an encoded layer snapshot, kept both plain and zstd-compressed.
type Payload struct {
	JSON []byte
	Zstd []byte
}

// size estimates the memory held by the payload.
func (p *Payload) size() int64 {
	if p == nil {
		return 0
	}
	// Base overhead of the entry and its slice headers
	return 256 + int64(len(p.JSON)) + int64(len(p.Zstd))
}

// PayloadCache keeps encoded layer snapshots with LRU eviction.
//
// Keys encode everything a snapshot depends on (layer version, layer kind
// and, for viewport-dependent snapshots, the viewport), so entries never need
// invalidation; stale ones simply age out.
//
// Example:
//
//	cache := NewPayloadCache(64 * 1024 * 1024) // 64MB
//
//	payload, err := cache.Get(key, func() (*Payload, error) {
//	    return encode(layer.GeoJSON(false))
//	})
type PayloadCache struct {
	maxBytes  int64 // Maximum size in bytes, 0 for unlimited
	usedBytes int64
	entries   map[string]*cacheEntry
	lru       *list.List // Most recent at front
	mu        sync.RWMutex

	hits   int
	misses int
}

type cacheEntry struct {
	key          string
	payload      *Payload
	size         int64
	element      *list.Element
	lastAccessed time.Time
	accessCount  int
}

// NewPayloadCache creates a cache bounded to maxBytes. Zero means unlimited.
func NewPayloadCache(maxBytes int64) *PayloadCache {
	return &PayloadCache{
		maxBytes: maxBytes,
		entries:  make(map[string]*cacheEntry),
		lru:      list.New(),
	}
}

// Get returns the payload for key, calling loader on a miss.
//
// A payload too large for the cache is returned without being cached.
func (c *PayloadCache) Get(key string, loader func() (*Payload, error)) (*Payload, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.mu.Lock()
		// The entry may have been removed or cleared since RUnlock
		if c.entries[key] == entry {
			entry.lastAccessed = time.Now()
			entry.accessCount++
			c.lru.MoveToFront(entry.element)
			c.hits++
			c.mu.Unlock()
			return entry.payload, nil
		}
		c.mu.Unlock()
	}

	payload, err := loader()
	if err != nil {
		return nil, fmt.Errorf("load payload: %w", err)
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	// Too large to cache, but still usable
	_ = c.Add(key, payload)
	return payload, nil
}

// Add stores payload under key, evicting least-recently-used entries to make
// room. Returns an error if the payload exceeds the cache size.
func (c *PayloadCache) Add(key string, payload *Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := payload.size()

	if entry, ok := c.entries[key]; ok {
		c.usedBytes += size - entry.size
		entry.payload = payload
		entry.size = size
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.evictOver(entry)
		return nil
	}

	if c.maxBytes > 0 && size > c.maxBytes {
		return fmt.Errorf("payload too large for cache (%d bytes > %d bytes max)", size, c.maxBytes)
	}

	if c.maxBytes > 0 {
		for c.usedBytes+size > c.maxBytes && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		key:          key,
		payload:      payload,
		size:         size,
		lastAccessed: time.Now(),
		accessCount:  1,
	}
	entry.element = c.lru.PushFront(entry)
	c.entries[key] = entry
	c.usedBytes += size

	return nil
}

// evictOver evicts entries other than keep while over the limit.
// Must be called with c.mu locked.
func (c *PayloadCache) evictOver(keep *cacheEntry) {
	if c.maxBytes <= 0 {
		return
	}
	for c.usedBytes > c.maxBytes && c.lru.Len() > 1 {
		if c.lru.Back().Value.(*cacheEntry) == keep {
			return
		}
		c.evictLRU()
	}
}

// evictLRU removes the least recently used entry.
// Must be called with c.mu locked.
func (c *PayloadCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}

	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.entries, entry.key)
	c.usedBytes -= entry.size
}

// Remove drops key from the cache.
func (c *PayloadCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.lru.Remove(entry.element)
		delete(c.entries, key)
		c.usedBytes -= entry.size
	}
}

// Clear removes all entries.
func (c *PayloadCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedBytes = 0
}

// Stats returns cache statistics.
func (c *PayloadCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		Entries:   len(c.entries),
		UsedBytes: c.usedBytes,
		MaxBytes:  c.maxBytes,
		Hits:      c.hits,
		Misses:    c.misses,
	}
}

// CacheStats holds cache metrics.
type CacheStats struct {
	Entries   int   `json:"entries"`
	UsedBytes int64 `json:"used_bytes"`
	MaxBytes  int64 `json:"max_bytes"`
	Hits      int   `json:"hits"`
	Misses    int   `json:"misses"`
}
