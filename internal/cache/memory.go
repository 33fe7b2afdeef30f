package cache

import (
	"fmt"
	"sync"
	"time"
)

// MemoryCache is an in-process cache with per-item TTL and LRU eviction.
// It backs lookups that would otherwise re-read files or re-issue API calls
// within a single tool run.
type MemoryCache struct {
	items    map[string]*memoryItem
	mu       sync.RWMutex
	maxSize  int
	stopChan chan struct{}
	stopOnce sync.Once
}

type memoryItem struct {
	value      interface{}
	expiration time.Time
	accessed   time.Time
}

// NewMemoryCache creates a cache holding at most maxSize items.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1000
	}

	mc := &MemoryCache{
		items:    make(map[string]*memoryItem),
		maxSize:  maxSize,
		stopChan: make(chan struct{}),
	}

	go mc.cleanupLoop()

	return mc
}

// Get retrieves a value. Expired or missing keys return an error.
func (mc *MemoryCache) Get(key string) (interface{}, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, exists := mc.items[key]
	if !exists {
		return nil, fmt.Errorf("key not found: %s", key)
	}

	if time.Now().After(item.expiration) {
		delete(mc.items, key)
		return nil, fmt.Errorf("key expired: %s", key)
	}

	item.accessed = time.Now()
	return item.value, nil
}

// Set stores a value with the given TTL. A non-positive TTL defaults to an
// hour.
func (mc *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.items[key]; !exists && len(mc.items) >= mc.maxSize {
		mc.evictLRU()
	}

	if ttl <= 0 {
		ttl = time.Hour
	}

	mc.items[key] = &memoryItem{
		value:      value,
		expiration: time.Now().Add(ttl),
		accessed:   time.Now(),
	}
}

// Delete removes a key.
func (mc *MemoryCache) Delete(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.items, key)
}

// Exists reports whether a non-expired value is present.
func (mc *MemoryCache) Exists(key string) bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	item, exists := mc.items[key]
	if !exists {
		return false
	}
	return time.Now().Before(item.expiration)
}

// Size returns the current item count, expired items included.
func (mc *MemoryCache) Size() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return len(mc.items)
}

// Clear drops all items.
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.items = make(map[string]*memoryItem)
}

// Close stops the background cleanup goroutine.
func (mc *MemoryCache) Close() {
	mc.stopOnce.Do(func() {
		close(mc.stopChan)
	})
}

// evictLRU removes the least recently accessed item. Caller holds the lock.
func (mc *MemoryCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, item := range mc.items {
		if first || item.accessed.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.accessed
			first = false
		}
	}

	if oldestKey != "" {
		delete(mc.items, oldestKey)
	}
}

func (mc *MemoryCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopChan:
			return
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now()
	for key, item := range mc.items {
		if now.After(item.expiration) {
			delete(mc.items, key)
		}
	}
}
