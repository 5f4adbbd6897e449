// Package cache provides the bounded in-memory metadata cache shared between
// the background resolver and foreground reads. Eviction is FIFO: once
// capacity is exceeded the oldest-inserted key is removed. Entries carry no
// TTL; they live until evicted or the process exits.
package cache

import (
	"sync"

	"github.com/streamscribe/streamscribe/internal/model"
)

// Cache is a mutex-guarded URL -> VideoInfo store with FIFO eviction.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*model.VideoInfo
	order    []string // insertion order, oldest first
}

// New creates a cache with the given capacity. Capacity below 1 is clamped
// to 1.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*model.VideoInfo, capacity),
	}
}

// Get returns the cached record for a URL, if present.
func (c *Cache) Get(url string) (*model.VideoInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.entries[url]
	return info, ok
}

// Put inserts or overwrites a record. Overwriting does not refresh the key's
// eviction position. When size exceeds capacity the single oldest-inserted
// key is removed.
func (c *Cache) Put(url string, info *model.VideoInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[url]; !exists {
		c.order = append(c.order, url)
	}
	c.entries[url] = info

	if len(c.entries) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes every record.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*model.VideoInfo, c.capacity)
	c.order = nil
}
