package docker

import (
	"sync"
	"time"

	"github.com/docker/docker/api/types"
)

// inspectCache shares inspect results between the checks of one cycle.
// Entries expire after a fixed TTL and are cleaned up lazily on read.
type inspectCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	inspect   types.ContainerJSON
	expiresAt time.Time
}

func newInspectCache(ttl time.Duration) *inspectCache {
	return &inspectCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

// get returns a cached inspect result. Returns (zero, false) on miss or expiry.
func (c *inspectCache) get(name string) (types.ContainerJSON, bool) {
	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()

	if !ok {
		return types.ContainerJSON{}, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, name)
		c.mu.Unlock()
		return types.ContainerJSON{}, false
	}

	return entry.inspect, true
}

func (c *inspectCache) set(name string, inspect types.ContainerJSON) {
	c.mu.Lock()
	c.entries[name] = &cacheEntry{
		inspect:   inspect,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}
