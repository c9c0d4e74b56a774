package services

import (
	"sync"
	"time"
)

// zoneCacheTTL bounds how long a resolved zone ID is trusted. Zones move
// between accounts rarely; an hour keeps steady-state monitor rounds off
// the zones API.
const zoneCacheTTL = time.Hour

type zoneEntry struct {
	zoneID    string
	expiresAt time.Time
}

// zoneCache is a small thread-safe map of domain name to resolved zone ID.
type zoneCache struct {
	mu    sync.RWMutex
	items map[string]zoneEntry
}

func newZoneCache() *zoneCache {
	return &zoneCache{items: make(map[string]zoneEntry)}
}

// get returns the cached zone ID for a domain. It returns ("", false) if the
// entry is missing or has already expired.
func (c *zoneCache) get(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[name]
	if !found {
		return "", false
	}
	if time.Now().After(item.expiresAt) {
		return "", false
	}
	return item.zoneID, true
}

// set stores a resolved zone ID for a domain.
func (c *zoneCache) set(name string, zoneID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[name] = zoneEntry{
		zoneID:    zoneID,
		expiresAt: time.Now().Add(zoneCacheTTL),
	}
}
