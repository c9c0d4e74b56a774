package services

import (
	"testing"
	"time"
)

func TestZoneCache(t *testing.T) {
	c := newZoneCache()

	if _, ok := c.get("example.com"); ok {
		t.Error("Expected miss on empty cache")
	}

	c.set("example.com", "zone-1")
	id, ok := c.get("example.com")
	if !ok || id != "zone-1" {
		t.Errorf("Expected zone-1, got %q (ok=%v)", id, ok)
	}

	c.set("example.com", "zone-2")
	if id, _ := c.get("example.com"); id != "zone-2" {
		t.Errorf("Expected overwrite to zone-2, got %q", id)
	}
}

func TestZoneCacheExpiry(t *testing.T) {
	c := newZoneCache()
	c.items["example.com"] = zoneEntry{zoneID: "zone-1", expiresAt: time.Now().Add(-time.Second)}

	if _, ok := c.get("example.com"); ok {
		t.Error("Expected expired entry to miss")
	}
}
