package cache

import (
	"strings"
	"testing"
	"time"
)

func TestFileKey_ChangesWithModTime(t *testing.T) {
	now := time.Now()

	key1 := FileKey("product.json", now)
	key2 := FileKey("product.json", now)
	if key1 != key2 {
		t.Error("Expected deterministic key for same path and mtime")
	}

	key3 := FileKey("product.json", now.Add(time.Second))
	if key1 == key3 {
		t.Error("Expected different key after mtime change")
	}

	key4 := FileKey("other.json", now)
	if key1 == key4 {
		t.Error("Expected different key for different path")
	}

	if !strings.HasPrefix(key1, "provgate:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", key1)
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	c.Set("k", "v", time.Minute)
	value, found := c.Get("k")
	if !found || value != "v" {
		t.Errorf("Expected hit with %q, got %v/%v", "v", value, found)
	}

	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Clear()
	if _, found := c.Get("a"); found {
		t.Error("Expected miss after clear")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}
