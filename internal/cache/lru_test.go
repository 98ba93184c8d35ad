package cache

import (
	"testing"
)

func TestNewLRUCache(t *testing.T) {
	c := NewLRUCache(10)

	if c == nil {
		t.Fatal("expected cache to be created")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got length %d", c.Len())
	}
}

func TestLRUCache_SetAndGet(t *testing.T) {
	c := NewLRUCache(10)

	c.Set("key1", "value1")

	value, found := c.Get("key1")
	if !found {
		t.Error("expected to find key1")
	}
	if value != "value1" {
		t.Errorf("expected 'value1', got '%s'", value)
	}
}

func TestLRUCache_GetNotFound(t *testing.T) {
	c := NewLRUCache(10)

	_, found := c.Get("nonexistent")
	if found {
		t.Error("expected not to find nonexistent key")
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := NewLRUCache(10)

	c.Set("key1", "value1")
	c.Set("key1", "value2")

	value, _ := c.Get("key1")
	if value != "value2" {
		t.Errorf("expected 'value2', got '%s'", value)
	}
	if c.Len() != 1 {
		t.Errorf("expected length 1, got %d", c.Len())
	}
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache(2)

	c.Set("a", "1")
	c.Set("b", "2")

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")

	c.Set("c", "3")

	if _, found := c.Get("b"); found {
		t.Error("expected 'b' to be evicted")
	}
	if _, found := c.Get("a"); !found {
		t.Error("expected 'a' to survive")
	}
	if _, found := c.Get("c"); !found {
		t.Error("expected 'c' to be present")
	}
}

func TestLRUCache_Delete(t *testing.T) {
	c := NewLRUCache(10)

	c.Set("key1", "value1")
	c.Delete("key1")

	if _, found := c.Get("key1"); found {
		t.Error("expected key1 to be deleted")
	}
	if c.Len() != 0 {
		t.Errorf("expected length 0, got %d", c.Len())
	}
}

func TestLRUCache_DeleteNonexistent(t *testing.T) {
	c := NewLRUCache(10)

	// Must not panic.
	c.Delete("nonexistent")
}
