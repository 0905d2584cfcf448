package cache

import (
	"testing"
	"time"
)

func TestLRUCache_GetSet(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get() on empty cache returned ok")
	}

	c.Set("a", "alpha")
	c.Set("b", "beta")

	if v, ok := c.Get("a"); !ok || v != "alpha" {
		t.Fatalf("Get(a) = %q, %v; want alpha, true", v, ok)
	}

	// "a" was just touched, so adding a third entry should evict "b".
	c.Set("c", "gamma")

	if _, ok := c.Get("b"); ok {
		t.Fatal("Get(b) returned ok after eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) missing after eviction of older entry")
	}
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
}

func TestLRUCache_SetExistingKey(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("k", 1)
	c.Set("k", 2)

	if c.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", c.Size())
	}
	if v, _ := c.Get("k"); v != 2 {
		t.Fatalf("Get(k) = %d, want 2", v)
	}
}

func TestLRUCache_Expiry(t *testing.T) {
	c := NewLRUCache[string](10, 10*time.Millisecond)

	c.Set("a", "alpha")
	c.Set("b", "beta")

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get(a) returned ok for expired entry")
	}

	if cleaned := c.CleanExpired(); cleaned != 1 {
		t.Fatalf("CleanExpired() = %d, want 1 (a was already dropped by Get)", cleaned)
	}
	if c.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", c.Size())
	}
}

func TestLRUCache_Delete(t *testing.T) {
	c := NewLRUCache[string](10, time.Minute)

	c.Set("a", "alpha")
	c.Delete("a")
	c.Delete("never-existed")

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get(a) returned ok after Delete")
	}
}

func TestManager_Cleanup(t *testing.T) {
	c := NewLRUCache[string](10, 5*time.Millisecond)
	c.Set("a", "alpha")

	m := NewManager()
	m.Register(c)
	m.StartCleanup(10 * time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	m.Stop()

	if c.Size() != 0 {
		t.Fatalf("Size() = %d after cleanup, want 0", c.Size())
	}
}
