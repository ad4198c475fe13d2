package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetPut(t *testing.T) {
	c := New[string](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Put("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get(k) = %q, %v; want v, true", got, ok)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Put("k", 42)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("fresh entry should hit")
	}

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := New[string](0)
	c.Put("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Error("zero-TTL cache should never hit")
	}
}

func TestGetOrLoad(t *testing.T) {
	c := New[string](time.Minute)
	calls := 0
	load := func(context.Context) (string, error) {
		calls++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrLoad(context.Background(), "k", load)
		if err != nil {
			t.Fatal(err)
		}
		if got != "loaded" {
			t.Errorf("GetOrLoad = %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestGetOrLoadErrorNotCached(t *testing.T) {
	c := New[string](time.Minute)
	boom := errors.New("boom")
	calls := 0
	load := func(context.Context) (string, error) {
		calls++
		return "", boom
	}

	for i := 0; i < 2; i++ {
		if _, err := c.GetOrLoad(context.Background(), "k", load); !errors.Is(err, boom) {
			t.Fatalf("want boom, got %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("loader called %d times, want 2 (errors must not cache)", calls)
	}
}

func TestInvalidateAndClear(t *testing.T) {
	c := New[int](time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated entry should miss")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("other entry should survive")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d", c.Size())
	}
}
