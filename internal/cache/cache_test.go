package cache

import (
	"testing"
	"time"
)

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	if _, ok := c.Get("nope"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("Storm warning", "风暴警告")

	got, ok := c.Get("Storm warning")
	if !ok {
		t.Fatalf("expected hit after Set")
	}
	if got != "风暴警告" {
		t.Fatalf("unexpected value: %q", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", c.Len())
	}
}

func TestExpiredEntryIsEvicted(t *testing.T) {
	t.Parallel()

	c := New(time.Millisecond)
	c.Set("k", "v")
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, have %d", c.Len())
	}
}
