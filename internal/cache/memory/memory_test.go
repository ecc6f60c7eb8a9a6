package memory_test

import (
	"testing"
	"time"

	"github.com/jefer15/debt-management-back/internal/cache/memory"
)

func TestRoundTrip(t *testing.T) {
	c := memory.New(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache should miss")
	}

	c.Set("k", []byte("v"), time.Minute)
	b, ok := c.Get("k")
	if !ok || string(b) != "v" {
		t.Fatalf("Get = %q, %v", b, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("Get after Delete should miss")
	}
}

func TestExpiry(t *testing.T) {
	c := memory.New(time.Minute)
	c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry should miss")
	}
}
