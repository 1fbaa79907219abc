package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestTimed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewTimedWithClock(5*time.Minute, clock)

	c.Set("key", []byte("value"))

	clock.Advance(time.Minute)
	if _, ok := c.Get("key"); !ok {
		t.Errorf("failed to get key that should not be expired")
	}

	clock.Advance(10 * time.Minute)
	if _, ok := c.Get("key"); ok {
		t.Errorf("succeeded in getting expired key")
	}

	// Expired keys are evicted, not resurrected by the clock moving on.
	if _, ok := c.Get("key"); ok {
		t.Errorf("succeeded in getting key that was previously evicted")
	}
}

func TestTimedOverwrite(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewTimedWithClock(5*time.Minute, clock)

	c.Set("key", []byte("old"))
	clock.Advance(4 * time.Minute)
	c.Set("key", []byte("new"))
	clock.Advance(4 * time.Minute)

	// The rewrite refreshed the creation time.
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("failed to get refreshed key")
	}
	if string(got) != "new" {
		t.Errorf("got %q, wanted %q", got, "new")
	}
}
