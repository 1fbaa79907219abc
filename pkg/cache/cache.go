// Package cache holds fetched upstream payloads (catalog searches, buoy
// archives) for a while so the dashboard does not hammer external services.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timed is a cache that invalidates elements on a timer basis. It is safe
// for concurrent use.
type Timed struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu    sync.Mutex
	cache map[string]element
}

// element holds a timestamped value to save.
type element struct {
	value    []byte
	creation time.Time
}

// NewTimed creates a new Timed cache where elements will be invalidated
// after a time in cache corresponding to TTL.
func NewTimed(ttl time.Duration) *Timed {
	return NewTimedWithClock(ttl, clockwork.NewRealClock())
}

// NewTimedWithClock is NewTimed with the wall clock factored out.
func NewTimedWithClock(ttl time.Duration, clock clockwork.Clock) *Timed {
	return &Timed{
		ttl:   ttl,
		clock: clock,
		cache: make(map[string]element),
	}
}

// Set assigns a value to a key.
func (c *Timed) Set(key string, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = element{
		value:    val,
		creation: c.clock.Now(),
	}
}

// Get retrieves a value for a key. The value may not exist or have expired,
// in which case ok will be false.
func (c *Timed) Get(key string) (value []byte, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.cache[key]
	if !ok {
		return nil, false
	}

	// In-memory elements might still be invalid.
	if elapsed := c.clock.Since(el.creation); elapsed > c.ttl {
		delete(c.cache, key)
		return nil, false
	}

	return el.value, true
}
