// Package clocktest provides clock fixtures for limiter tests, so admission
// timing can be driven deterministically instead of sleeping.
package clocktest

import (
	"sync"
	"time"
)

// ManualClock is a Clock whose time only moves when told to. Safe for
// concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a ManualClock pinned to an arbitrary fixed origin.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(1_700_000_000, 0)}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// CountingClock is a fixed clock that counts how many times Now is called.
// Useful for asserting that a code path never consults the clock.
type CountingClock struct {
	mu    sync.Mutex
	now   time.Time
	calls int
}

// NewCountingClock returns a CountingClock pinned to a fixed origin.
func NewCountingClock() *CountingClock {
	return &CountingClock{now: time.Unix(1_700_000_000, 0)}
}

// Now returns the clock's instant and records the call.
func (c *CountingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.now
}

// Calls reports how many times Now has been called.
func (c *CountingClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
