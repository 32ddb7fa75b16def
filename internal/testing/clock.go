package testing

import (
	"sync"
	"time"
)

// ManualClock provides a controllable clock for testing time-dependent behavior.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// DefaultTime is where a new ManualClock starts: 2025-01-01 00:00:00 UTC.
var DefaultTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// NewManualClock creates a new ManualClock set to DefaultTime.
func NewManualClock() *ManualClock {
	return &ManualClock{current: DefaultTime}
}

// NewManualClockAt creates a new ManualClock set to the specified time.
func NewManualClockAt(t time.Time) *ManualClock {
	return &ManualClock{current: t}
}

// Now returns the current time on the clock.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the clock forward by the specified duration.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the clock to a specific time. Auction phases are derived from the
// request time, so tests jump straight to a boundary with Set.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}
