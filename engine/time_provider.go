// Package engine paces the animation loop: wall-clock frame scheduling with
// drift correction, a manually stepped scheduler for tests and headless runs,
// and a frame-rate meter.
package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to schedulers and meters
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock, monotonic reading included
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to; used to replay frame timing deterministically
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to t, which may be in the past
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new reading
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
