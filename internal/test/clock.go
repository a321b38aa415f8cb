package test

import (
	"sync"
	"time"
)

// Clock is a deterministic time source advancing by Step on every call.
type Clock struct {
	mu   sync.Mutex
	t    time.Time
	Step time.Duration
}

func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{t: start, Step: step}
}

// Now returns the current instant and then advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.Step)
	return now
}
