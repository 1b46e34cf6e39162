package testutil

import (
	"sync"
	"time"
)

// Clock is a manual clock for timer and pipeline tests. It advances only
// when told to and is safe for use from tick goroutines.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock starts at a fixed instant so test expectations stay literal.
func NewClock() *Clock {
	return &Clock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
