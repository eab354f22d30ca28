package sim

import (
	"sync"
	"time"
)

type Rand interface {
	IntN(n int) int
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Diagnostics receives programmer-error reports that must not reach the
// in-game log.
type Diagnostics interface {
	Defect(op, detail string)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Defect(string, string) {}
