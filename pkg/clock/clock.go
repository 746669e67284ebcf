package clock

import (
	"sync"
	"time"
)

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

// Monotonic never hands out a timestamp at or below the previous one, so
// records created in sequence sort in creation order even when the wall clock
// stalls or steps back. Values are truncated to the store's precision.
type Monotonic struct {
	mu        sync.Mutex
	last      time.Time
	precision time.Duration
	source    func() time.Time
}

// NewMonotonic returns a clock with microsecond precision (Postgres
// timestamptz resolution).
func NewMonotonic() *Monotonic {
	return &Monotonic{precision: time.Microsecond, source: time.Now}
}

// NewMonotonicFrom is NewMonotonic over a custom time source.
func NewMonotonicFrom(source func() time.Time) *Monotonic {
	return &Monotonic{precision: time.Microsecond, source: source}
}

func (c *Monotonic) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source().Round(0).Truncate(c.precision).UTC()
	if !now.After(c.last) {
		now = c.last.Add(c.precision)
	}
	c.last = now
	return now
}
