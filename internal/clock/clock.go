// Package clock provides the time sources the simulation measures its
// timers against.
package clock

import (
	"sync"
	"time"
)

// Source returns the current instant. Implementations must be monotonic.
type Source interface {
	Now() time.Time
}

// System reads the wall clock. time.Now carries a monotonic reading, so
// subtracting two samples is safe across wall-clock adjustments.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Manual is a Source that only moves when told to. Tests drive timers with it.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual source starting at start.
// A zero start is replaced by a fixed epoch.
func NewManual(start time.Time) *Manual {
	if start.IsZero() {
		start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Manual{now: start}
}

// Now returns the current manual instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

