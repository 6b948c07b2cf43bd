package clock

import "time"

// Pausable measures game time: real time elapsed since the epoch minus every
// interval spent paused. It is owned by a single engine and is not safe for
// concurrent use.
type Pausable struct {
	src       Source
	start     time.Time     // Epoch (real time)
	pausedAt  time.Time     // When the current pause began
	pausedFor time.Duration // Cumulative length of finished pauses
	paused    bool
}

// NewPausable starts a running game clock at the source's current instant.
func NewPausable(src Source) *Pausable {
	if src == nil {
		src = System{}
	}
	return &Pausable{src: src, start: src.Now()}
}

// Elapsed returns game time since the epoch. While paused the value is frozen.
func (p *Pausable) Elapsed() time.Duration {
	now := p.src.Now()
	if p.paused {
		now = p.pausedAt
	}
	return now.Sub(p.start) - p.pausedFor
}

// Pause freezes game time. Pausing a paused clock does nothing.
func (p *Pausable) Pause() {
	if p.paused {
		return
	}
	p.paused = true
	p.pausedAt = p.src.Now()
}

// Resume lets game time run again, discarding the time spent paused.
func (p *Pausable) Resume() {
	if !p.paused {
		return
	}
	p.pausedFor += p.src.Now().Sub(p.pausedAt)
	p.pausedAt = time.Time{}
	p.paused = false
}

// IsPaused reports whether game time is frozen.
func (p *Pausable) IsPaused() bool {
	return p.paused
}

// PausedFor returns the total time spent paused, including a pause in progress.
func (p *Pausable) PausedFor() time.Duration {
	total := p.pausedFor
	if p.paused {
		total += p.src.Now().Sub(p.pausedAt)
	}
	return total
}

// Reset starts a new epoch at the source's current instant, running.
func (p *Pausable) Reset() {
	p.start = p.src.Now()
	p.pausedAt = time.Time{}
	p.pausedFor = 0
	p.paused = false
}
