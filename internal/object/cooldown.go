package object

import (
	"fmt"
	"time"
)

// Ability identifies one of the player's special moves.
type Ability uint8

const (
	AbilityCharged Ability = iota
	AbilityBarrage
	AbilityShield
	AbilityHoming
	AbilityCount
)

var abilityNames = [AbilityCount]string{"charged", "barrage", "shield", "homing"}

func (a Ability) String() string {
	if a < AbilityCount {
		return abilityNames[a]
	}
	return fmt.Sprintf("ability(%d)", uint8(a))
}

// MarshalText encodes the ability by name.
func (a Ability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Phase is where an ability sits in its cycle.
type Phase uint8

const (
	PhaseReady Phase = iota
	PhaseActive
	PhaseCoolingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseActive:
		return "active"
	case PhaseCoolingDown:
		return "cooling_down"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Cooldown gates an ability. Times are game-clock offsets, so pauses never
// count towards readiness.
type Cooldown struct {
	Period time.Duration
	last   time.Duration
	used   bool
}

// NewCooldown creates a cooldown that has never been triggered.
func NewCooldown(period time.Duration) Cooldown {
	return Cooldown{Period: period}
}

// Ready reports whether the ability may fire at now. An ability that was
// never used is ready; otherwise a full period must have elapsed.
func (c Cooldown) Ready(now time.Duration) bool {
	return !c.used || now-c.last >= c.Period
}

// Trigger records an activation at now.
func (c *Cooldown) Trigger(now time.Duration) {
	c.last = now
	c.used = true
}

// LastUsed returns the last activation time and whether there was one.
func (c Cooldown) LastUsed() (time.Duration, bool) {
	return c.last, c.used
}

// Remaining returns how long until the ability is ready again.
func (c Cooldown) Remaining(now time.Duration) time.Duration {
	if c.Ready(now) {
		return 0
	}
	return c.Period - (now - c.last)
}

// Reset forgets every activation.
func (c *Cooldown) Reset() {
	c.last = 0
	c.used = false
}
