package game

import "github.com/tomz197/qwerfighter/internal/config"

// Ledger accumulates score. Score never decreases.
type Ledger struct {
	score    int
	lastHeal int // Score at the last heal
}

// Award adds points. Non-positive awards are ignored.
func (l *Ledger) Award(points int) {
	if points > 0 {
		l.score += points
	}
}

// Score returns the current total.
func (l *Ledger) Score() int {
	return l.score
}

// HealDue reports whether enough score was gained since the last heal, and if
// so starts counting again from the current score.
func (l *Ledger) HealDue() bool {
	if l.score < l.lastHeal+config.HealEveryScore {
		return false
	}
	l.lastHeal = l.score
	return true
}

// OrbiterTier returns how many orbiters the score pays for.
func (l *Ledger) OrbiterTier() int {
	return l.score / config.OrbiterTierScore
}

// Reset zeroes the ledger.
func (l *Ledger) Reset() {
	*l = Ledger{}
}
