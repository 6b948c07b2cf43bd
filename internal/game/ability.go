package game

import (
	"math"
	"time"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/input"
	"github.com/tomz197/qwerfighter/internal/object"
	"github.com/tomz197/qwerfighter/internal/physics"
)

// useAbilities activates whatever the input asked for. Requests that are on
// cooldown or fail their gate are dropped without side effects.
func (e *Engine) useAbilities(in input.Input, now time.Duration) {
	p := e.reg.Player

	if in.Charged {
		e.tryActivate(object.AbilityCharged, now, func() bool {
			e.reg.Charged.Add(object.NewChargedShot(p, e.sizes))
			return true
		})
	}
	if in.Barrage {
		e.tryActivate(object.AbilityBarrage, now, func() bool {
			p.BarrageActive = true
			p.BarrageStart = now
			return true
		})
	}
	if in.Shield {
		e.tryActivate(object.AbilityShield, now, func() bool {
			p.ShieldActive = true
			return true
		})
	}
	if in.Homing && e.ledger.Score() >= config.HomingMinScore {
		e.tryActivate(object.AbilityHoming, now, func() bool {
			target, ok := e.nearestEnemy()
			if !ok {
				return false
			}
			e.reg.Homing.Add(object.NewHomingShot(p, e.sizes, target.ID()))
			return true
		})
	}
}

// tryActivate runs activate if the ability is ready and starts its cooldown
// only when activate reports success.
func (e *Engine) tryActivate(a object.Ability, now time.Duration, activate func() bool) {
	cd := e.reg.Player.Cooldown(a)
	if !cd.Ready(now) {
		return
	}
	if activate() {
		cd.Trigger(now)
		e.logger.Debug("ability used", "ability", a, "at", now)
	}
}

// emit fires the player's automatic weapon: regular shots normally, barrage
// shots while the barrage window is open.
func (e *Engine) emit(now time.Duration) {
	p := e.reg.Player

	if p.BarrageActive && now-p.BarrageStart >= config.BarrageWindow {
		p.BarrageActive = false
	}
	if !e.fireTimer.Ready(now) {
		return
	}
	e.fireTimer.Trigger(now)

	if p.BarrageActive {
		e.reg.Barrage.Add(object.NewBarrageShot(p, e.sizes))
	} else {
		e.reg.Shots.Add(object.NewPlayerShot(p, e.sizes))
	}
}

// nearestEnemy picks the live grunt or boss closest to the player. Ties go to
// the earlier one, grunts before bosses.
func (e *Engine) nearestEnemy() (object.Enemy, bool) {
	p := e.reg.Player
	var (
		best     object.Enemy
		bestDist = math.Inf(1)
	)
	for _, en := range e.reg.Enemies() {
		if en.IsDestroyed() {
			continue
		}
		box := en.Rect()
		if d := physics.DistanceSquared(p.X, p.Y, box.X, box.Y); d < bestDist {
			best, bestDist = en, d
		}
	}
	return best, best != nil
}

// phase reports where an ability is in its cycle.
func (e *Engine) phase(a object.Ability, now time.Duration) object.Phase {
	p := e.reg.Player
	var active bool
	switch a {
	case object.AbilityCharged:
		active = e.reg.Charged.Len() > 0
	case object.AbilityBarrage:
		active = p.BarrageActive
	case object.AbilityShield:
		active = p.ShieldActive
	case object.AbilityHoming:
		active = e.reg.Homing.Len() > 0
	}
	switch {
	case active:
		return object.PhaseActive
	case !p.Cooldown(a).Ready(now):
		return object.PhaseCoolingDown
	default:
		return object.PhaseReady
	}
}
