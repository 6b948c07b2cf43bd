package game

import (
	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/object"
)

// gridCellSize is the broad-phase cell edge in logical units.
const gridCellSize = 96

// bounty is the kill bonus a weapon earns per enemy type. Weapons with
// wearsGrunts set chip at grunt health; the rest kill grunts outright.
type bounty struct {
	grunt       int
	boss        int
	wearsGrunts bool
}

var (
	shotBounty    = bounty{grunt: config.ScoreGruntByShot, boss: config.ScoreBossByShot, wearsGrunts: true}
	chargedBounty = bounty{grunt: config.ScoreGruntByCharged, boss: config.ScoreBossByCharged}
	barrageBounty = bounty{grunt: config.ScoreGruntByBarrage, boss: config.ScoreBossByBarrage}
	homingBounty  = bounty{grunt: config.ScoreGruntByHoming, boss: config.ScoreBossByHoming}
	orbiterBounty = bounty{grunt: config.ScoreGruntByOrbiter, boss: config.ScoreBossByOrbiter}
)

// projectile is any single-hit munition kept in a Group.
type projectile interface {
	comparable
	object.Projectile
}

// resolve runs every collision pair for this tick, in a fixed order:
// each projectile kind against grunts then bosses, orbiters, then enemies
// touching the player.
func (e *Engine) resolve() {
	targets := e.indexTargets()

	resolveVolley(e, targets, &e.reg.Shots, shotBounty)
	resolveVolley(e, targets, &e.reg.Charged, chargedBounty)
	resolveVolley(e, targets, &e.reg.Barrage, barrageBounty)
	resolveVolley(e, targets, &e.reg.Homing, homingBounty)
	e.resolveOrbiters(targets)
	e.resolvePlayer()
}

// indexTargets lists every enemy, grunts first, and buckets them in the grid.
// Grid indices are positions in the returned slice, so ascending candidates
// follow registry order.
func (e *Engine) indexTargets() []object.Enemy {
	targets := e.reg.Enemies()
	e.grid.Clear()
	for i, t := range targets {
		e.grid.Insert(t.Rect(), i)
	}
	return targets
}

// resolveVolley lets each shot hit at most the first enemy it overlaps. The
// shot is consumed on hit.
func resolveVolley[P projectile](e *Engine, targets []object.Enemy, shots *Group[P], reward bounty) {
	for _, s := range shots.Snapshot() {
		if s.IsDestroyed() {
			continue
		}
		box := s.Rect()
		for _, i := range e.grid.Query(box) {
			t := targets[i]
			if t.IsDestroyed() || !box.Overlaps(t.Rect()) {
				continue
			}
			s.MarkDestroyed()
			shots.Remove(s)
			e.strike(t, s.Damage(), reward)
			break
		}
	}
}

// resolveOrbiters hits every enemy touching an orbiter. Orbiters are never
// consumed, so a boss sitting on one takes damage every tick.
func (e *Engine) resolveOrbiters(targets []object.Enemy) {
	for _, o := range e.reg.Player.Orbiters {
		box := o.Rect()
		for _, i := range e.grid.Query(box) {
			t := targets[i]
			if t.IsDestroyed() || !box.Overlaps(t.Rect()) {
				continue
			}
			e.strike(t, o.Damage(), orbiterBounty)
		}
	}
}

// strike applies a hit. Regular shots wear grunts down, every other weapon
// kills them outright; bosses die when their health first reaches zero.
// Each kill is rewarded exactly once.
func (e *Engine) strike(t object.Enemy, damage int, reward bounty) {
	switch v := t.(type) {
	case *object.Grunt:
		if reward.wearsGrunts && !v.Hit(damage) {
			return
		}
		e.kill(v)
		e.ledger.Award(reward.grunt)
		e.stats.GruntsKilled++
	case *object.Boss:
		if v.Hit(damage) {
			e.kill(v)
			e.ledger.Award(reward.boss)
			e.stats.BossesKilled++
		}
	}
}

func (e *Engine) kill(t object.Enemy) {
	t.MarkDestroyed()
	e.reg.RemoveEnemy(t)
}

// resolvePlayer handles enemies ramming the player, grunts then bosses. A
// raised shield absorbs one hit. Once the player is dead the rest of the
// contacts this tick are ignored.
func (e *Engine) resolvePlayer() {
	p := e.reg.Player
	box := p.Rect()

	contact := func(t object.Enemy) (stop bool) {
		if t.IsDestroyed() || !box.Overlaps(t.Rect()) {
			return false
		}
		e.kill(t)
		if p.ShieldActive {
			p.ShieldActive = false
			return false
		}
		p.Health -= t.Attack()
		if !p.Alive() {
			e.gameOver()
			return true
		}
		return false
	}

	for _, g := range e.reg.Grunts.Snapshot() {
		if contact(g) {
			return
		}
	}
	for _, b := range e.reg.Bosses.Snapshot() {
		if contact(b) {
			return
		}
	}
}
