package game

import (
	"math"
	"time"

	"github.com/tomz197/qwerfighter/internal/object"
)

// spawnEnemies drops a grunt every grunt interval and a boss every boss
// interval, measured on the game clock.
func (e *Engine) spawnEnemies(now time.Duration) {
	if e.gruntTimer.Ready(now) {
		e.gruntTimer.Trigger(now)
		e.reg.Grunts.Add(object.NewGrunt(e.rng, e.screen, e.sizes.Of(object.KindGrunt), e.reg.NextID()))
		e.stats.GruntsSpawned++
	}
	if e.bossTimer.Ready(now) {
		e.bossTimer.Trigger(now)
		e.reg.Bosses.Add(object.NewBoss(e.rng, e.screen, e.sizes.Of(object.KindBoss), e.reg.NextID()))
		e.stats.BossesSpawned++
		e.logger.Debug("boss spawned", "at", now)
	}
}

// syncOrbiters makes the orbiter count match the score tier. When the count
// changes every orbiter is re-spaced evenly, starting from the lead orbiter's
// current angle.
func (e *Engine) syncOrbiters() {
	p := e.reg.Player
	want := e.ledger.OrbiterTier()
	have := len(p.Orbiters)
	if want == have {
		return
	}

	lead := 0.0
	if have > 0 {
		lead = p.Orbiters[0].Angle
	}
	if want < have {
		clear(p.Orbiters[want:])
		p.Orbiters = p.Orbiters[:want]
	}
	size := e.sizes.Of(object.KindOrbiter)
	for len(p.Orbiters) < want {
		p.Orbiters = append(p.Orbiters, object.NewOrbiter(p, size, lead))
	}

	step := 360.0 / float64(max(want, 1))
	for i, o := range p.Orbiters {
		o.Angle = math.Mod(lead+float64(i)*step, 360)
		o.Place(p)
	}
	e.logger.Debug("orbiters changed", "from", have, "to", want)
}
