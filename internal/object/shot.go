package object

import (
	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/physics"
)

// Shot is a projectile that flies straight up: the regular auto-fire shot,
// the charged shot and the barrage shot differ only in speed, damage and size.
type Shot struct {
	X, Y      float64
	Size      Size
	Speed     float64 // Units per tick, upwards
	damage    int
	kind      Kind
	destroyed bool
}

// NewPlayerShot fires a regular shot from the middle of the player's nose.
func NewPlayerShot(p *Player, sizes Sizes) *Shot {
	return &Shot{
		X:      p.X + p.Size.W/2 - 4,
		Y:      p.Y,
		Size:   sizes.Of(KindPlayerShot),
		Speed:  config.PlayerShotSpeed,
		damage: p.Attack,
		kind:   KindPlayerShot,
	}
}

// NewChargedShot fires a charged shot from the player's corner.
func NewChargedShot(p *Player, sizes Sizes) *Shot {
	return &Shot{
		X:      p.X,
		Y:      p.Y,
		Size:   sizes.Of(KindChargedShot),
		Speed:  config.ChargedShotSpeed,
		damage: config.ChargedShotDamage,
		kind:   KindChargedShot,
	}
}

// NewBarrageShot emits one barrage shot.
func NewBarrageShot(p *Player, sizes Sizes) *Shot {
	return &Shot{
		X:      p.X + 10,
		Y:      p.Y,
		Size:   sizes.Of(KindBarrageShot),
		Speed:  config.BarrageShotSpeed,
		damage: config.BarrageShotDamage,
		kind:   KindBarrageShot,
	}
}

// Update moves the shot up. Returns true once it has fully left the top edge.
func (s *Shot) Update(_ UpdateContext) bool {
	s.Y -= s.Speed
	return s.Y < -s.Size.H
}

func (s *Shot) Kind() Kind         { return s.kind }
func (s *Shot) Damage() int        { return s.damage }
func (s *Shot) Rect() physics.Rect { return Box(s.X, s.Y, s.Size) }
func (s *Shot) MarkDestroyed()     { s.destroyed = true }
func (s *Shot) IsDestroyed() bool  { return s.destroyed }

// HomingShot steers towards the enemy it locked onto. It only remembers the
// enemy's id; once that enemy is gone it flies straight up like a shot.
type HomingShot struct {
	X, Y         float64
	Size         Size
	StepX, StepY float64 // Displacement applied on the last update
	target       uint64
	locked       bool
	destroyed    bool
}

// NewHomingShot fires a homing shot at the enemy with the given id.
func NewHomingShot(p *Player, sizes Sizes, target uint64) *HomingShot {
	return &HomingShot{
		X:      p.X + 50,
		Y:      p.Y,
		Size:   sizes.Of(KindHomingShot),
		target: target,
		locked: true,
	}
}

// Target returns the id of the enemy being chased, if it is still alive.
func (h *HomingShot) Target() (uint64, bool) {
	return h.target, h.locked
}

// Update steers the shot. A shot that still has its target is never culled;
// a shot that lost it rises and is culled above the screen.
func (h *HomingShot) Update(ctx UpdateContext) bool {
	if h.locked && ctx.Target != nil {
		if box, ok := ctx.Target(h.target); ok {
			h.StepX, h.StepY = 0, 0
			if nx, ny, ok := physics.Normalize(box.X-h.X, box.Y-h.Y); ok {
				h.StepX = nx * config.HomingSteerSpeed
				h.StepY = ny * config.HomingSteerSpeed
				h.X += h.StepX
				h.Y += h.StepY
			}
			return false
		}
	}
	h.locked = false

	h.StepX, h.StepY = 0, -config.HomingFallbackRise
	h.Y += h.StepY
	return h.Y < -h.Size.H
}

func (h *HomingShot) Kind() Kind         { return KindHomingShot }
func (h *HomingShot) Damage() int        { return config.HomingShotDamage }
func (h *HomingShot) Rect() physics.Rect { return Box(h.X, h.Y, h.Size) }
func (h *HomingShot) MarkDestroyed()     { h.destroyed = true }
func (h *HomingShot) IsDestroyed() bool  { return h.destroyed }
