package object

import (
	"math"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/physics"
)

// Orbiter circles the player and hits whatever it touches. It is never
// consumed; only a lower score tier removes it.
type Orbiter struct {
	X, Y  float64
	Angle float64 // Degrees, [0, 360)
	Size  Size
}

// NewOrbiter creates an orbiter at the given angle around the player.
func NewOrbiter(p *Player, size Size, angle float64) *Orbiter {
	o := &Orbiter{Angle: math.Mod(angle, 360), Size: size}
	o.Place(p)
	return o
}

// Advance rotates the orbiter one step.
func (o *Orbiter) Advance() {
	o.Angle = math.Mod(o.Angle+config.OrbiterStepDeg, 360)
}

// Place centres the orbiter on its point of the circle around the player.
func (o *Orbiter) Place(p *Player) {
	cx, cy := p.Center()
	rad := o.Angle * math.Pi / 180
	o.X = cx + config.OrbiterRadius*math.Cos(rad) - o.Size.W/2
	o.Y = cy + config.OrbiterRadius*math.Sin(rad) - o.Size.H/2
}

func (o *Orbiter) Kind() Kind         { return KindOrbiter }
func (o *Orbiter) Damage() int        { return config.OrbiterDamage }
func (o *Orbiter) Rect() physics.Rect { return Box(o.X, o.Y, o.Size) }
