package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/physics"
)

// Grunt is the basic enemy. It falls in a ballistic arc and bounces off the
// side walls.
type Grunt struct {
	X, Y      float64
	VX, VY    float64
	Size      Size
	Health    int
	id        uint64
	destroyed bool
}

// NewGrunt creates a grunt above the screen at a random column, launched
// within 45 degrees of straight down at an integer speed.
func NewGrunt(rng *rand.Rand, screen Screen, size Size, id uint64) *Grunt {
	theta := (math.Pi/2)*rng.Float64() - math.Pi/4
	speed := float64(config.GruntMinSpeed + rng.Intn(config.GruntMaxSpeed-config.GruntMinSpeed+1))
	return &Grunt{
		X:      randomColumn(rng, screen, size),
		Y:      config.GruntSpawnY,
		VX:     math.Sin(theta) * speed,
		VY:     math.Cos(theta) * speed,
		Size:   size,
		Health: config.GruntHealth,
		id:     id,
	}
}

// Update bounces, applies gravity and moves. Returns true once below the screen.
func (g *Grunt) Update(ctx UpdateContext) bool {
	if g.X < 0 || g.X > ctx.Screen.Width-g.Size.W {
		g.VX = -g.VX
	}
	g.X += g.VX
	g.VY += config.GruntGravity
	g.Y += g.VY
	return g.Y > ctx.Screen.Height
}

// Hit subtracts damage and reports whether this hit killed the grunt.
func (g *Grunt) Hit(damage int) (killed bool) {
	if g.Health <= 0 {
		return false
	}
	g.Health -= damage
	return g.Health <= 0
}

func (g *Grunt) ID() uint64         { return g.id }
func (g *Grunt) Kind() Kind         { return KindGrunt }
func (g *Grunt) Attack() int        { return config.GruntAttack }
func (g *Grunt) Rect() physics.Rect { return Box(g.X, g.Y, g.Size) }
func (g *Grunt) MarkDestroyed()     { g.destroyed = true }
func (g *Grunt) IsDestroyed() bool  { return g.destroyed }

// Boss is the slow heavy enemy. It takes damage until its health runs out.
type Boss struct {
	X, Y      float64
	VY        float64
	Size      Size
	Health    int
	id        uint64
	destroyed bool
}

// NewBoss creates a boss above the screen at a random column.
func NewBoss(rng *rand.Rand, screen Screen, size Size, id uint64) *Boss {
	return &Boss{
		X:      randomColumn(rng, screen, size),
		Y:      config.BossSpawnY,
		VY:     config.BossSpeed,
		Size:   size,
		Health: config.BossHealth,
		id:     id,
	}
}

// Update sinks the boss. Returns true once below the screen.
func (b *Boss) Update(ctx UpdateContext) bool {
	b.Y += b.VY
	return b.Y > ctx.Screen.Height
}

// Hit subtracts damage and reports whether this hit took the boss from
// alive to dead. Later hits on a dead boss report false.
func (b *Boss) Hit(damage int) (killed bool) {
	if b.Health <= 0 {
		return false
	}
	b.Health -= damage
	return b.Health <= 0
}

func (b *Boss) ID() uint64         { return b.id }
func (b *Boss) Kind() Kind         { return KindBoss }
func (b *Boss) Attack() int        { return config.BossAttack }
func (b *Boss) Rect() physics.Rect { return Box(b.X, b.Y, b.Size) }
func (b *Boss) MarkDestroyed()     { b.destroyed = true }
func (b *Boss) IsDestroyed() bool  { return b.destroyed }

// randomColumn picks an integer x so the box fits horizontally.
func randomColumn(rng *rand.Rand, screen Screen, size Size) float64 {
	span := int(screen.Width - size.W)
	if span <= 0 {
		return 0
	}
	return float64(rng.Intn(span + 1))
}
