package object

import (
	"time"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/physics"
)

var abilityCooldowns = [AbilityCount]time.Duration{
	AbilityCharged: config.ChargedCooldown,
	AbilityBarrage: config.BarrageCooldown,
	AbilityShield:  config.ShieldCooldown,
	AbilityHoming:  config.HomingCooldown,
}

// Player is the fighter at the bottom of the screen.
type Player struct {
	X, Y   float64 // Top-left corner
	Size   Size
	Health int
	Attack int // Damage dealt by a regular shot

	Cooldowns [AbilityCount]Cooldown

	BarrageActive bool
	BarrageStart  time.Duration
	ShieldActive  bool
	HealActive    bool // Heal visual is showing
	HealStart     time.Duration

	Orbiters []*Orbiter
}

// NewPlayer creates a player at the bottom centre of the screen.
func NewPlayer(screen Screen, size Size) *Player {
	p := &Player{Size: size}
	p.Reset(screen)
	return p
}

// Reset puts the player back into its starting state.
func (p *Player) Reset(screen Screen) {
	p.X = screen.Width / 2
	p.Y = screen.Height - 50
	p.clamp(screen)
	p.Health = config.PlayerStartHealth
	p.Attack = config.PlayerAttack
	for a, period := range abilityCooldowns {
		cd := &p.Cooldowns[a]
		cd.Period = period
		cd.Reset()
	}
	p.BarrageActive = false
	p.BarrageStart = 0
	p.ShieldActive = false
	p.HealActive = false
	p.HealStart = 0
	p.Orbiters = nil
}

// Cooldown returns the cooldown for an ability.
func (p *Player) Cooldown(a Ability) *Cooldown {
	return &p.Cooldowns[a]
}

// Move applies held directions and keeps the player on screen.
func (p *Player) Move(in Input, screen Screen) {
	if in.Left {
		p.X -= config.PlayerSpeed
	}
	if in.Right {
		p.X += config.PlayerSpeed
	}
	if in.Up {
		p.Y -= config.PlayerSpeed
	}
	if in.Down {
		p.Y += config.PlayerSpeed
	}
	p.clamp(screen)
}

func (p *Player) clamp(screen Screen) {
	p.X = max(0, min(p.X, screen.Width-p.Size.W))
	p.Y = max(0, min(p.Y, screen.Height-p.Size.H))
}

// Rect returns the player's bounding box.
func (p *Player) Rect() physics.Rect {
	return Box(p.X, p.Y, p.Size)
}

// Center returns the middle of the player's bounding box.
func (p *Player) Center() (float64, float64) {
	return p.Rect().Center()
}

// Alive reports whether the player still has health.
func (p *Player) Alive() bool {
	return p.Health > 0
}
