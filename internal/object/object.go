// Package object holds the entities of the combat simulation and the small
// interfaces the engine uses to move and collide them.
package object

import (
	"github.com/tomz197/qwerfighter/internal/input"
	"github.com/tomz197/qwerfighter/internal/physics"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// TargetFunc looks up a live enemy by id. ok is false once the enemy is gone.
type TargetFunc func(id uint64) (box physics.Rect, ok bool)

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Input  Input
	Screen Screen
	Target TargetFunc
}

// Destructible is implemented by entities that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the entity so no later pass can hit or reward it again.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for destruction.
	IsDestroyed() bool
}

// Collider is anything with a bounding box that the resolver can remove.
type Collider interface {
	Destructible
	Rect() physics.Rect
	Kind() Kind
}

// Enemy is a grunt or a boss.
type Enemy interface {
	Collider
	ID() uint64
	Attack() int
}

// Projectile is a single-hit player munition.
type Projectile interface {
	Collider
	Damage() int
}

// Box returns the bounding box of an entity positioned at (x, y).
func Box(x, y float64, s Size) physics.Rect {
	return physics.Rect{X: x, Y: y, W: s.W, H: s.H}
}
