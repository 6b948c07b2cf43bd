package game

import (
	"slices"

	"github.com/tomz197/qwerfighter/internal/object"
	"github.com/tomz197/qwerfighter/internal/physics"
)

// Group is an ordered list of live entities of one category.
//
// Passes that may remove entities iterate over Snapshot and remove from the
// group itself, so a removal never shifts what the pass visits next.
type Group[T comparable] struct {
	items []T
}

// Add appends entities in order.
func (g *Group[T]) Add(items ...T) {
	g.items = append(g.items, items...)
}

// Snapshot returns a copy of the current members for iteration.
func (g *Group[T]) Snapshot() []T {
	return slices.Clone(g.items)
}

// Remove deletes item by identity. Removing an absent item is a no-op and
// returns false.
func (g *Group[T]) Remove(item T) bool {
	i := slices.Index(g.items, item)
	if i < 0 {
		return false
	}
	g.items = slices.Delete(g.items, i, i+1)
	return true
}

// Contains reports whether item is a member.
func (g *Group[T]) Contains(item T) bool {
	return slices.Contains(g.items, item)
}

// Len returns the number of members.
func (g *Group[T]) Len() int {
	return len(g.items)
}

// Items returns the live members. Callers must not modify the slice.
func (g *Group[T]) Items() []T {
	return g.items[:len(g.items):len(g.items)]
}

// Clear removes every member.
func (g *Group[T]) Clear() {
	clear(g.items)
	g.items = g.items[:0]
}

// Registry owns every live entity of one game. Orbiters belong to the player.
type Registry struct {
	Player *object.Player

	Grunts  Group[*object.Grunt]
	Bosses  Group[*object.Boss]
	Shots   Group[*object.Shot] // Regular auto-fire
	Charged Group[*object.Shot]
	Barrage Group[*object.Shot]
	Homing  Group[*object.HomingShot]

	nextID uint64
}

// NextID hands out a fresh enemy id. Ids are never reused within a game.
func (r *Registry) NextID() uint64 {
	r.nextID++
	return r.nextID
}

// Target resolves an enemy id to its current bounding box.
func (r *Registry) Target(id uint64) (physics.Rect, bool) {
	for _, g := range r.Grunts.Items() {
		if g.ID() == id && !g.IsDestroyed() {
			return g.Rect(), true
		}
	}
	for _, b := range r.Bosses.Items() {
		if b.ID() == id && !b.IsDestroyed() {
			return b.Rect(), true
		}
	}
	return physics.Rect{}, false
}

// Enemies lists live grunts then live bosses, in registry order.
func (r *Registry) Enemies() []object.Enemy {
	enemies := make([]object.Enemy, 0, r.Grunts.Len()+r.Bosses.Len())
	for _, g := range r.Grunts.Items() {
		enemies = append(enemies, g)
	}
	for _, b := range r.Bosses.Items() {
		enemies = append(enemies, b)
	}
	return enemies
}

// RemoveEnemy removes a grunt or boss from its group.
func (r *Registry) RemoveEnemy(e object.Enemy) bool {
	switch v := e.(type) {
	case *object.Grunt:
		return r.Grunts.Remove(v)
	case *object.Boss:
		return r.Bosses.Remove(v)
	}
	return false
}

// Clear drops every entity and restarts id assignment.
func (r *Registry) Clear() {
	r.Grunts.Clear()
	r.Bosses.Clear()
	r.Shots.Clear()
	r.Charged.Clear()
	r.Barrage.Clear()
	r.Homing.Clear()
	r.nextID = 0
}
