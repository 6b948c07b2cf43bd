// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Rect is an axis-aligned bounding box anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Center returns the midpoint of the box.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Normalize returns the unit vector pointing along (dx, dy).
// ok is false for the zero vector, in which case there is no direction.
func Normalize(dx, dy float64) (nx, ny float64, ok bool) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0, false
	}
	return dx / length, dy / length, true
}
