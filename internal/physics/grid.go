package physics

import (
	"math"
	"slices"
)

// Grid is a uniform bucket grid for broad-phase collision detection over a
// bounded playfield. Boxes are inserted under every cell they cover, so any
// cell size works; smaller cells mean fewer false candidates per query.
//
// Boxes that stick out of the playfield (enemies spawn above the top edge)
// are clamped into the border cells, so nothing is ever dropped.
type Grid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
	seen        []int // Scratch buffer reused by Query
}

// gridCell stores the indices of boxes that touch a grid cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewGrid creates a grid covering the given playfield dimensions.
func NewGrid(worldW, worldH, cellSize float64) *Grid {
	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds the box identified by index under every cell it covers.
// Indices must be inserted in ascending order for Query to stay sorted cheaply.
func (g *Grid) Insert(r Rect, index int) {
	c0, r0 := g.posToCell(r.X, r.Y)
	c1, r1 := g.posToCell(r.X+r.W, r.Y+r.H)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cell := &g.cells[row*g.cols+col]
			cell.items = append(cell.items, index)
		}
	}
}

// Query returns the indices of every box sharing a cell with r, ascending and
// without duplicates. The returned slice is only valid until the next Query.
func (g *Grid) Query(r Rect) []int {
	g.seen = g.seen[:0]
	c0, r0 := g.posToCell(r.X, r.Y)
	c1, r1 := g.posToCell(r.X+r.W, r.Y+r.H)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.seen = append(g.seen, g.cells[row*g.cols+col].items...)
		}
	}
	slices.Sort(g.seen)
	g.seen = slices.Compact(g.seen)
	return g.seen
}

// posToCell converts world coordinates to grid cell coordinates.
// Clamps to valid range so off-field boxes land in the border cells.
func (g *Grid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
