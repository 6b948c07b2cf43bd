package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Canvas is a colour pixel buffer with 2x vertical resolution: each terminal
// cell shows two stacked pixels using half-block characters. Drawing calls
// take logical coordinates, which are scaled onto the terminal cells.
type Canvas struct {
	termWidth      int     // Terminal columns covered by the canvas
	termHeight     int     // Terminal rows covered by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // subPixelHeight / logicalHeight

	// 0-based terminal offset of the top-left cell.
	offsetCol int
	offsetRow int

	// What each cell showed after the last Render, as top<<8 | bottom.
	// -1 forces the cell to be repainted.
	shown []int32

	scaledBuf       []Point   // Reused by fillPolygon
	intersectionBuf []float64 // Reused scanline intersections
	numBuf          [20]byte  // Scratch for integer formatting
	line            []byte    // Reused render output
}

// NewScaledCanvas creates a canvas that maps a logicalWidth x logicalHeight
// playfield onto termWidth x termHeight cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.shown = make([]int32, termWidth*termHeight)
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the canvas starts.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = -1
	}
}

// MarkTextDirty flags n cells starting at a 1-based terminal position as
// overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1 - c.offsetRow
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1 - c.offsetCol; x < col-1-c.offsetCol+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.shown[r*c.termWidth+x] = -1
		}
	}
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas width in columns.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the canvas height in rows.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// At returns the colour of a pixel in canvas pixel coordinates.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Floor(x * c.scaleX)), int(math.Floor(y * c.scaleY))
}

// SetFloat sets the pixel under a logical coordinate.
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, col)
}

// FillRect fills a logical rectangle. Every rectangle covers at least one
// pixel so small sprites never vanish at low resolutions.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0, y0 := c.toPixel(x, y)
	x1, y1 := c.toPixel(x+w, y+h)
	x1 = max(x1-1, x0)
	y1 = max(y1-1, y0)
	for py := max(y0, 0); py <= min(y1, c.subPixelHeight-1); py++ {
		for px := max(x0, 0); px <= min(x1, c.termWidth-1); px++ {
			c.pixels[py*c.termWidth+px] = col
		}
	}
}

// StrokeRect draws the outline of a logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64, col Color) {
	tl := Point{X: x, Y: y}
	tr := Point{X: x + w, Y: y}
	br := Point{X: x + w, Y: y + h}
	bl := Point{X: x, Y: y + h}
	c.DrawLine(tl, tr, col)
	c.DrawLine(tr, br, col)
	c.DrawLine(br, bl, col)
	c.DrawLine(bl, tl, col)
}

// FillCircle fills the circle inscribed in a logical box.
func (c *Canvas) FillCircle(x, y, w, h float64, col Color) {
	x0, y0 := c.toPixel(x, y)
	x1, y1 := c.toPixel(x+w, y+h)
	cx, cy := float64(x0+x1)/2, float64(y0+y1)/2
	rx, ry := max(float64(x1-x0)/2, 0.5), max(float64(y1-y0)/2, 0.5)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - cx) / rx
			dy := (float64(py) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				c.setPixel(px, py, col)
			}
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon outline, filling the interior when filled is set.
func (c *Canvas) DrawPolygon(points []Point, col Color, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, col)
	}
	n := len(points)
	for i := range n {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = min(minY, scaled[i].Y)
		maxY = max(maxY, scaled[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// Render writes every cell that changed since the previous Render. Two
// differently coloured pixels in one cell are drawn as an upper half block on
// a coloured background.
func (c *Canvas) Render(w io.Writer) error {
	out := c.line[:0]
	for row := range c.termHeight {
		top := c.pixels[row*2*c.termWidth : (row*2+1)*c.termWidth]
		bottom := c.pixels[(row*2+1)*c.termWidth : (row*2+2)*c.termWidth]
		for col := range c.termWidth {
			t, b := top[col], bottom[col]
			cell := int32(t)<<8 | int32(b)
			if c.shown[row*c.termWidth+col] == cell {
				continue
			}
			c.shown[row*c.termWidth+col] = cell

			out = c.appendMove(out, col+1+c.offsetCol, row+1+c.offsetRow)
			switch {
			case t == ColorNone && b == ColorNone:
				out = append(out, ' ')
				continue
			case t == b:
				out = c.appendFg(out, t)
				out = append(out, string(BlockFull)...)
			case b == ColorNone:
				out = c.appendFg(out, t)
				out = append(out, string(BlockUpperHalf)...)
			case t == ColorNone:
				out = c.appendFg(out, b)
				out = append(out, string(BlockLowerHalf)...)
			default:
				out = c.appendFg(out, t)
				out = append(out, "\033[48;5;"...)
				out = strconv.AppendInt(out, int64(b), 10)
				out = append(out, 'm')
				out = append(out, string(BlockUpperHalf)...)
			}
			out = append(out, "\033[0m"...)
		}
	}
	c.line = out
	if len(out) == 0 {
		return nil
	}
	_, err := w.Write(out)
	return err
}

func (c *Canvas) appendMove(out []byte, col, row int) []byte {
	out = append(out, "\033["...)
	out = append(out, strconv.AppendInt(c.numBuf[:0], int64(row), 10)...)
	out = append(out, ';')
	out = append(out, strconv.AppendInt(c.numBuf[:0], int64(col), 10)...)
	return append(out, 'H')
}

func (c *Canvas) appendFg(out []byte, col Color) []byte {
	out = append(out, "\033[38;5;"...)
	out = strconv.AppendInt(out, int64(col), 10)
	return append(out, 'm')
}

// RenderBorder frames the canvas when the offsets leave room for it: side
// bars need a spare column, the top and bottom edges a spare row.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	edge := strings.Repeat("─", c.termWidth)

	if top >= 1 {
		cw.WriteAt(left+1, top, edge)
		cw.WriteAt(left+1, bottom, edge)
	}
	if left < 1 {
		return
	}
	for row := top + 1; row < bottom; row++ {
		cw.WriteAt(left, row, "│")
		cw.WriteAt(right, row, "│")
	}
	if top >= 1 {
		cw.WriteAt(left, top, "┌")
		cw.WriteAt(right, top, "┐")
		cw.WriteAt(left, bottom, "└")
		cw.WriteAt(right, bottom, "┘")
	}
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position (col, row), offset included. Use it to place text over sprites.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}
