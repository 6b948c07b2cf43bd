// Package draw renders to ANSI terminals: a half-block pixel canvas with
// colours, plus helpers for cursor control and chunked output.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockLight     = '░'
)

// Color is a 256-colour palette index. Zero means "nothing drawn".
type Color uint8

// Palette used by the game renderers.
const (
	ColorNone   Color = 0
	ColorRed    Color = 196
	ColorOrange Color = 208
	ColorYellow Color = 226
	ColorGreen  Color = 46
	ColorCyan   Color = 51
	ColorBlue   Color = 33
	ColorPurple Color = 129
	ColorPink   Color = 213
	ColorWhite  Color = 231
	ColorGray   Color = 240
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// ResetStyle clears colours and attributes.
func ResetStyle(w io.Writer) {
	fmt.Fprint(w, "\033[0m")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
