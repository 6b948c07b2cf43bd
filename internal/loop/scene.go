package loop

import (
	"math"

	"github.com/tomz197/qwerfighter/internal/draw"
	"github.com/tomz197/qwerfighter/internal/game"
	"github.com/tomz197/qwerfighter/internal/object"
)

const starCount = 40

var shotColors = map[object.Kind]draw.Color{
	object.KindPlayerShot:  draw.ColorYellow,
	object.KindChargedShot: draw.ColorWhite,
	object.KindBarrageShot: draw.ColorPink,
	object.KindHomingShot:  draw.ColorGreen,
}

// drawScene paints one snapshot onto the canvas, back to front.
func drawScene(cv *draw.Canvas, snap *game.Snapshot) {
	drawStars(cv, snap.Screen, snap.Scroll)

	for _, ent := range snap.Entities {
		switch ent.Kind {
		case object.KindGrunt:
			cv.FillCircle(ent.X, ent.Y, ent.W, ent.H, draw.ColorOrange)
		case object.KindBoss:
			cv.FillRect(ent.X, ent.Y, ent.W, ent.H, draw.ColorPurple)
			cv.StrokeRect(ent.X, ent.Y, ent.W, ent.H, draw.ColorRed)
		case object.KindOrbiter:
			cv.FillCircle(ent.X, ent.Y, ent.W, ent.H, draw.ColorRed)
		case object.KindShield:
			cv.StrokeRect(ent.X, ent.Y, ent.W, ent.H, draw.ColorBlue)
		case object.KindHeal:
			cv.StrokeRect(ent.X, ent.Y, ent.W, ent.H, draw.ColorGreen)
		default:
			if col, ok := shotColors[ent.Kind]; ok {
				cv.FillRect(ent.X, ent.Y, ent.W, ent.H, col)
			}
		}
	}

	if snap.Player.Health > 0 {
		drawShip(cv, snap.Player)
	}
}

// drawShip draws the player as an upward triangle filling its box.
func drawShip(cv *draw.Canvas, p game.PlayerView) {
	cv.DrawPolygon([]draw.Point{
		{X: p.X + p.W/2, Y: p.Y},
		{X: p.X + p.W, Y: p.Y + p.H},
		{X: p.X, Y: p.Y + p.H},
	}, draw.ColorCyan, true)
}

// drawStars scatters a fixed star field that drifts down with scroll.
// Every third star moves faster for a bit of parallax.
func drawStars(cv *draw.Canvas, screen object.Screen, scroll float64) {
	if screen.Width <= 0 || screen.Height <= 0 {
		return
	}
	for i := range starCount {
		x := math.Mod(float64(i*977), screen.Width)
		speed := 1.0
		if i%3 == 0 {
			speed = 2
		}
		y := math.Mod(float64(i*613)+scroll*speed, screen.Height)
		cv.SetFloat(x, y, draw.ColorGray)
	}
}
