// Package desktop runs the game in a native window through ebiten.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/game"
	"github.com/tomz197/qwerfighter/internal/object"
)

var (
	background = color.RGBA{8, 8, 16, 255}
	starColor  = color.RGBA{110, 110, 130, 255}
	shipColor  = color.RGBA{0, 230, 255, 255}
)

var kindColors = map[object.Kind]color.RGBA{
	object.KindGrunt:       {255, 140, 0, 255},
	object.KindBoss:        {160, 60, 255, 255},
	object.KindPlayerShot:  {255, 230, 40, 255},
	object.KindChargedShot: {255, 255, 255, 255},
	object.KindBarrageShot: {255, 130, 220, 255},
	object.KindHomingShot:  {60, 255, 90, 255},
	object.KindOrbiter:     {255, 50, 50, 255},
	object.KindShield:      {40, 140, 255, 255},
	object.KindHeal:        {60, 255, 90, 255},
}

// Options configures a desktop game.
type Options struct {
	Seed   int64 // 0 picks a time-based seed
	Logger *log.Logger
}

// Game implements ebiten.Game on top of the engine.
type Game struct {
	engine *game.Engine
	snap   *game.Snapshot
	logger *log.Logger
}

// New creates a game ready for ebiten.RunGame.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	opts.Logger.Debug("desktop game", "seed", opts.Seed)
	return &Game{
		engine: game.New(game.Options{
			Rand:   rand.New(rand.NewSource(opts.Seed)),
			Logger: opts.Logger,
		}),
		logger: opts.Logger,
	}
}

// Update advances the engine by one tick. Ebiten calls it at the TPS set by
// the caller, which should be config.TickRate.
func (g *Game) Update() error {
	in := readKeys(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
	if in.Quit {
		return ebiten.Termination
	}
	g.snap = g.engine.Tick(in)
	return nil
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.snap == nil {
		return
	}
	snap := g.snap

	drawStars(screen, snap)
	for _, ent := range snap.Entities {
		clr, ok := kindColors[ent.Kind]
		if !ok {
			continue
		}
		x, y, w, h := float32(ent.X), float32(ent.Y), float32(ent.W), float32(ent.H)
		switch ent.Kind {
		case object.KindGrunt, object.KindOrbiter:
			vector.DrawFilledCircle(screen, x+w/2, y+h/2, w/2, clr, true)
		case object.KindShield, object.KindHeal:
			vector.StrokeRect(screen, x, y, w, h, 2, clr, true)
		default:
			vector.DrawFilledRect(screen, x, y, w, h, clr, false)
		}
	}
	if snap.Player.Health > 0 {
		drawShip(screen, snap.Player)
	}

	ebitenutil.DebugPrint(screen, hud(snap))
	switch snap.State {
	case game.StatePaused:
		centerText(screen, "PAUSED\n\nTab to resume")
	case game.StateGameOver:
		centerText(screen, fmt.Sprintf("GAME OVER\n\nFinal score: %d\nSpace to play again", snap.Score))
	}
}

// Layout keeps the logical playfield size regardless of window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func drawShip(screen *ebiten.Image, p game.PlayerView) {
	x, y, w, h := float32(p.X), float32(p.Y), float32(p.W), float32(p.H)
	noseX, noseY := x+w/2, y
	vector.StrokeLine(screen, noseX, noseY, x+w, y+h, 2, shipColor, true)
	vector.StrokeLine(screen, x+w, y+h, x, y+h, 2, shipColor, true)
	vector.StrokeLine(screen, x, y+h, noseX, noseY, 2, shipColor, true)
}

func drawStars(screen *ebiten.Image, snap *game.Snapshot) {
	for i := range 60 {
		x := math.Mod(float64(i*977), snap.Screen.Width)
		y := math.Mod(float64(i*613)+snap.Scroll*float64(1+i%3), snap.Screen.Height)
		vector.DrawFilledRect(screen, float32(x), float32(y), 2, 2, starColor, false)
	}
}

func hud(snap *game.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SCORE %d  HP %d\n", snap.Score, snap.Player.Health)
	for _, a := range snap.Abilities {
		status := a.Phase.String()
		switch {
		case a.Locked:
			status = "locked"
		case a.Phase == object.PhaseCoolingDown:
			status = fmt.Sprintf("%.1fs", a.Remaining.Seconds())
		}
		fmt.Fprintf(&sb, "%-8s %s\n", a.Ability, status)
	}
	return sb.String()
}

// centerText prints a block of debug text roughly centred on the screen.
// The debug font is 6x16 pixels per glyph.
func centerText(screen *ebiten.Image, msg string) {
	lines := strings.Split(msg, "\n")
	y := config.ScreenHeight/2 - len(lines)*16/2
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.ScreenWidth/2-len(line)*6/2, y+i*16)
	}
}
