// Package game is the fixed-tick combat simulation: it consumes one input
// snapshot per tick and produces one read-only world snapshot per tick.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/qwerfighter/internal/clock"
	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/input"
	"github.com/tomz197/qwerfighter/internal/object"
	"github.com/tomz197/qwerfighter/internal/physics"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Screen object.Screen
	Sizes  object.Sizes
	Source clock.Source // Real-time source behind the game clock
	Rand   *rand.Rand
	Logger *log.Logger
}

// Stats counts what happened during the current game.
type Stats struct {
	GruntsSpawned int `json:"grunts_spawned"`
	BossesSpawned int `json:"bosses_spawned"`
	GruntsKilled  int `json:"grunts_killed"`
	BossesKilled  int `json:"bosses_killed"`
}

// Engine runs one single-player game. It is not safe for concurrent use;
// share the snapshots it returns instead.
type Engine struct {
	screen object.Screen
	sizes  object.Sizes
	rng    *rand.Rand
	logger *log.Logger

	clock  *clock.Pausable
	reg    Registry
	ledger Ledger
	state  State
	stats  Stats
	tick   uint64
	scroll float64 // Backdrop offset, advances while playing

	gruntTimer object.Cooldown
	bossTimer  object.Cooldown
	fireTimer  object.Cooldown

	grid *physics.Grid
}

// New creates an engine with a fresh game in the Playing state.
func New(opts Options) *Engine {
	if opts.Screen == (object.Screen{}) {
		opts.Screen = object.DefaultScreen()
	}
	if opts.Sizes == nil {
		opts.Sizes = object.DefaultSizes()
	}
	if opts.Source == nil {
		opts.Source = clock.System{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	e := &Engine{
		screen: opts.Screen,
		sizes:  opts.Sizes,
		rng:    opts.Rand,
		logger: opts.Logger,
		clock:  clock.NewPausable(opts.Source),
		grid:   physics.NewGrid(opts.Screen.Width, opts.Screen.Height, gridCellSize),
	}
	e.reg.Player = object.NewPlayer(e.screen, e.sizes.Of(object.KindPlayer))
	e.Reset()
	return e
}

// Reset reinitializes the whole world: new clock epoch, zero score, empty
// registry and a fresh player.
func (e *Engine) Reset() {
	e.clock.Reset()
	e.reg.Clear()
	e.reg.Player.Reset(e.screen)
	e.ledger.Reset()
	e.state = StatePlaying
	e.stats = Stats{}
	e.scroll = 0

	e.gruntTimer = object.NewCooldown(config.GruntInterval)
	e.bossTimer = object.NewCooldown(config.BossInterval)
	e.bossTimer.Trigger(0) // first boss one full interval in
	e.fireTimer = object.NewCooldown(config.FireInterval)
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Score returns the current score.
func (e *Engine) Score() int { return e.ledger.Score() }

// Registry exposes the live entities. Callers must treat it as read-only.
func (e *Engine) Registry() *Registry { return &e.reg }

// Tick advances the game by one step and returns the resulting snapshot.
//
// A tick that changes the state (pause, resume, restart) does nothing else.
// Quit is left to the caller.
func (e *Engine) Tick(in input.Input) *Snapshot {
	e.tick++

	switch e.state {
	case StateGameOver:
		if in.Restart {
			e.Reset()
			e.logger.Debug("game restarted")
		}
		return e.snapshot()

	case StatePaused:
		if in.Pause {
			e.clock.Resume()
			e.state = StatePlaying
			e.logger.Debug("game resumed", "paused_for", e.clock.PausedFor())
		}
		return e.snapshot()

	case StatePlaying:
		if in.Pause {
			e.clock.Pause()
			e.state = StatePaused
			e.logger.Debug("game paused", "score", e.ledger.Score())
			return e.snapshot()
		}
	}

	now := e.clock.Elapsed()
	e.useAbilities(in, now)
	e.emit(now)
	e.spawnEnemies(now)
	e.move(in)
	e.resolve()
	e.settle(now)
	return e.snapshot()
}

// move advances every entity one step and culls what left the screen.
func (e *Engine) move(in input.Input) {
	ctx := object.UpdateContext{Input: in, Screen: e.screen, Target: e.reg.Target}
	p := e.reg.Player

	p.Move(in, e.screen)

	for _, g := range e.reg.Grunts.Snapshot() {
		if g.Update(ctx) {
			e.reg.Grunts.Remove(g)
		}
	}
	for _, b := range e.reg.Bosses.Snapshot() {
		if b.Update(ctx) {
			e.reg.Bosses.Remove(b)
		}
	}
	for _, group := range []*Group[*object.Shot]{&e.reg.Shots, &e.reg.Charged, &e.reg.Barrage} {
		for _, s := range group.Snapshot() {
			if s.Update(ctx) {
				group.Remove(s)
			}
		}
	}
	for _, h := range e.reg.Homing.Snapshot() {
		if h.Update(ctx) {
			e.reg.Homing.Remove(h)
		}
	}
	for _, o := range p.Orbiters {
		o.Advance()
		o.Place(p)
	}

	e.scroll++
	if e.scroll > e.screen.Height {
		e.scroll = 0
	}
}

// settle runs the end-of-tick bookkeeping: healing, the heal visual timer and
// orbiter tier sync.
func (e *Engine) settle(now time.Duration) {
	p := e.reg.Player

	if e.state == StatePlaying && e.ledger.HealDue() {
		p.Health += config.HealAmount
		p.HealActive = true
		p.HealStart = now
		e.logger.Debug("healed", "health", p.Health, "score", e.ledger.Score())
	}
	if p.HealActive && now-p.HealStart >= config.HealVisualTime {
		p.HealActive = false
	}

	e.syncOrbiters()
}

func (e *Engine) gameOver() {
	e.state = StateGameOver
	e.logger.Debug("game over", "score", e.ledger.Score(), "tick", e.tick)
}
