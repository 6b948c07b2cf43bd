// Package loop drives a terminal client: it reads keys, ticks a private game
// engine at a fixed rate and renders each snapshot with ANSI half blocks.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/qwerfighter/internal/clock"
	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/draw"
	"github.com/tomz197/qwerfighter/internal/game"
	"github.com/tomz197/qwerfighter/internal/input"
	"github.com/tomz197/qwerfighter/internal/lobby"
)

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Hub          *lobby.Hub // Optional; publishes snapshots for spectators
	Logger       *log.Logger
	Seed         int64 // 0 picks a time-based seed per game
	IdleWarn     time.Duration
	IdleKick     time.Duration // 0 disables the inactivity kick
	Source       clock.Source
}

// Client handles rendering and input for a single terminal.
type Client struct {
	opts         Options
	engine       *game.Engine
	session      *lobby.Session
	state        *ClientState
	canvas       *draw.Canvas
	cw           *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Source == nil {
		opts.Source = clock.System{}
	}

	termWidth, termHeight, _ := opts.TermSizeFunc()
	l := fit(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(l.cols, l.rows, config.ScreenWidth, config.ScreenHeight)
	canvas.SetOffset(l.offCol, l.offRow)

	c := &Client{
		opts:         opts,
		state:        NewClientState(),
		canvas:       canvas,
		cw:           draw.NewChunkWriter(w),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: opts.TermSizeFunc,
		logger:       opts.Logger,
	}
	if opts.Hub != nil {
		c.session = opts.Hub.Register(opts.Username)
		c.logger = c.logger.With("session", c.session.ID)
	}
	return c
}

// Session returns the lobby session, or nil when running without a hub.
func (c *Client) Session() *lobby.Session {
	return c.session
}

// Run starts the client loop. Blocks until the player quits, goes idle for
// too long, the server shuts down or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	if c.session != nil {
		defer c.opts.Hub.Unregister(c.session.ID)
	}

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	ticker := time.NewTicker(config.TickTime)
	defer ticker.Stop()

	lastTime := time.Now()
	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processHubEvents()
		c.updateScreen()

		switch c.state.Phase {
		case PhaseTitle:
			if c.state.Input.Restart {
				c.startGame()
			}
		case PhaseGame:
			c.tick()
		case PhaseShutdown:
			c.state.shutdownTimer -= c.state.delta.Seconds()
			if c.state.shutdownTimer <= 0 {
				c.state.Running = false
			}
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			c.state.Running = false
		case <-ticker.C:
		}
	}

	draw.ResetStyle(c.writer)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's keys and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput)
	switch {
	case c.state.Input.Active():
		c.lastInput = time.Now()
		c.state.isInactive = false
	case c.opts.IdleKick > 0 && idle > c.opts.IdleKick:
		c.logger.Info("kicked for inactivity", "idle", idle.Round(time.Second))
		c.state.Running = false
	case c.opts.IdleWarn > 0 && idle > c.opts.IdleWarn:
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processHubEvents handles notifications from the lobby.
func (c *Client) processHubEvents() {
	if c.session == nil {
		return
	}
	for {
		select {
		case ev := <-c.session.Events:
			if ev.Type == lobby.EventServerShutdown && c.state.Phase != PhaseShutdown {
				c.state.Phase = PhaseShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// startGame creates a fresh engine and switches to the game screen.
func (c *Client) startGame() {
	seed := c.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c.engine = game.New(game.Options{
		Source: c.opts.Source,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: c.logger,
	})
	c.state.Phase = PhaseGame
	c.logger.Debug("game started", "seed", seed)
}

// tick advances the engine one step and publishes the result.
func (c *Client) tick() {
	prev := c.engine.State()
	snap := c.engine.Tick(c.state.Input)
	c.state.Snapshot = snap
	if c.session != nil {
		c.session.Publish(snap)
	}
	if prev != game.StateGameOver && snap.State == game.StateGameOver {
		c.logger.Info("game over", "score", snap.Score, "ticks", snap.Tick)
	}
}

// updateScreen handles terminal resize. On an actual layout change the
// terminal is cleared so old borders do not linger.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	l := fit(termWidth, termHeight)
	if l.cols != c.canvas.TerminalWidth() || l.rows != c.canvas.TerminalHeight() ||
		l.offCol != c.canvas.OffsetCol() || l.offRow != c.canvas.OffsetRow() {
		c.cw.WriteString("\033[H\033[2J")
		c.canvas.Resize(l.cols, l.rows)
		c.canvas.SetOffset(l.offCol, l.offRow)
		c.canvas.ForceRedraw()
	}
}

// hudRows is the space above the playfield: one HUD line plus the border.
const hudRows = 2

// layout is where the playfield sits in the terminal.
type layout struct {
	cols, rows     int
	offCol, offRow int
}

// fit sizes the portrait playfield into the terminal, keeping its aspect
// ratio. A terminal cell holds two square-ish pixels stacked vertically.
func fit(termWidth, termHeight int) layout {
	rows := min(termHeight-hudRows-1, config.MaxTermHeight)
	cols := rows * 2 * config.ScreenWidth / config.ScreenHeight
	if limit := min(termWidth-2, config.MaxTermWidth); cols > limit {
		cols = limit
		rows = cols * config.ScreenHeight / config.ScreenWidth / 2
	}
	l := layout{cols: max(cols, 1), rows: max(rows, 1)}
	l.offCol = max((termWidth-l.cols)/2, 0)
	l.offRow = hudRows + max((termHeight-hudRows-1-l.rows)/2, 0)
	return l
}
