package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/qwerfighter/internal/game"
	"github.com/tomz197/qwerfighter/internal/object"
)

var titleArt = []string{
	"  ___  _    _ _____ ____  ",
	" / _ \\| |  | | ____|  _ \\ ",
	"| | | | |  | |  _| | |_) |",
	"| |_| | |/\\| | |___|  _ < ",
	" \\__\\_\\__/\\__|_____|_| \\_\\",
	"     F I G H T E R        ",
}

var controls = []string{
	"h j k l / arrows  move",
	"q  charged shot",
	"w  barrage",
	"e  shield",
	"r  homing missile",
	"tab  pause    x  quit",
}

// drawFrame renders the playfield, then text on top of it, and flushes the
// whole frame in one go.
func (c *Client) drawFrame() error {
	c.clearOnTransition()

	c.canvas.Clear()
	if c.state.Phase == PhaseGame && c.state.Snapshot != nil {
		drawScene(c.canvas, c.state.Snapshot)
	}
	if err := c.canvas.Render(c.cw); err != nil {
		return err
	}
	c.canvas.RenderBorder(c.cw)

	switch {
	case c.state.Phase == PhaseShutdown:
		c.drawShutdownScreen()
	case c.state.isInactive:
		c.drawInactivityWarning()
	case c.state.Phase == PhaseTitle:
		c.drawTitleScreen()
	case c.state.Snapshot != nil:
		c.drawHUD(c.state.Snapshot)
		switch c.state.Snapshot.State {
		case game.StatePaused:
			c.drawPaused()
		case game.StateGameOver:
			c.drawGameOver(c.state.Snapshot)
		}
	}

	return c.cw.Flush()
}

// clearOnTransition wipes the terminal when the screen changes so stale
// text from the previous screen does not survive the diff renderer.
func (c *Client) clearOnTransition() {
	gameState := game.StatePlaying
	if c.state.Snapshot != nil {
		gameState = c.state.Snapshot.State
	}
	if c.state.Phase == c.state.prevPhase && gameState == c.state.prevGame &&
		c.state.isInactive == c.state.wasInactive {
		return
	}
	c.cw.WriteString("\033[H\033[2J")
	c.canvas.ForceRedraw()
	c.state.prevPhase = c.state.Phase
	c.state.prevGame = gameState
	c.state.wasInactive = c.state.isInactive
}

// center returns the 1-based terminal cell in the middle of the playfield.
func (c *Client) center() (col, row int) {
	return c.canvas.OffsetCol() + c.canvas.TerminalWidth()/2 + 1,
		c.canvas.OffsetRow() + c.canvas.TerminalHeight()/2 + 1
}

// text writes s centred on col and marks the covered canvas cells so they
// are repainted once the text goes away.
func (c *Client) text(col, row int, s string) {
	n := len([]rune(s))
	c.cw.WriteCentered(col, row, s)
	c.canvas.MarkTextDirty(max(col-n/2, 1), row, n)
}

func (c *Client) drawTitleScreen() {
	col, row := c.center()
	top := row - len(titleArt) - 1
	for i, line := range titleArt {
		c.text(col, top+i, line)
	}
	for i, line := range controls {
		c.text(col, row+1+i, line)
	}
	c.text(col, row+len(controls)+2, "Press SPACE to start")
}

func (c *Client) drawPaused() {
	col, row := c.center()
	c.text(col, row-1, "P A U S E D")
	c.text(col, row+1, "Press TAB to resume")
}

func (c *Client) drawGameOver(snap *game.Snapshot) {
	col, row := c.center()
	c.text(col, row-2, "G A M E   O V E R")
	c.text(col, row, fmt.Sprintf("Final score: %d", snap.Score))
	c.text(col, row+1, fmt.Sprintf("Survived %s", snap.Elapsed.Round(time.Second)))
	c.text(col, row+3, "Press SPACE to play again")
}

func (c *Client) drawInactivityWarning() {
	col, row := c.center()
	c.text(col, row-1, "Are you still there?")
	c.text(col, row+1, "Press any key to continue")
}

func (c *Client) drawShutdownScreen() {
	col, row := c.center()
	c.text(col, row-1, "Server is shutting down")
	c.text(col, row+1, fmt.Sprintf("Disconnecting in %d...", max(int(c.state.shutdownTimer+0.999), 0)))
}

// drawHUD writes score, health and the ability strip on the line above the
// playfield. Fields are padded so shorter values overwrite longer ones.
func (c *Client) drawHUD(snap *game.Snapshot) {
	left := c.canvas.OffsetCol() + 1
	width := c.canvas.TerminalWidth()

	status := fmt.Sprintf("SCORE %-7d HP %-4d", snap.Score, snap.Player.Health)
	c.cw.WriteAt(left, 1, status)

	strip := abilityStrip(snap.Abilities)
	c.cw.WriteAt(max(left+width-len(strip), left+len(status)+1), 1, strip)
}

var abilityKeys = [object.AbilityCount]string{"Q", "W", "E", "R"}

// abilityStrip renders each ability as its key and a fixed-width status.
func abilityStrip(views []game.AbilityView) string {
	var sb strings.Builder
	for i, v := range views {
		if i > 0 {
			sb.WriteByte(' ')
		}
		key := "?"
		if v.Ability < object.AbilityCount {
			key = abilityKeys[v.Ability]
		}
		fmt.Fprintf(&sb, "%s:%-4s", key, abilityStatus(v))
	}
	return sb.String()
}

func abilityStatus(v game.AbilityView) string {
	switch {
	case v.Locked:
		return "lock"
	case v.Phase == object.PhaseReady:
		return "ok"
	case v.Phase == object.PhaseActive:
		return "on"
	}
	secs := min(int((v.Remaining+time.Second-1)/time.Second), 99)
	return fmt.Sprintf("%ds", secs)
}
