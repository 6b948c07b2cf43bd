package loop

import (
	"time"

	"github.com/tomz197/qwerfighter/internal/game"
	"github.com/tomz197/qwerfighter/internal/input"
)

// Phase is the client's top-level screen.
type Phase int

const (
	PhaseTitle    Phase = iota // Title screen with controls
	PhaseGame                  // Engine running: playing, paused or game over
	PhaseShutdown              // Server is shutting down
)

// ClientState holds everything one terminal client tracks between frames.
type ClientState struct {
	Phase    Phase
	Input    input.Input
	Snapshot *game.Snapshot // Last snapshot produced by the engine
	Running  bool

	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Seconds before auto-disconnect on shutdown
	isInactive    bool          // Showing the inactivity warning

	// Used to detect transitions that need a full terminal clear.
	prevPhase   Phase
	prevGame    game.State
	wasInactive bool
}

// NewClientState creates a client sitting on the title screen.
func NewClientState() *ClientState {
	return &ClientState{
		Phase:   PhaseTitle,
		Running: true,
	}
}
