// Package input turns raw terminal bytes into per-tick input snapshots.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its
// last byte arrived. Terminals only report repeats, never releases.
const keyHoldDuration = 60 * time.Millisecond

// Input is the snapshot the engine consumes once per tick.
// Movement is held; every other field is true only on the tick its key arrived.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Charged bool // q
	Barrage bool // w
	Shield  bool // e
	Homing  bool // r

	Pause   bool // Tab or p
	Restart bool // Enter or Space
	Quit    bool // Ctrl-C or x

	Pressed []byte // Raw bytes drained this tick
}

// Active reports whether the player touched any key this tick.
func (in Input) Active() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks held keys between ticks.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream yields Quit so the caller's loop ends.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				s.ch = nil
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := parse(&s.state, buf, time.Now())
	if s.closed {
		in.Quit = true
	}
	return in
}

// parse folds a batch of raw bytes into the held-key state and builds the
// snapshot for instant now.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
			case 'B':
				state.down = now
			case 'C':
				state.right = now
			case 'D':
				state.left = now
			}
			i += 2
			continue
		}

		applyByte(state, &in, b, now)
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	return in
}

// applyByte records a single key: movement keys refresh their hold timestamp,
// everything else fires once.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'h', 'H':
		state.left = now
	case 'l', 'L':
		state.right = now
	case 'k', 'K':
		state.up = now
	case 'j', 'J':
		state.down = now
	case 'q', 'Q':
		in.Charged = true
	case 'w', 'W':
		in.Barrage = true
	case 'e', 'E':
		in.Shield = true
	case 'r', 'R':
		in.Homing = true
	case '\t', 'p', 'P':
		in.Pause = true
	case '\n', '\r', ' ':
		in.Restart = true
	case '\x03', 'x', 'X':
		in.Quit = true
	}
}
