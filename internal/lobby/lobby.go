// Package lobby tracks the games running on a server. Every session owns its
// own engine; the lobby only knows who is connected and what each one last
// published, so spectators can look in.
package lobby

import (
	"cmp"
	"errors"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/qwerfighter/internal/game"
)

// ErrUnknownSession is returned when a session id is not registered.
var ErrUnknownSession = errors.New("unknown session")

// EventType identifies the type of session event.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is sent from the hub to a session.
type Event struct {
	Type EventType
}

// Session is one connected player.
type Session struct {
	ID       uint64
	Username string
	Started  time.Time
	Events   chan Event // Hub notifications (shutdown)

	latest    atomic.Pointer[game.Snapshot]
	done      chan struct{}
	closeOnce sync.Once
}

// Publish makes snap the session's latest snapshot. Snapshots must not be
// modified after publishing.
func (s *Session) Publish(snap *game.Snapshot) {
	s.latest.Store(snap)
}

// Latest returns the most recent snapshot, or nil before the first tick.
func (s *Session) Latest() *game.Snapshot {
	return s.latest.Load()
}

// Done is closed when the session unregisters.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Info summarizes a session for listings.
type Info struct {
	ID       uint64     `json:"id"`
	Username string     `json:"username"`
	Started  time.Time  `json:"started"`
	State    game.State `json:"state"`
	Score    int        `json:"score"`
	Tick     uint64     `json:"tick"`
}

// Info summarizes the session using its latest snapshot.
func (s *Session) Info() Info {
	info := Info{ID: s.ID, Username: s.Username, Started: s.Started}
	if snap := s.Latest(); snap != nil {
		info.State = snap.State
		info.Score = snap.Score
		info.Tick = snap.Tick
	}
	return info
}

// Hub is the registry of live sessions. It is safe for concurrent use.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uint64]*Session
	nextID   uint64
	logger   *log.Logger
}

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions: make(map[uint64]*Session),
		logger:   logger,
	}
}

// Register adds a new session and returns it.
func (h *Hub) Register(username string) *Session {
	h.mu.Lock()
	h.nextID++
	s := &Session{
		ID:       h.nextID,
		Username: username,
		Started:  time.Now(),
		Events:   make(chan Event, 4),
		done:     make(chan struct{}),
	}
	h.sessions[s.ID] = s
	count := len(h.sessions)
	h.mu.Unlock()

	h.logger.Info("session registered", "id", s.ID, "user", username, "sessions", count)
	return s
}

// Unregister removes a session. Unregistering twice is harmless.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	count := len(h.sessions)
	h.mu.Unlock()

	if !ok {
		return
	}
	s.close()
	h.logger.Info("session ended", "id", id, "user", s.Username, "sessions", count)
}

// Session looks up a live session.
func (h *Hub) Session(id uint64) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// List describes every live session, oldest first.
func (h *Hub) List() []Info {
	h.mu.RLock()
	infos := make([]Info, 0, len(h.sessions))
	for _, s := range h.sessions {
		infos = append(infos, s.Info())
	}
	h.mu.RUnlock()

	slices.SortFunc(infos, func(a, b Info) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// Shutdown notifies every session that the server is going away and waits
// for them to unregister, up to timeout.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, s := range h.sessions {
		select {
		case s.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for h.Len() > 0 {
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "sessions", h.Len())
			return
		case <-ticker.C:
		}
	}
}
