package lobby

import (
	"errors"
	"testing"
	"time"

	"github.com/tomz197/qwerfighter/internal/game"
)

func TestRegisterAndLookup(t *testing.T) {
	h := NewHub(nil)
	a := h.Register("alice")
	b := h.Register("bob")

	if a.ID == b.ID {
		t.Fatal("sessions share an id")
	}
	got, err := h.Session(b.ID)
	if err != nil || got != b {
		t.Fatalf("Session(%d) = %v, %v", b.ID, got, err)
	}
	if _, err := h.Session(999); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("unknown id error = %v", err)
	}
}

func TestListUsesLatestSnapshot(t *testing.T) {
	h := NewHub(nil)
	a := h.Register("alice")
	b := h.Register("bob")
	b.Publish(&game.Snapshot{Tick: 12, Score: 300, State: game.StatePaused})

	infos := h.List()
	if len(infos) != 2 || infos[0].ID != a.ID || infos[1].ID != b.ID {
		t.Fatalf("List = %+v", infos)
	}
	if infos[0].Tick != 0 || a.Latest() != nil {
		t.Fatal("session without snapshots reported progress")
	}
	if infos[1].Score != 300 || infos[1].State != game.StatePaused || infos[1].Tick != 12 {
		t.Fatalf("info = %+v", infos[1])
	}
}

func TestUnregisterClosesDone(t *testing.T) {
	h := NewHub(nil)
	s := h.Register("carol")
	h.Unregister(s.ID)
	h.Unregister(s.ID)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}
	if h.Len() != 0 {
		t.Fatalf("Len = %d", h.Len())
	}
}

func TestShutdownWaitsForSessions(t *testing.T) {
	h := NewHub(nil)
	s := h.Register("dave")

	go func() {
		ev := <-s.Events
		if ev.Type == EventServerShutdown {
			h.Unregister(s.ID)
		}
	}()

	start := time.Now()
	h.Shutdown(5 * time.Second)
	if h.Len() != 0 {
		t.Fatal("session still registered after shutdown")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("shutdown waited for the full timeout")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	h := NewHub(nil)
	h.Register("eve")

	start := time.Now()
	h.Shutdown(100 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("returned after %v", elapsed)
	}
}
