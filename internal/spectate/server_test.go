package spectate

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"

	"github.com/tomz197/qwerfighter/internal/game"
	"github.com/tomz197/qwerfighter/internal/lobby"
)

func TestHTTPRoutes(t *testing.T) {
	hub := lobby.NewHub(nil)
	alice := hub.Register("alice")
	alice.Publish(&game.Snapshot{Tick: 42, Score: 1200, State: game.StatePlaying})
	app := New(Options{Hub: hub})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"index", "/", http.StatusOK},
		{"health", "/api/health", http.StatusOK},
		{"list", "/api/sessions", http.StatusOK},
		{"known session", "/api/sessions/" + strconv.FormatUint(alice.ID, 10), http.StatusOK},
		{"unknown session", "/api/sessions/999", http.StatusNotFound},
		{"bad id", "/api/sessions/abc", http.StatusBadRequest},
		{"plain request to stream", "/ws/sessions/1", http.StatusUpgradeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				body, _ := io.ReadAll(resp.Body)
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.wantStatus, body)
			}
		})
	}
}

func TestIndexShowsConnectHint(t *testing.T) {
	app := New(Options{Hub: lobby.NewHub(nil), ConnectHint: "ssh -p 2222 <host>"})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ssh -p 2222 &lt;host&gt;") {
		t.Error("index page is missing the escaped connect hint")
	}
}

func TestListSessionsJSON(t *testing.T) {
	hub := lobby.NewHub(nil)
	hub.Register("alice").Publish(&game.Snapshot{Tick: 7, Score: 300, State: game.StateGameOver})
	hub.Register("bob")
	app := New(Options{Hub: hub})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var infos []lobby.Info
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d sessions, want 2", len(infos))
	}
	if infos[0].Username != "alice" || infos[0].State != game.StateGameOver || infos[0].Score != 300 {
		t.Errorf("first session = %+v", infos[0])
	}
	if infos[1].Username != "bob" || infos[1].Tick != 0 {
		t.Errorf("second session = %+v", infos[1])
	}
}

func TestStreamSendsSnapshotsUntilSessionEnds(t *testing.T) {
	hub := lobby.NewHub(nil)
	sess := hub.Register("alice")
	sess.Publish(&game.Snapshot{Tick: 3, Score: 100, State: game.StatePlaying})

	app := New(Options{Hub: hub, Interval: 5 * time.Millisecond})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	defer func() { _ = app.ShutdownWithTimeout(time.Second) }()

	url := "ws://" + ln.Addr().String() + "/ws/sessions/" + strconv.FormatUint(sess.ID, 10)
	conn, _, err := fastws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var snap game.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snap.Tick != 3 || snap.Score != 100 {
		t.Errorf("snapshot = %+v", snap)
	}

	hub.Unregister(sess.ID)
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if !fastws.IsCloseError(err, fastws.CloseNormalClosure) {
			t.Errorf("stream ended with %v, want normal closure", err)
		}
		break
	}
}
