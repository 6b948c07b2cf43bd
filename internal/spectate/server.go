// Package spectate serves a read-only view of running games over HTTP: a
// JSON API describing live sessions and a websocket stream of snapshots.
package spectate

import (
	_ "embed"
	"errors"
	"html"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"github.com/tomz197/qwerfighter/internal/config"
	"github.com/tomz197/qwerfighter/internal/game"
	"github.com/tomz197/qwerfighter/internal/lobby"
)

//go:embed index.html
var indexHTML string

const sessionKey = "session"

// Options configures the spectator server.
type Options struct {
	Hub          *lobby.Hub
	Logger       *log.Logger
	Interval     time.Duration // Snapshot push period; defaults to the tick time
	AllowOrigins string        // CORS origins; defaults to "*"
	ConnectHint  string        // Shown on the index page, e.g. "ssh -p 2222 host"
}

// New builds the spectator app. Call Listen on the result to serve it.
func New(opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Interval <= 0 {
		opts.Interval = config.TickTime
	}
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}
	s := &server{hub: opts.Hub, logger: opts.Logger, interval: opts.Interval}

	app := fiber.New(fiber.Config{
		AppName:               "qwerfighter spectate",
		DisableStartupMessage: true,
	})

	app.Use(logger.New(logger.Config{
		Format: "${status} ${method} ${path} ${latency}",
		Output: opts.Logger.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}).Writer(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: "GET, OPTIONS",
	}))

	page := []byte(strings.ReplaceAll(indexHTML, "{{.Connect}}", html.EscapeString(opts.ConnectHint)))
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.Send(page)
	})

	api := app.Group("/api")
	api.Get("/health", s.health)
	api.Get("/sessions", s.listSessions)
	api.Get("/sessions/:id", s.getSession)

	app.Get("/ws/sessions/:id", s.upgrade, websocket.New(s.stream))

	return app
}

type server struct {
	hub      *lobby.Hub
	logger   *log.Logger
	interval time.Duration
}

func (s *server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"sessions": s.hub.Len(),
		"time":     time.Now().Format(time.RFC3339),
	})
}

func (s *server) listSessions(c *fiber.Ctx) error {
	return c.JSON(s.hub.List())
}

func (s *server) getSession(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"info":     sess.Info(),
		"snapshot": sess.Latest(),
	})
}

// lookup resolves the :id parameter to a live session.
func (s *server) lookup(c *fiber.Ctx) (*lobby.Session, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	sess, err := s.hub.Session(uint64(id))
	if errors.Is(err, lobby.ErrUnknownSession) {
		return nil, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return sess, err
}

// upgrade only lets websocket handshakes for live sessions through.
func (s *server) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	c.Locals(sessionKey, sess)
	return c.Next()
}

// stream pushes the session's latest snapshot as JSON whenever it changes,
// until the session ends or the spectator disconnects.
func (s *server) stream(conn *websocket.Conn) {
	sess, ok := conn.Locals(sessionKey).(*lobby.Session)
	if !ok {
		return
	}
	logger := s.logger.With("session", sess.ID, "remote", conn.RemoteAddr().String())
	logger.Info("spectator joined")
	defer logger.Info("spectator left")

	// Spectators never send anything meaningful; reading only detects close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var sent *game.Snapshot
	for {
		select {
		case <-sess.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		case <-gone:
			return
		case <-ticker.C:
			snap := sess.Latest()
			if snap == nil || snap == sent {
				continue
			}
			if err := conn.WriteJSON(snap); err != nil {
				logger.Debug("write failed", "err", err)
				return
			}
			sent = snap
		}
	}
}
