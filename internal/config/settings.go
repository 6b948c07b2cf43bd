package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration shared by the command binaries.
type Settings struct {
	SSHHost      string
	SSHPort      string
	HostKeyPath  string
	DisplayHost  string // Host name advertised on the spectator page
	SpectateAddr string // Empty disables the spectator HTTP server
	LogLevel     string
	LogFile      string // Empty sends local game logs nowhere
	Seed         int64 // 0 picks a time-based seed
	IdleWarn     time.Duration
	IdleKick     time.Duration
}

const (
	defaultSSHHost      = "::"
	defaultSSHPort      = "2222"
	defaultHostKeyPath  = "/app/keys/host_key"
	defaultDisplayHost  = "localhost"
	defaultSpectateAddr = ":8080"
	defaultLogLevel     = "info"
)

// Load reads an optional .env file from the working directory and then
// builds Settings from the environment. A missing .env is not an error.
func Load(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("load env file: %w", err)
	}

	s := Settings{
		SSHHost:      GetEnv("SSH_HOST", defaultSSHHost),
		SSHPort:      GetEnv("SSH_PORT", defaultSSHPort),
		HostKeyPath:  GetEnv("SSH_HOST_KEY", defaultHostKeyPath),
		DisplayHost:  GetEnv("SSH_DISPLAY_HOST", defaultDisplayHost),
		SpectateAddr: GetEnv("SPECTATE_ADDR", defaultSpectateAddr),
		LogLevel:     GetEnv("LOG_LEVEL", defaultLogLevel),
		LogFile:      GetEnv("LOG_FILE", ""),
		Seed:         GetEnvInt64("GAME_SEED", 0),
		IdleWarn:     GetEnvDuration("IDLE_WARN", InactivityWarnUser),
		IdleKick:     GetEnvDuration("IDLE_KICK", InactivityDisconnectUser),
	}

	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return Settings{}, fmt.Errorf("LOG_LEVEL %q: %w", s.LogLevel, err)
	}
	if s.IdleKick != 0 && s.IdleKick < s.IdleWarn {
		return Settings{}, fmt.Errorf("IDLE_KICK (%s) must not be shorter than IDLE_WARN (%s)", s.IdleKick, s.IdleWarn)
	}
	return s, nil
}

// NewLogger returns a timestamped logger writing to w at the given level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "qwerfighter",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// ConnectHint is the command players run to join the SSH server.
func (s Settings) ConnectHint() string {
	if s.SSHPort == "22" {
		return "ssh " + s.DisplayHost
	}
	return "ssh -p " + s.SSHPort + " " + s.DisplayHost
}
