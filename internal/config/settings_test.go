package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"SSH_HOST", "SSH_PORT", "SSH_HOST_KEY", "SSH_DISPLAY_HOST", "SPECTATE_ADDR", "LOG_LEVEL", "LOG_FILE", "GAME_SEED", "IDLE_WARN", "IDLE_KICK"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.SSHPort != defaultSSHPort {
		t.Errorf("SSHPort = %q, want %q", s.SSHPort, defaultSSHPort)
	}
	if s.SpectateAddr != defaultSpectateAddr {
		t.Errorf("SpectateAddr = %q, want %q", s.SpectateAddr, defaultSpectateAddr)
	}
	if s.IdleKick != InactivityDisconnectUser {
		t.Errorf("IdleKick = %v, want %v", s.IdleKick, InactivityDisconnectUser)
	}
	if s.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", s.LogFile)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("GAME_SEED", "42")
	t.Setenv("IDLE_WARN", "30s")
	t.Setenv("IDLE_KICK", "1m")
	t.Setenv("LOG_LEVEL", "debug")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.SSHPort != "2323" {
		t.Errorf("SSHPort = %q, want 2323", s.SSHPort)
	}
	if s.Seed != 42 {
		t.Errorf("Seed = %d, want 42", s.Seed)
	}
	if s.IdleWarn != 30*time.Second || s.IdleKick != time.Minute {
		t.Errorf("idle = %v/%v, want 30s/1m", s.IdleWarn, s.IdleKick)
	}
}

func TestLoadZeroIdleKickDisablesKick(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IDLE_KICK", "0s")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.IdleKick != 0 {
		t.Errorf("IdleKick = %v, want 0", s.IdleKick)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	os.Unsetenv("SPECTATE_ADDR")
	t.Cleanup(func() { os.Unsetenv("SPECTATE_ADDR") })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SPECTATE_ADDR=127.0.0.1:9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.SpectateAddr != "127.0.0.1:9999" {
		t.Errorf("SpectateAddr = %q, want value from .env", s.SpectateAddr)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "chatty"}},
		{name: "kick before warn", env: map[string]string{"IDLE_WARN": "2m", "IDLE_KICK": "1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("Load() error = nil, want error")
			}
		})
	}
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("QF_TEST_INT", "nope")
	if got := GetEnvInt64("QF_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvInt64 malformed = %d, want 7", got)
	}
	t.Setenv("QF_TEST_DUR", "1.5s")
	if got := GetEnvDuration("QF_TEST_DUR", time.Second); got != 1500*time.Millisecond {
		t.Errorf("GetEnvDuration = %v, want 1.5s", got)
	}
}

func TestConnectHint(t *testing.T) {
	tests := []struct {
		port string
		want string
	}{
		{"22", "ssh play.example.com"},
		{"2222", "ssh -p 2222 play.example.com"},
	}
	for _, tt := range tests {
		s := Settings{SSHPort: tt.port, DisplayHost: "play.example.com"}
		if got := s.ConnectHint(); got != tt.want {
			t.Errorf("ConnectHint(port %s) = %q, want %q", tt.port, got, tt.want)
		}
	}
}
