package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hexhaven/internal/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexhaven.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9000
game:
  omens: true
  bot_delay: 250ms
store:
  path: /tmp/games.db
log:
  level: debug
`)
	t.Setenv("HEXHAVEN_PORT", "9100")
	t.Setenv("HEXHAVEN_VICTORY_POINTS", "12")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("got port %d, want 9100", cfg.Server.Port)
	}
	if cfg.Game.VictoryPoints != 12 || !cfg.Game.Omens || cfg.Game.BotDelay != 250*time.Millisecond {
		t.Fatalf("unexpected game config %+v", cfg.Game)
	}
	if cfg.Store.Path != "/tmp/games.db" {
		t.Fatalf("got store path %q", cfg.Store.Path)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("got level %v, want debug", cfg.SlogLevel())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"port", "server:\n  port: 70000\n", "server.port"},
		{"points", "game:\n  victory_points: 1\n", "victory_points"},
		{"level", "log:\n  level: loud\n", "log.level"},
		{"yaml", "server: [\n", "parse config"},
	}
	for _, tt := range tests {
		_, err := config.Load(writeFile(t, tt.body))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: got %v, want error containing %q", tt.name, err, tt.want)
		}
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("HEXHAVEN_PORT", "eighty")
	if _, err := config.Load(""); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("got %v, want parse env error", err)
	}
}
