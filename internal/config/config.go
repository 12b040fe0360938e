// Package config loads server settings from an optional YAML file, then
// applies HEXHAVEN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server Server `yaml:"server" envPrefix:"HEXHAVEN_"`
	Game   Game   `yaml:"game" envPrefix:"HEXHAVEN_"`
	Store  Store  `yaml:"store" envPrefix:"HEXHAVEN_"`
	Log    Log    `yaml:"log" envPrefix:"HEXHAVEN_"`
}

type Server struct {
	Port int `yaml:"port" env:"PORT"`
	// BaseURL overrides the host part of join links, e.g. behind a proxy.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

type Game struct {
	VictoryPoints int           `yaml:"victory_points" env:"VICTORY_POINTS"`
	Omens         bool          `yaml:"omens" env:"OMENS"`
	BotDelay      time.Duration `yaml:"bot_delay" env:"BOT_DELAY"`
	// Seed fixes board and dice randomness; 0 seeds from the clock.
	Seed uint64 `yaml:"seed" env:"SEED"`
}

type Store struct {
	// Path of the SQLite snapshot database; empty disables persistence.
	Path string `yaml:"path" env:"STORE_PATH"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

func Default() Config {
	return Config{
		Server: Server{Port: 8080},
		Game:   Game{VictoryPoints: 10, BotDelay: 800 * time.Millisecond},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error so the
// server runs with no config at all.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Game.VictoryPoints < 3 {
		return fmt.Errorf("game.victory_points must be at least 3, got %d", c.Game.VictoryPoints)
	}
	if c.Game.BotDelay < 0 {
		return fmt.Errorf("game.bot_delay must not be negative")
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel maps Log.Level onto slog; unknown names fall back to info.
func (c Config) SlogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}
