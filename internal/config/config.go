// Package config provides YAML-based configuration loading for t2048.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Config contains all t2048 settings.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Seed    int64         `yaml:"seed"` // 0 = time-based
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// StorageConfig defines where results are persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate reports the first invalid setting.
// A bad board size wraps engine.ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Board.Size < engine.MinSize {
		return fmt.Errorf("config: board.size: %w: %d is below %d",
			engine.ErrInvalidConfiguration, c.Board.Size, engine.MinSize)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("config: server.address must not be empty")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative")
	}
	return nil
}

// LogLevel returns the parsed log level, or info if it is invalid.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
