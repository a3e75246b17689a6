// Package config provides YAML-based runtime configuration for brawl
// sessions: population, display pacing, storage, logging and SSH hosting.
// Gameplay tuning is fixed in the simulation and not configurable.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid")

// Config contains all runtime configuration.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// SessionConfig defines how a new arena is populated.
type SessionConfig struct {
	Variant    string           `yaml:"variant"`    // registered variant id
	Bots       int              `yaml:"bots"`       // 0 = pick 5..10 from the seed
	Seed       int64            `yaml:"seed"`       // 0 = current time
	Difficulty DifficultyPreset `yaml:"difficulty"` // overrides bots when set
}

// DisplayConfig defines terminal presentation.
type DisplayConfig struct {
	FPS     int    `yaml:"fps"`
	Sprites string `yaml:"sprites"` // custom sprite file, empty = built-in
}

// StorageConfig defines match history storage.
type StorageConfig struct {
	DB string `yaml:"db"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty = stderr
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// Population resolves the bot count, letting a difficulty preset win.
func (c SessionConfig) Population() int {
	if c.Difficulty != "" {
		return PopulationForPreset(c.Difficulty)
	}
	return c.Bots
}

// Validate checks every setting and reports the first problem.
func (c Config) Validate() error {
	if b := c.Session.Bots; b != 0 && (b < 5 || b > 10) {
		return fmt.Errorf("%w: session.bots must be 0 or 5..10, got %d", ErrInvalid, b)
	}
	if d := c.Session.Difficulty; d != "" && !d.Valid() {
		return fmt.Errorf("%w: session.difficulty %q", ErrInvalid, d)
	}
	if c.Display.FPS <= 0 || c.Display.FPS > 240 {
		return fmt.Errorf("%w: display.fps must be in 1..240, got %d", ErrInvalid, c.Display.FPS)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
		}
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("%w: ssh.idle_timeout_minutes must not be negative", ErrInvalid)
	}
	return nil
}
