package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-brawl/internal/config"
	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/games/brawl"
	"github.com/vovakirdan/tui-brawl/internal/storage"
)

// loadSettings reads the config file and applies explicitly set flags on top.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.FPS = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Session.Seed = flagSeed
	}
	if flags.Changed("bots") {
		cfg.Session.Bots = flagBots
	}
	if flags.Changed("difficulty") {
		cfg.Session.Difficulty = config.DifficultyPreset(flagDifficulty)
	}
	if flags.Changed("db") {
		cfg.Storage.DB = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Changed("sprites") {
		cfg.Display.Sprites = flagSprites
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	brawl.SetSpritePath(cfg.Display.Sprites)
	return cfg, nil
}

// mustSettings is loadSettings for Run handlers: it exits on failure.
func mustSettings(cmd *cobra.Command) config.Config {
	cfg, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the logger described by cfg. The terminal UI owns the
// screen, so with quiet set logs only go to a file.
func newLogger(cfg config.LogConfig, prefix string, quiet bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closer := func() {}

	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			closer()
			return nil, func() {}, err
		}
		logger.SetLevel(level)
	}

	brawl.SetLogger(logger)
	return logger, closer, nil
}

// runtimeConfig builds the session config, sized to the current terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := cfg.Session.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Display.FPS,
		Seed:     seed,
		Bots:     cfg.Session.Population(),
	}
}

// openStore opens match history; failure degrades to no history.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		return nil
	}
	return store
}
