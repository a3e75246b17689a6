package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawl/internal/platform/tui"
	"github.com/vovakirdan/tui-brawl/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [arena]",
	Short: "Fight in an arena",
	Long: `Start a session in the given arena (default: session.variant from config).

Controls:
  A/D, Left/Right        - Walk
  Shift+Left/Right, A/D  - Run (uppercase A/D), costs stamina
  Space/J                - Attack
  P                      - Pause
  R                      - Restart (after death or clearing the arena)
  B/Esc                  - Leave (while paused or after the session ends)
  Q/Ctrl+C               - Quit

Difficulty options:
  easy   - 5 bots
  normal - 5 to 10 bots, chosen by the seed
  hard   - 10 bots

Examples:
  brawl play
  brawl play horde
  brawl play --difficulty easy
  brawl play --seed 42 --log-file brawl.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := mustSettings(cmd)

	gameID := cfg.Session.Variant
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'brawl list' to see available arenas.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log, "brawl", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg.Storage.DB)

	runErr := tui.Run(game, tui.Saver(store), runtimeConfig(cfg), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running arena: %v\n", runErr)
		os.Exit(1)
	}
}
