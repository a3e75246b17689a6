package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawl/internal/platform/tui"
	"github.com/vovakirdan/tui-brawl/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an arena picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select an arena.
After a session ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select arena
  Tab          - Match history
  Q            - Quit

Examples:
  brawl menu
  brawl menu --fps 30
  brawl menu --db ./history.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	settings := mustSettings(cmd)

	logger, closeLog, err := newLogger(settings.Log, "brawl", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(settings.Storage.DB)
	cfg := runtimeConfig(settings)

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
			continue
		}

		// Fresh seed for each session unless one was pinned
		if settings.Session.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, tui.Saver(store), cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running arena: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
