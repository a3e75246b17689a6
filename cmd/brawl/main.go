// brawl is a side-scrolling arena fighter for the terminal.
//
// Usage:
//
//	brawl list               - List available arenas
//	brawl play [arena]       - Fight in an arena
//	brawl menu               - Pick arenas interactively
//	brawl sim [arena]        - Run a headless autopilot session
//	brawl serve              - Start SSH server for remote play
//	brawl scores [arena]     - Show match history
//
// Global flags:
//
//	--config <path>       - Runtime config YAML
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible sessions
//	--bots <n>            - Bot population, 5..10 (0 = random)
//	--difficulty <name>   - easy, normal or hard
//	--db <path>           - Set database path (default: ~/.brawl/history.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-brawl/internal/games/brawl"
)

var (
	// Global flags
	flagConfig     string
	flagFPS        int
	flagSeed       int64
	flagBots       int
	flagDifficulty string
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
	flagSprites    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brawl",
	Short: "TUI Brawl - side-scrolling arena fights in your terminal",
	Long: `TUI Brawl drops you into a walled arena with five to ten bots.
Walk, sprint, swing, and manage your stamina to clear the arena.

Available commands:
  list     - Show all available arenas
  play     - Fight in an arena directly
  menu     - Interactive arena picker
  sim      - Headless autopilot session
  serve    - Start SSH server for remote play
  scores   - View match history

Examples:
  brawl list
  brawl play
  brawl play horde --seed 42
  brawl menu --difficulty hard
  brawl sim demo --duration 60
  brawl serve --ssh :2222
  brawl scores brawl`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to runtime config YAML")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&flagBots, "bots", 0, "Bot population 5..10 (0 = random)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagDBPath, "db", "~/.brawl/history.db", "Path to match history database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagSprites, "sprites", "", "Path to custom sprite YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
