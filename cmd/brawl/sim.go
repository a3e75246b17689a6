package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/games/brawl"
	"github.com/vovakirdan/tui-brawl/internal/platform/tui"
	"github.com/vovakirdan/tui-brawl/internal/registry"
)

var (
	flagDuration float64
	flagNoSave   bool
	flagRender   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [arena]",
	Short: "Run a headless autopilot session",
	Long: `Run a session without a terminal UI. The autopilot drives the player
at a fixed frame time until the session ends or --duration seconds pass.
The result is printed and recorded in match history.

Examples:
  brawl sim
  brawl sim horde --seed 7 --duration 300
  brawl sim --log-level debug --render`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagDuration, "duration", 180, "Maximum simulated seconds")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the result")
	simCmd.Flags().BoolVar(&flagRender, "render", false, "Print the final frame")
}

func runSim(cmd *cobra.Command, args []string) {
	settings := mustSettings(cmd)

	gameID := settings.Session.Variant
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'brawl list' to see available arenas.")
		os.Exit(1)
	}
	if flagDuration <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --duration must be positive")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(settings.Log, "brawl-sim", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	created, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*brawl.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: arena %q cannot run headless\n", gameID)
		os.Exit(1)
	}
	game.SetAutoplay(true)

	cfg := runtimeConfig(settings)
	cfg.ScreenW, cfg.ScreenH = 80, 24
	if err := game.Reset(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dt := 1.0 / float64(cfg.TickRate)
	logger.Info("simulating", "arena", gameID, "seed", cfg.Seed, "bots", game.State().Bots, "dt", dt)

	res, err := brawl.RunHeadless(game, dt, flagDuration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagRender {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Println(screen.String())
	}

	st := res.State
	fmt.Printf("Arena:    %s (seed %d)\n", game.Title(), cfg.Seed)
	fmt.Printf("Outcome:  %s after %.1fs (%d frames)\n", st.Outcome(), st.Elapsed, res.Frames)
	fmt.Printf("Kills:    %d/%d\n", st.Kills, st.Bots)
	fmt.Printf("Damage:   %d dealt, %d taken\n", st.DamageDealt, st.DamageTaken)
	fmt.Printf("Swings:   %d (%d hits)\n", res.Stats.Swings, res.Stats.Hits)
	fmt.Printf("Score:    %d\n", st.Score)

	if flagNoSave {
		return
	}
	store := openStore(settings.Storage.DB)
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.SaveMatch(tui.MatchFromState(gameID, cfg.Seed, st)); err != nil {
		logger.Warn("could not save match", "error", err)
	}
}
