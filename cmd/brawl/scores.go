package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawl/internal/registry"
	"github.com/vovakirdan/tui-brawl/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [arena]",
	Short: "Show match history",
	Long: `Display the best matches for the given arena, or a summary of
every arena when none is given.

Examples:
  brawl scores
  brawl scores horde --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := mustSettings(cmd)

	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'brawl list' to see available arenas.")
		os.Exit(1)
	}
	printTop(store, gameID)
}

func printTop(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
		os.Exit(1)
	}

	matches, err := store.TopMatches(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Match History - %s\n", game.Title())
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'brawl play %s' to set the first score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-7s  %-8s  %s\n", "Rank", "Score", "Kills", "Time", "Outcome", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-7s  %-8s  %s\n", "----", "-----", "-----", "----", "-------", "----")
	for i, m := range matches {
		fmt.Printf("  %-4d  %-7d  %-6s  %-7s  %-8s  %s\n",
			i+1, m.Score,
			fmt.Sprintf("%d/%d", m.Kills, m.Bots),
			fmt.Sprintf("%.1fs", m.Elapsed),
			m.Outcome,
			m.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	if best, err := store.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-10s  %-7s  %-6s  %-6s  %-6s  %-7s  %s\n", "Arena", "Matches", "Clears", "Deaths", "Best", "Kills", "Last played")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-10s  %-7d  %-6d  %-6d  %-6d  %-7d  %s\n",
			id, s.Matches, s.Clears, s.Deaths, s.BestScore, s.TotalKills,
			s.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
}
