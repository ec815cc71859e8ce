package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Without a game, print a summary of every variant.
With a game, print its leaderboard.

Examples:
  stacker scores
  stacker scores stack --limit 25
  stacker scores stack_classic --all
  stacker scores stack --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded run")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the given game")
}

func runScores(cmd *cobra.Command, args []string) {
	logger := loggerFromContext(cmd.Context())

	if len(args) == 0 && flagScoresClear {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a game, e.g. 'stacker scores stack --clear'")
		os.Exit(1)
	}
	if len(args) > 0 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'stacker list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		stats, err := store.GetAllGamesStats()
		if err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		printSummary(os.Stdout, registry.List(), stats)
		return
	}

	gameID := args[0]
	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		logger.Info("cleared scores", "game", gameID)
		fmt.Printf("Cleared all %s scores.\n", gameID)
		return
	}

	var entries []storage.ScoreEntry
	if flagScoresAll {
		entries, err = store.AllScores(gameID)
	} else {
		entries, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("loaded scores", "game", gameID, "count", len(entries))

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}
	printLeaderboard(os.Stdout, title, gameID, entries)
}

// printSummary writes one line per registered variant, played or not.
func printSummary(w io.Writer, games []registry.GameInfo, stats map[string]*storage.GameStats) {
	fmt.Fprintf(w, "  %-16s  %5s  %6s  %7s  %6s  %s\n", "Game", "Runs", "Best", "Average", "Streak", "Last played")
	for _, g := range games {
		gs, ok := stats[g.ID]
		if !ok || gs.GamesCount == 0 {
			fmt.Fprintf(w, "  %-16s  %5d  %6s  %7s  %6s  %s\n", g.Title, 0, "-", "-", "-", "never")
			continue
		}
		last := "-"
		if !gs.LastPlayed.IsZero() {
			last = gs.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-16s  %5d  %6d  %7.1f  %6d  %s\n",
			g.Title, gs.GamesCount, gs.HighScore, gs.AvgScore, gs.BestStreak, last)
	}
}

// printLeaderboard writes ranked runs for one variant.
func printLeaderboard(w io.Writer, title, gameID string, entries []storage.ScoreEntry) {
	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintf(w, "Play 'stacker play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Blocks", "Streak", "Date")
	for i, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-8d  %-6d  %-6d  %s\n",
			i+1, e.Score, e.Placements, e.BestStreak, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}
