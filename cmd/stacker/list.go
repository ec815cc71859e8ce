package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows the registered game variants with their starting block width.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "ID", "Title", "Width")
	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, g := range games {
		cfg := config.DefaultFor(g.ID)
		fmt.Printf("  %-*s  %-18s  %.0f\n", maxIDLen, g.ID, g.Title, cfg.Blocks.BaseWidth)
	}

	fmt.Println()
	fmt.Println("Run 'stacker play <id>' to play a game.")
}
