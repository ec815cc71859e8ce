// stacker is a block stacking game for the terminal.
//
// Usage:
//
//	stacker                  - Start the menu
//	stacker play [game]      - Play a game directly (default: stack)
//	stacker list             - List available game variants
//	stacker serve            - Start SSH server for remote play
//	stacker scores [game]    - Show high scores
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/stacker.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--sound              - Play sound effects
//	--log-file <path>    - Write logs to a file
//	--verbose, -v        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tui-stacker/internal/games/stack"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagVolume     float64
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stacker",
	Short: "Stacker - stack sliding blocks as high as you can",
	Long: `Stacker is a terminal block stacking game.

A block slides back and forth above the tower. Drop it with Space:
only the part resting on the block below stays, the rest falls off.
Miss the tower entirely and the run is over.

Available commands:
  play     - Play a game directly
  menu     - Interactive menu (default)
  list     - Show game variants
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  stacker
  stacker play
  stacker play stack_classic --difficulty hard
  stacker serve --ssh :2222
  stacker scores`,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { closeLogging() },
	Run:               runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/stacker.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagSound, "sound", false, "Play sound effects")
	pf.Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// validateFlags rejects flag values that would otherwise be ignored silently.
func validateFlags() error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagVolume < 0 || flagVolume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1, got %v", flagVolume)
	}
	return nil
}
