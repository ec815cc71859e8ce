package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stacker/internal/audio"
	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/games/stack"
	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing directly, skipping the menu.

Games:
  stack          - Each block keeps the width that landed (default)
  stack_classic  - Every block starts at the full base width

Controls:
  Space/Enter/Up/Click  - Drop the block
  P/Esc                 - Pause
  R                     - Restart (after game over)
  Ctrl+S                - Save a screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Slower blocks, gentler ramp
  normal - Config as shipped
  hard   - Faster blocks from the start
  fixed  - No progression, speed and darkness never change

Examples:
  stacker play
  stacker play stack_classic
  stacker play --difficulty hard --sound
  stacker play --config ./my-stack.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := loggerFromContext(cmd.Context())

	gameID := config.GameStack
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'stacker list' to see available games.")
		os.Exit(1)
	}

	applyGameFlags()
	if err := checkConfig(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := openServices(logger)
	defer closeServices(opts)

	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		closeServices(opts)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// applyGameFlags passes --config and --difficulty to the game package.
func applyGameFlags() {
	stack.SetConfigPath(flagConfig)
	stack.SetDifficultyPreset(flagDifficulty)
}

// checkConfig loads the config of each game so a broken --config is
// reported before the terminal is taken over. Games fall back to their
// defaults silently once running.
func checkConfig(gameIDs ...string) error {
	for _, id := range gameIDs {
		if _, err := config.LoadStack(id, flagConfig); err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
	}
	return nil
}

// registeredIDs returns the IDs of every registered game.
func registeredIDs() []string {
	games := registry.List()
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openServices opens the score database and audio device.
// Both are optional: failures are reported and the game runs without them.
func openServices(logger *log.Logger) tui.Options {
	opts := tui.Options{Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
	} else {
		opts.Store = store
	}

	sound, err := audio.Open(flagSound, flagVolume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not start audio: %v\n", err)
		logger.Warn("sound disabled", "error", err)
	}
	opts.Sound = sound

	return opts
}

// closeServices releases whatever openServices opened. Safe to call twice.
func closeServices(opts tui.Options) {
	if opts.Store != nil {
		opts.Store.Close()
	}
	if opts.Sound != nil {
		opts.Sound.Close()
	}
}
