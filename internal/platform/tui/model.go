package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/audio"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// Options carries the optional services a game session uses.
// Any field may be nil.
type Options struct {
	Store  *storage.Store
	Sound  audio.Player
	Logger *log.Logger
	// Renderer styles output for the session's terminal.
	// SSH sessions get one per client.
	Renderer *lipgloss.Renderer
}

func (o Options) withDefaults() Options {
	if o.Sound == nil {
		o.Sound = audio.Silent{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Renderer == nil {
		o.Renderer = lipgloss.DefaultRenderer()
	}
	return o
}

// GameModel is the Bubble Tea model for running a single game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	run        storage.Run
	canGoBack  bool // B/Esc returns to a menu instead of doing nothing
	quitOnBack bool // going back ends the program; the caller shows the menu
	quitting   bool
	backToMenu bool
	scoreSaved bool
	newBest    bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts.withDefaults(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		run:        storage.NewRun(game.ID()),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.resetGame()
	return tickCmd(m.config.TickRate)
}

// resetGame starts a new run and loads the stored best score.
func (m *GameModel) resetGame() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()

	if cr, ok := m.game.(registry.ConfigReporter); ok {
		if err := cr.ConfigErr(); err != nil {
			m.opts.Logger.Warn("config not loaded, using defaults", "game", m.game.ID(), "error", err)
		}
	}

	if hs, ok := m.game.(registry.HighScoreAware); ok && m.opts.Store != nil {
		best, err := m.opts.Store.HighScore(m.game.ID())
		if err != nil {
			m.opts.Logger.Warn("could not load high score", "game", m.game.ID(), "error", err)
		}
		hs.SetHighScore(best)
	}
	m.opts.Logger.Debug("run started", "game", m.game.ID(), "run", m.run.ID, "seed", m.config.Seed)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The playfield is in world units, so a resize only changes the view.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		switch {
		case m.canGoBack && (m.gameState.GameOver || m.gameState.Paused):
			m.backToMenu = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		case !m.gameState.GameOver:
			// Esc doubles as pause while playing.
			m.inputFrame.Set(core.ActionPause)
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.run = storage.NewRun(m.game.ID())
		m.scoreSaved = false
		m.newBest = false
		m.resetGame()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if len(result.Cues) > 0 {
		m.opts.Sound.Play(result.Cues...)
		m.opts.Logger.Debug("placement", "cues", result.Cues, "score", result.State.Score)
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run. Persistence is best-effort.
func (m *GameModel) saveScore() {
	m.scoreSaved = true

	m.run.Score = m.gameState.Score
	if rs, ok := m.game.(registry.RunStats); ok {
		m.run.Placements = rs.Placements()
		m.run.BestStreak = rs.BestStreak()
	}
	m.opts.Logger.Info("game over", "game", m.run.GameID, "score", m.run.Score, "placements", m.run.Placements)

	if m.opts.Store == nil || m.run.Score <= 0 {
		return
	}
	newBest, err := m.opts.Store.SubmitScore(m.run)
	if err != nil {
		m.opts.Logger.Warn("could not save score", "error", err)
		return
	}
	m.newBest = newBest
	if newBest {
		m.opts.Logger.Info("new high score", "game", m.run.GameID, "score", m.run.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.opts.Renderer)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// NewBest reports whether the last finished run set a new high score.
func (m GameModel) NewBest() bool {
	return m.newBest
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// RunSession runs a game started from the local menu.
// B or Esc on the game-over or pause screen returns to the caller.
func RunSession(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)
	model.canGoBack = true
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
