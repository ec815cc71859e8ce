package tui

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/games/stack"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// recorder is a Player that keeps every cue it is asked to play.
type recorder struct {
	cues []core.Cue
}

func (r *recorder) Play(cues ...core.Cue) { r.cues = append(r.cues, cues...) }
func (r *recorder) Close()                {}

func (r *recorder) has(c core.Cue) bool {
	for _, x := range r.cues {
		if x == c {
			return true
		}
	}
	return false
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(m GameModel, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func tick(m GameModel) GameModel {
	return send(m, TickMsg(time.Time{}))
}

// tickUntil ticks until cond holds, failing after ten seconds of game time.
func tickUntil(t *testing.T, m GameModel, cond func() bool) GameModel {
	t.Helper()
	for i := 0; i < 600; i++ {
		if cond() {
			return m
		}
		m = tick(m)
	}
	t.Fatal("condition not reached within 600 ticks")
	return m
}

func TestGameModelMissEndsRun(t *testing.T) {
	game := stack.New()
	rec := &recorder{}
	m := NewGameModel(game, testConfig(), Options{Sound: rec})
	m.Init()

	// The first block starts at a field edge, well clear of the base.
	m = send(m, spaceKey)
	m = tick(m)

	if !rec.has(core.CueMiss) {
		t.Errorf("cues = %v, expected miss", rec.cues)
	}
	if !m.gameState.GameOver {
		t.Fatal("miss should end the run")
	}
	if !m.scoreSaved {
		t.Error("finished run should be marked as saved")
	}

	// Restart with R
	oldRun := m.run.ID
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = tick(m)
	if m.gameState.GameOver || m.scoreSaved {
		t.Error("R should start a new run")
	}
	if m.run.ID == oldRun {
		t.Error("new run should get a new ID")
	}
}

func TestGameModelSavesScore(t *testing.T) {
	store := openStore(t)
	game := stack.New()
	rec := &recorder{}
	m := NewGameModel(game, testConfig(), Options{Store: store, Sound: rec})
	m.Init()

	// Wait for the block to slide over the base, then drop it.
	m = tickUntil(t, m, func() bool {
		mb, ok := game.Engine().Moving()
		return ok && math.Abs(mb.CenterX-400) < 2
	})
	m = send(m, spaceKey)
	m = tick(m)

	if m.gameState.Score != 10 || !rec.has(core.CuePlace) {
		t.Fatalf("score = %d cues = %v, expected a successful placement", m.gameState.Score, rec.cues)
	}

	// Drop the next block as soon as it appears at the edge.
	m = tickUntil(t, m, func() bool {
		_, ok := game.Engine().Moving()
		return ok
	})
	m = send(m, spaceKey)
	m = tick(m)

	if !m.gameState.GameOver {
		t.Fatal("edge drop should miss")
	}
	if !m.NewBest() {
		t.Error("first stored run should be a new best")
	}

	entry, err := store.ScoreByRun(m.run.ID)
	if err != nil || entry == nil {
		t.Fatalf("ScoreByRun() = %v, %v", entry, err)
	}
	if entry.Score != 10 || entry.Placements != 1 || entry.GameID != "stack" {
		t.Errorf("stored entry = %+v", entry)
	}
}

func TestGameModelPauseAndBack(t *testing.T) {
	game := stack.New()
	m := NewGameModel(game, testConfig(), Options{})
	m.canGoBack = true
	m.Init()

	// Esc while playing pauses
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = tick(m)
	if !m.gameState.Paused {
		t.Fatal("esc should pause a running game")
	}

	// Esc while paused returns to the menu
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back")
	}
}

func TestGameModelMouseAndQuit(t *testing.T) {
	rec := &recorder{}
	m := NewGameModel(stack.New(), testConfig(), Options{Sound: rec})
	m.Init()

	m = send(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(m)
	if !rec.has(core.CueMiss) {
		t.Error("left click should drop the block")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if next.(GameModel).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelViewAndResize(t *testing.T) {
	m := NewGameModel(stack.New(), testConfig(), Options{})
	m.Init()

	m = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Errorf("screen = %dx%d, expected 60x20", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "Score") {
		t.Error("view should contain the HUD")
	}
}
