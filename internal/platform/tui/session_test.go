package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/storage"
)

func sendSession(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(testConfig(), Options{Store: store, Logger: log.New(io.Discard)})

	if !strings.Contains(m.View(), "S T A C K E R") {
		t.Fatal("session should open on the menu")
	}

	// Tab opens the scoreboard, Esc returns
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeScoreboard {
		t.Fatalf("mode = %v, expected scoreboard", m.mode)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMenu {
		t.Fatalf("mode = %v, expected menu after back", m.mode)
	}

	// Enter starts the highlighted game
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeGame {
		t.Fatalf("mode = %v, expected game", m.mode)
	}
	if !m.gameModel.canGoBack {
		t.Error("session games should allow going back")
	}

	// Pause, then back to menu
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = sendSession(m, TickMsg{})
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMenu {
		t.Errorf("mode = %v, expected menu after leaving the game", m.mode)
	}

	// Q quits the session
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || next.View() != "" {
		t.Error("q should end the session")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(testConfig(), Options{})
	if len(m.items) != 2 {
		t.Fatalf("expected both stack variants in the menu, got %d", len(m.items))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, expected to stop at the last item", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != m.items[m.cursor].GameID {
		t.Error("enter should select the highlighted game")
	}
}

func submitRun(t *testing.T, store *storage.Store, gameID string, score, streak int) {
	t.Helper()
	run := storage.NewRun(gameID)
	run.Score, run.Placements, run.BestStreak = score, score/10, streak
	if _, err := store.SubmitScore(run); err != nil {
		t.Fatalf("SubmitScore() error: %v", err)
	}
}

func TestMenuShowsRecords(t *testing.T) {
	store := openStore(t)
	submitRun(t, store, "stack", 120, 4)
	submitRun(t, store, "stack", 30, 1)

	m := NewMenuModel(testConfig(), Options{Store: store})
	var played, fresh *MenuItem
	for i := range m.items {
		switch m.items[i].GameID {
		case "stack":
			played = &m.items[i]
		case "stack_classic":
			fresh = &m.items[i]
		}
	}
	if played == nil || fresh == nil {
		t.Fatalf("menu items = %+v", m.items)
	}

	if played.Best != 120 || played.Runs != 2 || played.Streak != 4 {
		t.Errorf("stack record = %+v, expected best 120, 2 runs, streak 4", *played)
	}
	if fresh.Runs != 0 {
		t.Errorf("stack_classic should be unplayed, got %+v", *fresh)
	}
	if played.Rule == fresh.Rule {
		t.Errorf("variants should describe different rules, both say %q", played.Rule)
	}

	view := m.View()
	for _, want := range []string{"Best 120", "2 runs", "streak 4", "Not played yet"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestScoreboardSwitchesVariant(t *testing.T) {
	store := openStore(t)
	submitRun(t, store, "stack", 120, 4)

	m := NewScoreboardModel(Options{Store: store}, 80, 30)
	first := m.variants[m.current].ID
	if len(m.variants) != 2 {
		t.Fatalf("expected two variants, got %d", len(m.variants))
	}

	// Every switch key moves to the other variant and back.
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyTab},
		{Type: tea.KeyRight},
		{Type: tea.KeyLeft},
		{Type: tea.KeyRunes, Runes: []rune{'l'}},
	} {
		next, _ := m.Update(msg)
		after := next.(ScoreboardModel)
		if after.variants[after.current].ID == m.variants[m.current].ID {
			t.Errorf("%s did not switch variant", msg)
		}
		m = after
	}
	if got := m.variants[m.current].ID; got != first {
		t.Errorf("after four switches showing %q, expected %q", got, first)
	}

	wantRuns := map[string]int{"stack": 1, "stack_classic": 0}
	for range 2 {
		id := m.variants[m.current].ID
		if len(m.runs) != wantRuns[id] || m.record.GamesCount != wantRuns[id] {
			t.Errorf("%s: %d runs, record %+v", id, len(m.runs), m.record)
		}
		view := m.View()
		if wantRuns[id] > 0 && (!strings.Contains(view, "Streak") || !strings.Contains(view, "120")) {
			t.Errorf("%s view should show the record panel", id)
		}
		if wantRuns[id] == 0 && !strings.Contains(view, "No runs yet") {
			t.Errorf("%s view should say it has no runs", id)
		}
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(ScoreboardModel)
	}
}

func TestScoreboardNarrowStacksRecord(t *testing.T) {
	store := openStore(t)
	submitRun(t, store, "stack", 50, 2)

	for _, width := range []int{100, 50} {
		m := NewScoreboardModel(Options{Store: store}, width, 30)
		if m.variants[m.current].ID != "stack" {
			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
			m = next.(ScoreboardModel)
		}

		bestRow, scoreRow := -1, -1
		for i, line := range strings.Split(m.View(), "\n") {
			if strings.Contains(line, "Best") && bestRow < 0 {
				bestRow = i
			}
			if strings.Contains(line, "Score") && scoreRow < 0 {
				scoreRow = i
			}
		}
		if bestRow < 0 || scoreRow < 0 {
			t.Fatalf("width %d: record or table header missing", width)
		}
		sideBySide := width >= boardSideBySide
		if sideBySide && bestRow > scoreRow+1 {
			t.Errorf("width %d: record should sit beside the table", width)
		}
		if !sideBySide && bestRow >= scoreRow {
			t.Errorf("width %d: record should sit above the table", width)
		}
	}
}
