package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

// submit stores a finished run with the given score.
func submit(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	run := NewRun(gameID)
	run.Score = score
	run.Placements = score / 10
	if _, err := store.SubmitScore(run); err != nil {
		t.Fatalf("SubmitScore(%s, %d) failed: %v", gameID, score, err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		submit(t, store, "stack", score)
	}
	submit(t, store, "stack_classic", 500)

	scores, err := store.TopScores("stack", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{200, 100, 50}
	if len(scores) != len(want) {
		t.Fatalf("TopScores() returned %d entries, expected %d", len(scores), len(want))
	}
	for i, w := range want {
		if scores[i].Score != w || scores[i].Placements != w/10 {
			t.Errorf("rank %d = %d (%d blocks), expected %d", i+1, scores[i].Score, scores[i].Placements, w)
		}
	}

	classic, err := store.TopScores("stack_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 1; i <= 5; i++ {
		submit(t, store, "stack", i*100)
	}

	tests := []struct {
		limit    int
		expected int
	}{
		{3, 3},
		{0, 5}, // non-positive limits fall back to 10
		{50, 5},
	}
	for _, tc := range tests {
		scores, err := store.TopScores("stack", tc.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tc.limit, err)
		}
		if len(scores) != tc.expected {
			t.Errorf("TopScores(%d) returned %d entries, expected %d", tc.limit, len(scores), tc.expected)
		}
		if scores[0].Score != 500 {
			t.Errorf("TopScores(%d) best = %d, expected 500", tc.limit, scores[0].Score)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("stack")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on an empty table = %d, expected 0", high)
	}

	for _, score := range []int{100, 300, 200} {
		submit(t, store, "stack", score)
	}
	if high, _ = store.HighScore("stack"); high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	submit(t, store, "stack", 100)
	submit(t, store, "stack", 200)
	submit(t, store, "stack_classic", 300)

	if err := store.ClearScores("stack"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.AllScores("stack"); len(scores) != 0 {
		t.Errorf("expected no stack scores after clear, got %d", len(scores))
	}
	if scores, _ := store.AllScores("stack_classic"); len(scores) != 1 {
		t.Error("clearing stack should keep the classic scores")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := 1; i <= 20; i++ {
		submit(t, store, "stack", i*10)
	}

	scores, err := store.AllScores("stack")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Fatalf("AllScores() returned %d entries, expected 20", len(scores))
	}
	if scores[0].Score != 200 || scores[19].Score != 10 {
		t.Errorf("AllScores() order = %d..%d, expected 200..10", scores[0].Score, scores[19].Score)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSubmitScore(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		score   int
		newBest bool
	}{
		{0, false}, // empty runs never count as a best
		{50, true},
		{30, false},
		{50, false}, // ties do not beat the best
		{120, true},
	}

	for i, tc := range tests {
		run := NewRun("stack")
		run.Score = tc.score
		run.Placements = tc.score / 10
		got, err := store.SubmitScore(run)
		if err != nil {
			t.Fatalf("SubmitScore(#%d) failed: %v", i, err)
		}
		if got != tc.newBest {
			t.Errorf("SubmitScore(%d) newBest = %v, expected %v", tc.score, got, tc.newBest)
		}
	}

	high, _ := store.HighScore("stack")
	if high != 120 {
		t.Errorf("HighScore() = %d, expected 120", high)
	}

	// Other games keep their own best
	run := NewRun("stack_classic")
	run.Score = 10
	if best, _ := store.SubmitScore(run); !best {
		t.Error("first classic score should be a new best")
	}
}

func TestStoreSubmitScoreRunID(t *testing.T) {
	store := openTestStore(t)

	run := NewRun("stack")
	run.Score = 70
	run.Placements = 7
	run.BestStreak = 3
	if _, err := store.SubmitScore(run); err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}

	entry, err := store.ScoreByRun(run.ID)
	if err != nil {
		t.Fatalf("ScoreByRun() failed: %v", err)
	}
	if entry == nil {
		t.Fatal("ScoreByRun() found nothing")
	}
	if entry.RunID != run.ID || entry.Score != 70 || entry.Placements != 7 || entry.BestStreak != 3 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	// The same run cannot be stored twice
	if _, err := store.SubmitScore(run); err == nil {
		t.Error("expected error for duplicate run ID")
	}

	missing, err := store.ScoreByRun(uuid.New())
	if err != nil || missing != nil {
		t.Errorf("ScoreByRun(unknown) = %v, %v; expected nil, nil", missing, err)
	}

	// A zero run ID is replaced rather than stored as nil
	anon := Run{GameID: "stack", Score: 10}
	if _, err := store.SubmitScore(anon); err != nil {
		t.Fatalf("SubmitScore() without ID failed: %v", err)
	}
	if nilEntry, _ := store.ScoreByRun(uuid.Nil); nilEntry != nil {
		t.Error("nil run ID should never be stored")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{40, 80, 120} {
		run := NewRun("stack")
		run.Score = score
		run.BestStreak = i + 1
		if _, err := store.SubmitScore(run); err != nil {
			t.Fatal(err)
		}
	}
	submit(t, store, "stack_classic", 30)

	stats, err := store.GetGameStats("stack")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 120 || stats.TotalScore != 240 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 80 {
		t.Errorf("AvgScore = %v, expected 80", stats.AvgScore)
	}
	if stats.BestStreak != 3 {
		t.Errorf("BestStreak = %d, expected 3", stats.BestStreak)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats(empty) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected empty stats: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["stack_classic"].HighScore != 30 {
		t.Errorf("unexpected all-games stats: %v", all)
	}
}
