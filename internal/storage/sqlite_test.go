package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{3, 1, 7} {
		if _, err := store.SaveScore("snake", "", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("snake_hard", "alice", 12); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	want := []int{7, 3, 1}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "snake" {
			t.Errorf("scores[%d] has game %q", i, scores[i].GameID)
		}
	}

	hard, err := store.TopScores("snake_hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hard) != 1 || hard[0].Player != "alice" {
		t.Errorf("snake_hard scores = %+v", hard)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if _, err := store.SaveScore("snake", "", i); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := store.TopScores("snake", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Fatalf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 15 || scores[4].Score != 11 {
		t.Errorf("unexpected top five: %+v", scores)
	}

	// Non-positive limits fall back to ten
	scores, err = store.TopScores("snake", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected 10 scores for limit 0, got %d", len(scores))
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{5, 9, 2} {
		if _, err := store.SaveScore("snake", "", s); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.RecentScores("snake", 2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 2 || recent[1].Score != 9 {
		t.Errorf("RecentScores() = %+v, expected newest first [2 9]", recent)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("empty history high score = %d, expected 0", high)
	}

	stats, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats != (GameStats{}) {
		t.Errorf("empty history stats = %+v", stats)
	}

	for _, s := range []int{2, 4, 9} {
		if _, err := store.SaveScore("snake", "", s); err != nil {
			t.Fatal(err)
		}
	}

	high, _ = store.HighScore("snake")
	if high != 9 {
		t.Errorf("HighScore() = %d, expected 9", high)
	}

	stats, _ = store.Stats("snake")
	if stats.Rounds != 3 || stats.Best != 9 || stats.Average != 5 {
		t.Errorf("Stats() = %+v, expected 3 rounds, best 9, average 5", stats)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("snake", "", 4)
	store.SaveScore("snake_easy", "", 8)

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("snake", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	// Other game IDs are untouched
	easy, _ := store.TopScores("snake_easy", 10)
	if len(easy) != 1 {
		t.Errorf("Expected snake_easy to keep its score, got %d", len(easy))
	}
}
