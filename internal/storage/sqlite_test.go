package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore("brickshot", 42)
	store.Close()

	// Migrations are idempotent and data survives
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("brickshot")
	if err != nil || high != 42 {
		t.Errorf("HighScore() = %d, %v; expected 42", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("brickshot", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("brickshot_classic", 500)

	scores, err := store.TopScores("brickshot", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	expected := []int{200, 100, 50}
	for i, e := range scores {
		if e.Score != expected[i] {
			t.Errorf("scores[%d] = %d, expected %d", i, e.Score, expected[i])
		}
		if e.GameID != "brickshot" {
			t.Errorf("scores[%d].GameID = %q", i, e.GameID)
		}
		if e.CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt not parsed", i)
		}
	}

	classic, err := store.TopScores("brickshot_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores("test", 0)
	if err != nil || len(all) != 5 {
		t.Errorf("TopScores(0) = %d entries, %v; expected default limit", len(all), err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("brickshot")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("brickshot", 100)
	store.SaveScore("brickshot", 300)
	store.SaveScore("brickshot", 200)

	if high, _ = store.HighScore("brickshot"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTestStore(t)

	records := []RoundRecord{
		{GameID: "brickshot", Round: 1, Outcome: OutcomeWon, Score: 30, Volleys: 4, Balls: 42},
		{GameID: "brickshot", Round: 2, Outcome: OutcomeWon, Score: 61, Volleys: 9, Balls: 45},
		{GameID: "brickshot", Round: 3, Outcome: OutcomeLost, Score: 75, Volleys: 15, Balls: 45},
		{GameID: "brickshot_classic", Round: 1, Outcome: OutcomeLost, Score: 3, Volleys: 2, Balls: 40},
	}
	for _, r := range records {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	recent, err := store.RecentRounds("brickshot", 2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(recent))
	}
	if recent[0].Round != 3 || recent[0].Outcome != OutcomeLost || recent[0].Balls != 45 {
		t.Errorf("newest round = %+v", recent[0])
	}
	if recent[1].Round != 2 {
		t.Errorf("second round = %+v, expected round 2", recent[1])
	}
}

func TestStoreSaveRoundRejectsOutcome(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRound(RoundRecord{GameID: "brickshot", Round: 1, Outcome: "draw"})
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("SaveRound() error = %v, expected ErrInvalidOutcome", err)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("brickshot")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.Wins != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("brickshot", 10)
	store.SaveScore("brickshot", 30)
	store.SaveRound(RoundRecord{GameID: "brickshot", Round: 1, Outcome: OutcomeWon})
	store.SaveRound(RoundRecord{GameID: "brickshot", Round: 2, Outcome: OutcomeLost})
	store.SaveRound(RoundRecord{GameID: "brickshot", Round: 1, Outcome: OutcomeLost})

	stats, err := store.GetGameStats("brickshot")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"GamesCount", stats.GamesCount, 2},
		{"HighScore", stats.HighScore, 30},
		{"AvgScore", stats.AvgScore, 20.0},
		{"TotalScore", stats.TotalScore, int64(40)},
		{"Wins", stats.Wins, 1},
		{"Losses", stats.Losses, 2},
		{"BestRound", stats.BestRound, 2},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if all["brickshot"] == nil || all["brickshot"].GamesCount != 2 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("brickshot", 100)
	store.SaveScore("brickshot", 200)
	store.SaveRound(RoundRecord{GameID: "brickshot", Round: 1, Outcome: OutcomeLost})
	store.SaveScore("brickshot_classic", 300)

	if err := store.ClearScores("brickshot"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("brickshot", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if rounds, _ := store.RecentRounds("brickshot", 10); len(rounds) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(rounds))
	}
	if scores, _ := store.TopScores("brickshot_classic", 10); len(scores) != 1 {
		t.Error("other games should not be affected by clearing")
	}
}
