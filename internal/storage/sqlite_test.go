package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-capsules/internal/multiplayer"
)

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

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("capsules", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("capsules", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("capsules", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different mode
	_, err = store.SaveScore("capsules_endless", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for the campaign mode
	scores, err := store.TopScores("capsules", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for endless
	endlessScores, err := store.TopScores("capsules_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(endlessScores) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endlessScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("capsules", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("capsules", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("capsules")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("capsules", 100)
	store.SaveScore("capsules", 300)
	store.SaveScore("capsules", 200)

	high, err = store.HighScore("capsules")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("capsules", 100)
	store.SaveScore("capsules", 200)
	store.SaveScore("capsules_endless", 300)

	// Clear only the campaign mode
	err = store.ClearScores("capsules")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Campaign should be empty
	campaignScores, _ := store.TopScores("capsules", 10)
	if len(campaignScores) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(campaignScores))
	}

	// Endless should still have scores
	endlessScores, _ := store.TopScores("capsules_endless", 10)
	if len(endlessScores) != 1 {
		t.Errorf("Endless scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("capsules", i*10)
	}

	scores, err := store.AllScores("capsules")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreOnlineMatchRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	in := OnlineMatchResult{
		MatchID:        "match-1",
		GameID:         "capsules_versus",
		Player1Session: "alice",
		Player2Session: "bob",
		Score1:         1600,
		Score2:         900,
		Viruses1:       0,
		Viruses2:       7,
		WinnerSession:  "alice",
		EndReason:      "completed",
		Duration:       183,
	}

	if _, err := store.SaveOnlineMatch(in); err != nil {
		t.Fatalf("SaveOnlineMatch() failed: %v", err)
	}

	got, err := store.OnlineMatchByID("match-1")
	if err != nil {
		t.Fatalf("OnlineMatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("OnlineMatchByID() returned nil for saved match")
	}

	if got.GameID != "capsules_versus" {
		t.Errorf("GameID = %q, want capsules_versus", got.GameID)
	}
	if got.Score1 != 1600 || got.Score2 != 900 {
		t.Errorf("Scores = %d/%d, want 1600/900", got.Score1, got.Score2)
	}
	if got.Viruses1 != 0 || got.Viruses2 != 7 {
		t.Errorf("Viruses = %d/%d, want 0/7", got.Viruses1, got.Viruses2)
	}
	if got.WinnerSession != "alice" {
		t.Errorf("WinnerSession = %q, want alice", got.WinnerSession)
	}

	// Unknown match yields nil without error
	missing, err := store.OnlineMatchByID("no-such-match")
	if err != nil {
		t.Fatalf("OnlineMatchByID() failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown match ID")
	}
}

func TestStorePlayerMatchHistory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	matches := []OnlineMatchResult{
		{MatchID: "m1", GameID: "capsules_versus", Player1Session: "alice", Player2Session: "bob", EndReason: "completed"},
		{MatchID: "m2", GameID: "capsules_versus", Player1Session: "carol", Player2Session: "alice", EndReason: "disconnect"},
		{MatchID: "m3", GameID: "capsules_versus", Player1Session: "carol", Player2Session: "bob", EndReason: "completed"},
	}
	for _, m := range matches {
		if _, err := store.SaveOnlineMatch(m); err != nil {
			t.Fatalf("SaveOnlineMatch(%s) failed: %v", m.MatchID, err)
		}
	}

	history, err := store.PlayerMatchHistory("alice", 10)
	if err != nil {
		t.Fatalf("PlayerMatchHistory() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 matches for alice, got %d", len(history))
	}
	for _, m := range history {
		if m.Player1Session != "alice" && m.Player2Session != "alice" {
			t.Errorf("Match %s does not involve alice", m.MatchID)
		}
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	data := multiplayer.MatchResultData{
		MatchID:        "adapter-match",
		GameID:         "capsules_versus",
		Player1Session: "host",
		Player2Session: "guest",
		Score1:         500,
		Score2:         1200,
		Viruses1:       4,
		Viruses2:       0,
		WinnerSession:  "guest",
		EndReason:      "completed",
		DurationSecs:   240,
	}

	if err := store.SaveMatchResult(data); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	got, err := store.OnlineMatchByID("adapter-match")
	if err != nil {
		t.Fatalf("OnlineMatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Saved match not found")
	}
	if got.Viruses1 != 4 || got.Viruses2 != 0 {
		t.Errorf("Viruses = %d/%d, want 4/0", got.Viruses1, got.Viruses2)
	}
	if got.Duration != 240 {
		t.Errorf("Duration = %d, want 240", got.Duration)
	}
}

func TestStoreGameStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("capsules", 100)
	store.SaveScore("capsules", 300)
	store.SaveScore("capsules_endless", 50)

	stats, err := store.GetGameStats("capsules")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 modes, got %d", len(all))
	}
	if _, ok := all["capsules_endless"]; !ok {
		t.Error("Missing stats for capsules_endless")
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
