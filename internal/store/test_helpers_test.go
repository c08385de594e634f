package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/scorekeeper/internal/model"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestMatch creates an unstarted singles match with default rules.
func createTestMatch(t *testing.T, id string) *model.Match {
	t.Helper()
	m, err := model.NewMatch(id, []model.Player{
		model.NewPlayer("alice", "Alice"),
		model.NewPlayer("bob", "Bob"),
	}, model.DefaultRules())
	if err != nil {
		t.Fatalf("NewMatch() failed: %v", err)
	}
	return m
}

// pointEvent creates a simple-point log entry.
func pointEvent(matchID string, seq int64, winner string) model.Event {
	return model.Event{MatchID: matchID, Seq: seq, Kind: model.EventPoint, Player: winner}
}
