package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/scorekeeper/internal/model"
)

// Find returns the latest snapshot of the match with the given ID.
// Returns ErrNotFound if there is none.
func (s *Store) Find(ctx context.Context, id string) (*model.Match, error) {
	var snapshot string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM matches WHERE id = ?`, id).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find match %s: %w", id, err)
	}
	return unmarshalMatch(snapshot)
}

// Events returns the event log of a match in sequence order.
//
// Returns an empty slice (not nil) if the match has no events, and
// ErrNotFound if the match does not exist.
func (s *Store) Events(ctx context.Context, matchID string) ([]model.Event, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM matches WHERE id = ?`, matchID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read events %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read events %s: %w", matchID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, seq, kind, player, outcome
		FROM match_events
		WHERE match_id = ?
		ORDER BY seq ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var ev model.Event
		var kind, outcome string
		if err := rows.Scan(&ev.MatchID, &ev.Seq, &kind, &ev.Player, &outcome); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Kind = model.EventKind(kind)
		ev.Outcome = model.Outcome(outcome)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// Summary is the indexed view of a stored match.
type Summary struct {
	ID     string       `json:"id"`
	Status model.Status `json:"status"`
	Winner string       `json:"winner,omitempty"`
	Seq    int64        `json:"seq"`
	Score  string       `json:"score"`
}

// List returns a summary of every stored match, ordered by ID.
// Returns an empty slice (not nil) if there are none.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, winner, seq, score
		FROM matches
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		var status string
		if err := rows.Scan(&sum.ID, &status, &sum.Winner, &sum.Seq, &sum.Score); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		sum.Status = model.Status(status)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}
