package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/scorekeeper/internal/model"
)

// ErrNotFound is returned when no match has the requested ID.
var ErrNotFound = errors.New("match not found")

// Save writes the snapshot of m and appends events to its log in one
// transaction, then returns m.
//
// Events use ON CONFLICT DO NOTHING for idempotency: an event already logged
// at the same (match_id, seq) is silently ignored. Every event must belong
// to m.
func (s *Store) Save(ctx context.Context, m *model.Match, events ...model.Event) (*model.Match, error) {
	if m == nil {
		return nil, errors.New("save match: match is nil")
	}
	for _, ev := range events {
		if ev.MatchID != m.ID {
			return nil, fmt.Errorf("save match %s: event %d belongs to match %q", m.ID, ev.Seq, ev.MatchID)
		}
	}

	snapshot, err := marshalMatch(m)
	if err != nil {
		return nil, fmt.Errorf("save match %s: %w", m.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("save match %s: begin: %w", m.ID, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (id, status, winner, seq, score, snapshot)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			winner = excluded.winner,
			seq = excluded.seq,
			score = excluded.score,
			snapshot = excluded.snapshot
	`,
		m.ID,
		string(m.State()),
		m.Winner,
		m.Seq,
		m.Score().String(),
		snapshot,
	)
	if err != nil {
		return nil, fmt.Errorf("save match %s: %w", m.ID, err)
	}

	if err := appendEvents(ctx, tx, events); err != nil {
		return nil, fmt.Errorf("save match %s: %w", m.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save match %s: commit: %w", m.ID, err)
	}
	return m, nil
}

func appendEvents(ctx context.Context, tx *sql.Tx, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_events (match_id, seq, kind, player, outcome)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx, ev.MatchID, ev.Seq, string(ev.Kind), ev.Player, string(ev.Outcome)); err != nil {
			return fmt.Errorf("append event %d: %w", ev.Seq, err)
		}
	}
	return nil
}
