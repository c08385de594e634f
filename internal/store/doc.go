// Package store provides SQLite-backed persistence for matches.
//
// The store keeps two tables:
//   - matches: the latest snapshot of every match, as JSON, plus its status,
//     winner, score and the sequence number of the last applied event
//   - match_events: the append-only log of accepted strokes and points,
//     keyed by (match_id, seq)
//
// A snapshot and the events that produced it are written in one
// transaction, so the log never runs ahead of or behind the snapshot.
//
// # Critical Patterns
//
// Logical time:
//   - All ordering uses seq INTEGER (per-match logical clock), NEVER timestamps
//   - Events replay in ORDER BY seq ASC
//
// Idempotent appends:
//   - PRIMARY KEY (match_id, seq) with ON CONFLICT DO NOTHING
//   - Writing the same event twice is a no-op
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait up to 5s for locks
//   - foreign_keys=ON: Events must reference an existing match
package store
