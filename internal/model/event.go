package model

// EventKind distinguishes the two kinds of raw input a match accepts.
type EventKind string

const (
	EventStroke EventKind = "stroke"
	EventPoint  EventKind = "point"
)

// Event is one accepted input, as kept in a match's append-only log.
// Replaying the log of a match in Seq order rebuilds its score.
type Event struct {
	MatchID string    `json:"match_id"`
	Seq     int64     `json:"seq"`
	Kind    EventKind `json:"kind"`

	// Player is the striker for strokes and the winner for points.
	Player  string  `json:"player"`
	Outcome Outcome `json:"outcome,omitempty"`
}
