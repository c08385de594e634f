package model

// Kind tags every node of the scoring hierarchy.
type Kind string

const (
	KindStroke       Kind = "STROKE"
	KindPoint        Kind = "POINT"
	KindGame         Kind = "GAME"
	KindTiebreakGame Kind = "TIEBREAK_GAME"
	KindSet          Kind = "SET"
	KindMatch        Kind = "MATCH"
)

// Kinds lists every unit kind from the leaves up.
var Kinds = []Kind{KindStroke, KindPoint, KindGame, KindTiebreakGame, KindSet, KindMatch}

// Status is the lifecycle state of a scoring unit.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
)

// rank orders statuses so transitions can be checked for monotonicity.
// The zero value is treated as NOT_STARTED.
func (s Status) rank() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusComplete:
		return 2
	default:
		return 0
	}
}

// normalize maps the zero value to StatusNotStarted.
func (s Status) normalize() Status {
	if s == "" {
		return StatusNotStarted
	}
	return s
}

// advance moves *s forward to next. Backward moves are ignored.
func advance(s *Status, next Status) {
	if next.rank() > s.rank() {
		*s = next
	}
}

// Unit is any node of the scoring hierarchy.
type Unit interface {
	Kind() Kind
	State() Status
}

// Children returns the ordered children of u, or nil for leaves.
//
// This is the single recursive-descent accessor over the hierarchy; each
// variant lists its own children here so traversal never needs to know
// concrete types.
func Children(u Unit) []Unit {
	switch v := u.(type) {
	case *Match:
		out := make([]Unit, len(v.Sets))
		for i, s := range v.Sets {
			out[i] = s
		}
		return out
	case *Set:
		out := make([]Unit, len(v.Games))
		for i, g := range v.Games {
			out[i] = g
		}
		return out
	case *Game:
		out := make([]Unit, len(v.Points))
		for i, p := range v.Points {
			out[i] = p
		}
		return out
	case *Point:
		out := make([]Unit, len(v.Strokes))
		for i := range v.Strokes {
			out[i] = &v.Strokes[i]
		}
		return out
	case *Stroke:
		return nil
	}
	return nil
}
