package model

import (
	"errors"
	"fmt"
)

// Match is the root of the scoring hierarchy.
type Match struct {
	ID      string     `json:"id"`
	Players []Player   `json:"players"`
	Rules   MatchRules `json:"rules"`
	Sets    []*Set     `json:"sets"`

	// SetsWon is indexed by player.
	SetsWon [2]int `json:"sets_won"`

	Winner string `json:"winner,omitempty"`
	Status Status `json:"status"`

	// Seq is the sequence number of the last event applied to the match.
	Seq int64 `json:"seq"`
}

// NewMatch validates rules and players and returns an unstarted match.
// The number of players is not checked here; which counts are playable is
// decided when a processor is built for the match.
func NewMatch(id string, players []Player, rules MatchRules) (*Match, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if err := validatePlayers(players); err != nil {
		return nil, err
	}
	return &Match{
		ID:      id,
		Players: append([]Player(nil), players...),
		Rules:   rules,
		Sets:    []*Set{},
		Status:  StatusNotStarted,
	}, nil
}

func validatePlayers(players []Player) error {
	seen := make(map[string]bool, len(players))
	for i, p := range players {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("invalid player %d: %w", i, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// ErrUnknownPlayer is returned when an event names a player not in the match.
var ErrUnknownPlayer = errors.New("unknown player")

func (m *Match) Kind() Kind    { return KindMatch }
func (m *Match) State() Status { return m.Status.normalize() }

// PlayerIndex returns the index of the player with the given ID.
func (m *Match) PlayerIndex(id string) (int, error) {
	for i, p := range m.Players {
		if p.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
}

// CurrentSet returns the last set of the match, or nil before the first
// event.
func (m *Match) CurrentSet() *Set {
	if len(m.Sets) == 0 {
		return nil
	}
	return m.Sets[len(m.Sets)-1]
}

// CurrentGame returns the last game of the current set, or nil.
func (m *Match) CurrentGame() *Game {
	s := m.CurrentSet()
	if s == nil {
		return nil
	}
	return s.CurrentGame()
}

// CurrentPoint returns the point in progress, or nil.
func (m *Match) CurrentPoint() *Point {
	g := m.CurrentGame()
	if g == nil {
		return nil
	}
	return g.CurrentPoint()
}

// AppendSet adds s as the next set of the match.
func (m *Match) AppendSet(s *Set) {
	m.Sets = append(m.Sets, s)
}

// inFinalSet reports whether the current set is the deciding
// set of the match.
func (m *Match) inFinalSet() bool {
	s := m.CurrentSet()
	return s != nil && s.Number == m.Rules.BestOf
}

// IsFinalSetWinByTwo reports whether the current set is a deciding set
// played without a tiebreak.
func (m *Match) IsFinalSetWinByTwo() bool {
	return m.inFinalSet() && m.Rules.FinalSetTiebreakDisabled
}

// Score returns the per-set games tally of every started set.
func (m *Match) Score() MatchScore {
	score := MatchScore{Sets: make([]SetScore, 0, len(m.Sets))}
	for _, s := range m.Sets {
		if s.State() == StatusNotStarted {
			continue
		}
		score.Sets = append(score.Sets, s.Score())
	}
	return score
}

func (m *Match) MarkInProgress() { advance(&m.Status, StatusInProgress) }
func (m *Match) MarkComplete()   { advance(&m.Status, StatusComplete) }
