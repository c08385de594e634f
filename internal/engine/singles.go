package engine

import (
	"fmt"
	"log/slog"

	"github.com/roach88/scorekeeper/internal/model"
)

// MatchStrategy applies raw events to a match.
type MatchStrategy interface {
	UpdateStroke(m *model.Match, s model.Stroke) (*model.Match, error)
	UpdatePoint(m *model.Match, p *model.Point) (*model.Match, error)
	Settle(m *model.Match) error
	RegisterEvent(t EventType, cb Callback)
}

// level is a rung of the completion cascade.
type level int

const (
	levelPoint level = iota
	levelGame
	levelSet
	levelMatch
)

var levelEvents = [...]EventType{
	levelPoint: EventPointComplete,
	levelGame:  EventGameComplete,
	levelSet:   EventSetComplete,
	levelMatch: EventMatchComplete,
}

// SinglesStrategy applies events to two-player matches.
//
// Callers must serialize updates to one match. SinglesStrategy keeps no
// per-match state besides its callbacks.
type SinglesStrategy struct {
	resolver *Resolver
	events   *events
}

// NewSinglesStrategy creates a singles strategy. A nil resolver selects the
// default rulebook.
func NewSinglesStrategy(r *Resolver) *SinglesStrategy {
	if r == nil {
		r = NewResolver(nil)
	}
	return &SinglesStrategy{resolver: r, events: newEvents()}
}

// RegisterEvent adds cb to the callbacks of t. Callbacks run synchronously
// in registration order.
func (s *SinglesStrategy) RegisterEvent(t EventType, cb Callback) {
	s.events.register(t, cb)
}

// UpdateStroke adds a stroke to the rally point in progress, starting one if
// needed, and resolves completions bottom-up.
func (s *SinglesStrategy) UpdateStroke(m *model.Match, stroke model.Stroke) (*model.Match, error) {
	if err := validateStroke(m, stroke); err != nil {
		return m, err
	}
	if err := s.prepare(m); err != nil {
		return m, err
	}

	g := m.CurrentGame()
	p := g.CurrentPoint()
	if p == nil {
		p = model.NewRallyPoint()
		g.AppendPoint(p)
	} else if p.IsSimple() {
		return m, NewInvalidInputError("cannot add a stroke to a simple point", nil)
	}
	p.AddStroke(stroke)
	markInProgress(m)

	return m, s.cascade(m, levelPoint)
}

// UpdatePoint appends a whole point to the current game and resolves
// completions bottom-up. A rally point without strokes is rejected.
func (s *SinglesStrategy) UpdatePoint(m *model.Match, p *model.Point) (*model.Match, error) {
	if p == nil {
		return m, NewInvalidInputError("point is nil", nil)
	}
	if err := validatePoint(m, p); err != nil {
		return m, err
	}
	if err := s.prepare(m); err != nil {
		return m, err
	}
	if m.CurrentPoint() != nil {
		return m, NewInvalidInputError("a rally point is in progress", nil)
	}

	m.CurrentGame().AppendPoint(p)
	p.MarkInProgress()
	markInProgress(m)

	return m, s.cascade(m, levelPoint)
}

// prepare settles the match and makes sure it can take another event. A
// failed settle, or one that completes the match, leaves the event
// unapplied.
func (s *SinglesStrategy) prepare(m *model.Match) error {
	wasComplete := m.State() == model.StatusComplete
	if err := s.Settle(m); err != nil {
		return fmt.Errorf("%w: %w", ErrNotApplied, err)
	}
	if m.State() == model.StatusComplete {
		err := NewInvalidInputError("match is complete", nil)
		if !wasComplete {
			return fmt.Errorf("%w: %w", ErrNotApplied, err)
		}
		return err
	}
	if len(m.Sets) == 0 {
		m.AppendSet(model.NewSet(1, m.Rules.FirstServer))
	}
	return nil
}

// Settle resumes a cascade that an earlier callback failure interrupted,
// starting at the first level that was not resolved. Each level it completes
// fires its event, so every unit completes exactly once.
func (s *SinglesStrategy) Settle(m *model.Match) error {
	set := m.CurrentSet()
	if set == nil || m.State() == model.StatusComplete {
		return nil
	}
	if set.State() == model.StatusComplete {
		return s.cascade(m, levelMatch)
	}
	g := set.CurrentGame()
	if g.State() == model.StatusComplete {
		return s.cascade(m, levelSet)
	}
	if p := g.LastPoint(); p != nil && p.State() == model.StatusComplete {
		return s.cascade(m, levelGame)
	}
	return nil
}

// cascade resolves units from level upward while each one completes, firing
// the completion event of every level that does. The first unit that stays
// incomplete ends the cascade and the next game or set is appended.
func (s *SinglesStrategy) cascade(m *model.Match, from level) error {
	for lvl := from; lvl <= levelMatch; lvl++ {
		u := unitAt(m, lvl)
		done, err := s.resolver.Resolve(u, m)
		if err != nil {
			return err
		}
		if !done {
			advance(m)
			return nil
		}

		slog.Debug("unit complete",
			"match", m.ID,
			"unit", u.Kind(),
			"winner", winnerOf(u),
			"score", m.Score().String(),
		)
		if err := s.events.fire(levelEvents[lvl], m); err != nil {
			return err
		}
	}
	return nil
}

func unitAt(m *model.Match, lvl level) model.Unit {
	switch lvl {
	case levelPoint:
		return m.CurrentGame().LastPoint()
	case levelGame:
		return m.CurrentGame()
	case levelSet:
		return m.CurrentSet()
	}
	return m
}

func winnerOf(u model.Unit) string {
	switch v := u.(type) {
	case *model.Point:
		return v.Winner
	case *model.Game:
		return v.Winner
	case *model.Set:
		return v.Winner
	case *model.Match:
		return v.Winner
	}
	return ""
}

// advance appends the next set after a completed set, or the next game
// after a completed game. Service alternates every game, across sets too.
// A set level with gamesPerSet apiece gets a tiebreak unless it is a
// deciding set played without one.
func advance(m *model.Match) {
	set := m.CurrentSet()
	last := set.CurrentGame()

	if set.State() == model.StatusComplete {
		if m.State() != model.StatusComplete {
			m.AppendSet(model.NewSet(set.Number+1, last.Receiver()))
		}
		return
	}
	if last.State() != model.StatusComplete {
		return
	}

	n := m.Rules.GamesPerSet
	if set.GamesWon[0] == n && set.GamesWon[1] == n && !m.IsFinalSetWinByTwo() {
		set.AppendGame(model.NewTiebreakGame(last.Receiver()))
		return
	}
	set.AppendGame(model.NewGame(last.Receiver()))
}

func markInProgress(m *model.Match) {
	m.MarkInProgress()
	m.CurrentSet().MarkInProgress()
	m.CurrentGame().MarkInProgress()
}

func validateStroke(m *model.Match, s model.Stroke) error {
	if _, err := m.PlayerIndex(s.Player); err != nil {
		return NewInvalidInputError("stroke player", err)
	}
	if _, err := model.ParseOutcome(string(s.Outcome)); err != nil {
		return NewInvalidInputError("stroke outcome", err)
	}
	return nil
}

func validatePoint(m *model.Match, p *model.Point) error {
	if p.State() == model.StatusComplete {
		return NewInvalidInputError("point was already applied", nil)
	}
	if p.IsSimple() {
		if _, err := m.PlayerIndex(p.Winner); err != nil {
			return NewInvalidInputError("simple point winner", err)
		}
		return nil
	}
	if len(p.Strokes) == 0 {
		return NewInvalidInputError("rally point has no strokes", nil)
	}
	for _, s := range p.Strokes {
		if err := validateStroke(m, s); err != nil {
			return err
		}
	}
	return nil
}
