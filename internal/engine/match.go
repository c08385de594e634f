package engine

import "github.com/roach88/scorekeeper/internal/model"

// BestOfMatchStrategy completes a match once a side has won the majority of
// its best-of-N sets.
type BestOfMatchStrategy struct{}

func (BestOfMatchStrategy) Name() string { return "best-of-match" }

func (BestOfMatchStrategy) Applies(u model.Unit, _ *model.Match) bool {
	_, ok := u.(*model.Match)
	return ok
}

func (s BestOfMatchStrategy) Apply(u model.Unit, _ *model.Match) (bool, error) {
	m, ok := u.(*model.Match)
	if !ok {
		return false, unexpectedUnit(s, u)
	}
	need := m.Rules.SetsNeeded()
	for i, won := range m.SetsWon {
		if won >= need {
			m.Winner = m.Players[i].ID
			m.MarkComplete()
			return true, nil
		}
	}
	return false, nil
}
