package engine

import "github.com/roach88/scorekeeper/internal/model"

// StandardSetStrategy completes sets that end at gamesPerSet with a two-game
// lead, or at gamesPerSet+1 games after a 7-5 finish or a tiebreak.
type StandardSetStrategy struct{}

func (StandardSetStrategy) Name() string { return "standard-set" }

func (StandardSetStrategy) Applies(u model.Unit, m *model.Match) bool {
	_, ok := u.(*model.Set)
	return ok && !m.IsFinalSetWinByTwo()
}

func (s StandardSetStrategy) Apply(u model.Unit, m *model.Match) (bool, error) {
	set, ok := u.(*model.Set)
	if !ok {
		return false, unexpectedUnit(s, u)
	}
	if !StandardSetDecided(set.GamesWon[0], set.GamesWon[1], m.Rules.GamesPerSet) {
		return false, nil
	}
	completeSet(set, m)
	return true, nil
}

// StandardSetDecided reports whether a set with a tiebreak is over at p-q.
func StandardSetDecided(p, q, n int) bool {
	return (p == n && q < n-1) || (q == n && p < n-1) || p == n+1 || q == n+1
}

// NoFinalSetTiebreakStrategy completes a deciding set played without a
// tiebreak. Beyond gamesPerSet all it takes is a two-game lead.
type NoFinalSetTiebreakStrategy struct{}

func (NoFinalSetTiebreakStrategy) Name() string { return "no-final-set-tiebreak" }

func (NoFinalSetTiebreakStrategy) Applies(u model.Unit, m *model.Match) bool {
	_, ok := u.(*model.Set)
	return ok && m.IsFinalSetWinByTwo()
}

func (s NoFinalSetTiebreakStrategy) Apply(u model.Unit, m *model.Match) (bool, error) {
	set, ok := u.(*model.Set)
	if !ok {
		return false, unexpectedUnit(s, u)
	}
	if !AdvantageSetDecided(set.GamesWon[0], set.GamesWon[1], m.Rules.GamesPerSet) {
		return false, nil
	}
	completeSet(set, m)
	return true, nil
}

// AdvantageSetDecided reports whether a set without a tiebreak is over at
// p-q.
func AdvantageSetDecided(p, q, n int) bool {
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return (p == n && q < n-1) || (q == n && p < n-1) || (p+q >= 2*n && diff > 1)
}

func completeSet(set *model.Set, m *model.Match) {
	winner := 0
	if set.GamesWon[1] > set.GamesWon[0] {
		winner = 1
	}
	set.Winner = m.Players[winner].ID
	set.MarkComplete()
	m.SetsWon[winner]++
}
