package engine

import "github.com/roach88/scorekeeper/internal/model"

// DeuceGameStrategy completes advantage-scored standard games.
//
// It applies while fewer than 2*gamesPerSet+1 games have been played in the
// set, or in a deciding set played without a tiebreak.
type DeuceGameStrategy struct{}

func (DeuceGameStrategy) Name() string { return "deuce-game" }

func (DeuceGameStrategy) Applies(u model.Unit, m *model.Match) bool {
	g, ok := u.(*model.Game)
	if !ok || g.IsTiebreak() || m.Rules.NoAdScoring {
		return false
	}
	set := m.CurrentSet()
	return len(set.Games) < 2*m.Rules.GamesPerSet+1 || m.IsFinalSetWinByTwo()
}

func (s DeuceGameStrategy) Apply(u model.Unit, m *model.Match) (bool, error) {
	return applyLadderGame(s, u, m)
}

// NoAdGameStrategy completes standard games under no-ad scoring. The ladder
// award already ends the game on the point after deuce.
type NoAdGameStrategy struct{}

func (NoAdGameStrategy) Name() string { return "no-ad-game" }

func (NoAdGameStrategy) Applies(u model.Unit, m *model.Match) bool {
	g, ok := u.(*model.Game)
	return ok && !g.IsTiebreak() && m.Rules.NoAdScoring
}

func (s NoAdGameStrategy) Apply(u model.Unit, m *model.Match) (bool, error) {
	return applyLadderGame(s, u, m)
}

func applyLadderGame(s Strategy, u model.Unit, m *model.Match) (bool, error) {
	g, ok := u.(*model.Game)
	if !ok {
		return false, unexpectedUnit(s, u)
	}
	switch {
	case g.Score.Server == model.PointGame:
		completeGame(g, m, model.SideServer)
	case g.Score.Receiver == model.PointGame:
		completeGame(g, m, model.SideReceiver)
	default:
		return false, nil
	}
	return true, nil
}

// TiebreakGameStrategy completes a tiebreak once a side has reached the
// tiebreak target with a lead of at least two points.
type TiebreakGameStrategy struct{}

func (TiebreakGameStrategy) Name() string { return "tiebreak-game" }

func (TiebreakGameStrategy) Applies(u model.Unit, _ *model.Match) bool {
	g, ok := u.(*model.Game)
	return ok && g.IsTiebreak()
}

func (s TiebreakGameStrategy) Apply(u model.Unit, m *model.Match) (bool, error) {
	g, ok := u.(*model.Game)
	if !ok {
		return false, unexpectedUnit(s, u)
	}
	srv, rcv := g.Score.ServerPoints, g.Score.ReceiverPoints
	if !TiebreakDecided(srv, rcv, m.Rules.TiebreakPoints) {
		return false, nil
	}
	side := model.SideServer
	if rcv > srv {
		side = model.SideReceiver
	}
	completeGame(g, m, side)
	return true, nil
}

// DefaultTiebreakPoints is the tiebreak target when rules leave it unset.
const DefaultTiebreakPoints = 7

// TiebreakDecided reports whether a tiebreak at a-b is over.
func TiebreakDecided(a, b, target int) bool {
	if target <= 0 {
		target = DefaultTiebreakPoints
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return max(a, b) >= target && diff >= 2
}

func completeGame(g *model.Game, m *model.Match, side model.Side) {
	winner := g.PlayerOn(side)
	g.Winner = m.Players[winner].ID
	g.MarkComplete()
	m.CurrentSet().GamesWon[winner]++
}
