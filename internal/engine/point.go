package engine

import "github.com/roach88/scorekeeper/internal/model"

// StandardPointStrategy resolves points of standard games and advances the
// game score along the LOVE..GAME ladder.
type StandardPointStrategy struct{}

func (StandardPointStrategy) Name() string { return "standard-point" }

func (StandardPointStrategy) Applies(u model.Unit, m *model.Match) bool {
	if _, ok := u.(*model.Point); !ok {
		return false
	}
	g := m.CurrentGame()
	return g != nil && !g.IsTiebreak()
}

func (s StandardPointStrategy) Apply(u model.Unit, m *model.Match) (bool, error) {
	return applyPoint(s, u, m, func(score *model.GameScore, side model.Side) {
		awardLadder(score, side, m.Rules.NoAdScoring)
	})
}

// TiebreakPointStrategy resolves points of tiebreak games, which are scored
// by plain point counts.
type TiebreakPointStrategy struct{}

func (TiebreakPointStrategy) Name() string { return "tiebreak-point" }

func (TiebreakPointStrategy) Applies(u model.Unit, m *model.Match) bool {
	if _, ok := u.(*model.Point); !ok {
		return false
	}
	g := m.CurrentGame()
	return g != nil && g.IsTiebreak()
}

func (s TiebreakPointStrategy) Apply(u model.Unit, m *model.Match) (bool, error) {
	return applyPoint(s, u, m, awardCount)
}

func applyPoint(s Strategy, u model.Unit, m *model.Match, award func(*model.GameScore, model.Side)) (bool, error) {
	p, ok := u.(*model.Point)
	if !ok {
		return false, unexpectedUnit(s, u)
	}
	winner, ok, err := pointWinner(p, m)
	if err != nil || !ok {
		return false, err
	}

	g := m.CurrentGame()
	award(&g.Score, g.SideOf(winner))

	p.Winner = m.Players[winner].ID
	p.Score = g.Score
	p.MarkComplete()
	return true, nil
}

// pointWinner returns the index of the player who won p, if the point is
// decided yet.
//
// A simple point is decided by its assigned winner. A rally point is decided
// by its last stroke: a winner or ace goes to the striker, a double fault to
// the receiver, and a shot hit out to the player who hit the stroke before
// it.
func pointWinner(p *model.Point, m *model.Match) (int, bool, error) {
	if p.IsSimple() {
		idx, err := m.PlayerIndex(p.Winner)
		if err != nil {
			return -1, false, NewInvalidInputError("simple point winner", err)
		}
		return idx, true, nil
	}

	last := p.CurrentStroke()
	if last == nil {
		return -1, false, nil
	}
	striker, err := m.PlayerIndex(last.Player)
	if err != nil {
		return -1, false, NewInvalidInputError("stroke player", err)
	}

	switch {
	case last.IsWinner():
		return striker, true, nil
	case last.IsDoubleFault():
		return 1 - striker, true, nil
	case last.IsOutRallyShot():
		for i := len(p.Strokes) - 2; i >= 0; i-- {
			if p.Strokes[i].Player != last.Player {
				idx, err := m.PlayerIndex(p.Strokes[i].Player)
				if err != nil {
					return -1, false, NewInvalidInputError("stroke player", err)
				}
				return idx, true, nil
			}
		}
		return 1 - striker, true, nil
	}
	return -1, false, nil
}

// awardLadder moves side one step along the ladder.
//
// From FORTY-FORTY a side first takes the advantage and wins the game with
// the next point. Losing a point at advantage returns the game to deuce.
// Under no-ad scoring the point after deuce wins outright.
func awardLadder(score *model.GameScore, side model.Side, noAd bool) {
	awardCount(score, side)

	own, other := score.Value(side), score.Value(side.Other())
	switch {
	case own < model.PointForty:
		setValue(score, side, own+1)
	case other < model.PointForty:
		setValue(score, side, model.PointGame)
	case noAd:
		setValue(score, side, model.PointGame)
	case score.Advantage == side:
		score.Advantage = model.SideNone
		setValue(score, side, model.PointGame)
	case score.Advantage == side.Other():
		score.Advantage = model.SideNone
	default:
		score.Advantage = side
	}
}

func awardCount(score *model.GameScore, side model.Side) {
	if side == model.SideReceiver {
		score.ReceiverPoints++
		return
	}
	score.ServerPoints++
}

func setValue(score *model.GameScore, side model.Side, v model.PointValue) {
	if side == model.SideReceiver {
		score.Receiver = v
		return
	}
	score.Server = v
}
