package stats

import "github.com/roach88/scorekeeper/internal/model"

// Builtins returns a fresh instance of every built-in instruction.
func Builtins() []Instruction {
	return []Instruction{
		PointsWon(),
		Aces(),
		DoubleFaults(),
		Winners(),
		Errors(),
		GamesWon(),
		ServiceHolds(),
		Breaks(),
		TiebreaksWon(),
		SetsWon(),
	}
}

// PointsWon counts completed points per winner.
func PointsWon() *Tally {
	return NewTally("points_won", model.KindPoint, func(u model.Unit, _ *model.Match) (string, bool) {
		p, ok := u.(*model.Point)
		if !ok || p.State() != model.StatusComplete {
			return "", false
		}
		return p.Winner, true
	})
}

func strokeTally(name string, match func(model.Stroke) bool) *Tally {
	return NewTally(name, model.KindStroke, func(u model.Unit, _ *model.Match) (string, bool) {
		s, ok := u.(*model.Stroke)
		if !ok || !match(*s) {
			return "", false
		}
		return s.Player, true
	})
}

// Aces counts aces per server.
func Aces() *Tally {
	return strokeTally("aces", func(s model.Stroke) bool { return s.Outcome == model.OutcomeAce })
}

// DoubleFaults counts double faults per server.
func DoubleFaults() *Tally {
	return strokeTally("double_faults", model.Stroke.IsDoubleFault)
}

// Winners counts rally winners per striker. Aces are counted separately.
func Winners() *Tally {
	return strokeTally("winners", func(s model.Stroke) bool { return s.Outcome == model.OutcomeWinner })
}

// Errors counts shots hit out, per striker.
func Errors() *Tally {
	return strokeTally("errors", model.Stroke.IsOutRallyShot)
}

func gameTally(name string, kind model.Kind, match func(g *model.Game, m *model.Match) bool) *Tally {
	return NewTally(name, kind, func(u model.Unit, m *model.Match) (string, bool) {
		g, ok := u.(*model.Game)
		if !ok || g.State() != model.StatusComplete || !match(g, m) {
			return "", false
		}
		return g.Winner, true
	})
}

// GamesWon counts standard games per winner.
func GamesWon() *Tally {
	return gameTally("games_won", model.KindGame, func(*model.Game, *model.Match) bool { return true })
}

// ServiceHolds counts standard games won by the server.
func ServiceHolds() *Tally {
	return gameTally("service_holds", model.KindGame, func(g *model.Game, m *model.Match) bool {
		return g.Winner == m.Players[g.Server].ID
	})
}

// Breaks counts standard games won by the receiver.
func Breaks() *Tally {
	return gameTally("breaks", model.KindGame, func(g *model.Game, m *model.Match) bool {
		return g.Winner != m.Players[g.Server].ID
	})
}

// TiebreaksWon counts tiebreak games per winner.
func TiebreaksWon() *Tally {
	return gameTally("tiebreaks_won", model.KindTiebreakGame, func(*model.Game, *model.Match) bool { return true })
}

// SetsWon counts completed sets per winner.
func SetsWon() *Tally {
	return NewTally("sets_won", model.KindSet, func(u model.Unit, _ *model.Match) (string, bool) {
		s, ok := u.(*model.Set)
		if !ok || s.State() != model.StatusComplete {
			return "", false
		}
		return s.Winner, true
	})
}
