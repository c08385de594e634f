package model

// Set is one set of a match.
type Set struct {
	// Number is 1-based.
	Number int `json:"number"`

	Games []*Game `json:"games"`

	// GamesWon is indexed by player.
	GamesWon [2]int `json:"games_won"`

	Winner string `json:"winner,omitempty"`
	Status Status `json:"status"`
}

// NewSet returns an unstarted set whose first game is served by server.
func NewSet(number, server int) *Set {
	return &Set{
		Number: number,
		Games:  []*Game{NewGame(server)},
		Status: StatusNotStarted,
	}
}

func (s *Set) Kind() Kind    { return KindSet }
func (s *Set) State() Status { return s.Status.normalize() }

// CurrentGame returns the last game of the set, or nil.
func (s *Set) CurrentGame() *Game {
	if len(s.Games) == 0 {
		return nil
	}
	return s.Games[len(s.Games)-1]
}

// AppendGame adds g as the next game of the set.
func (s *Set) AppendGame(g *Game) {
	s.Games = append(s.Games, g)
}

// Score returns the games tally, annotated with the tiebreak loser's points
// when a tiebreak decided the set.
func (s *Set) Score() SetScore {
	score := SetScore{Games: s.GamesWon}
	if g := s.CurrentGame(); g != nil && g.IsTiebreak() && g.State() == StatusComplete {
		loser := min(g.Score.ServerPoints, g.Score.ReceiverPoints)
		score.TiebreakLoserPoints = &loser
	}
	return score
}

func (s *Set) MarkInProgress() { advance(&s.Status, StatusInProgress) }
func (s *Set) MarkComplete()   { advance(&s.Status, StatusComplete) }
