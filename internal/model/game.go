package model

// GameKind distinguishes standard games from tiebreak games. The two obey
// different completion rules and different score representations.
type GameKind string

const (
	GameStandard GameKind = "standard"
	GameTiebreak GameKind = "tiebreak"
)

// Game is one game of a set.
type Game struct {
	Type GameKind `json:"type"`

	// Server is the index into Match.Players of the player serving first.
	Server int `json:"server"`

	Score  GameScore `json:"score"`
	Points []*Point  `json:"points"`
	Winner string    `json:"winner,omitempty"`
	Status Status    `json:"status"`
}

// NewGame returns an unstarted standard game served by server.
func NewGame(server int) *Game {
	return &Game{Type: GameStandard, Server: server, Points: []*Point{}, Status: StatusNotStarted}
}

// NewTiebreakGame returns an unstarted tiebreak game served first by server.
func NewTiebreakGame(server int) *Game {
	return &Game{
		Type:   GameTiebreak,
		Server: server,
		Score:  GameScore{Tiebreak: true},
		Points: []*Point{},
		Status: StatusNotStarted,
	}
}

// Kind returns KindTiebreakGame for tiebreaks and KindGame otherwise.
func (g *Game) Kind() Kind {
	if g.Type == GameTiebreak {
		return KindTiebreakGame
	}
	return KindGame
}

func (g *Game) State() Status { return g.Status.normalize() }

// IsTiebreak reports whether g is a tiebreak game.
func (g *Game) IsTiebreak() bool { return g.Type == GameTiebreak }

// Receiver returns the index of the receiving player.
func (g *Game) Receiver() int { return 1 - g.Server }

// SideOf maps a player index to server or receiver.
func (g *Game) SideOf(player int) Side {
	if player == g.Server {
		return SideServer
	}
	return SideReceiver
}

// PlayerOn maps a side back to a player index.
func (g *Game) PlayerOn(side Side) int {
	if side == SideReceiver {
		return g.Receiver()
	}
	return g.Server
}

// LastPoint returns the most recent point, or nil.
func (g *Game) LastPoint() *Point {
	if len(g.Points) == 0 {
		return nil
	}
	return g.Points[len(g.Points)-1]
}

// CurrentPoint returns the point in progress, or nil when the next event
// must start a new point.
func (g *Game) CurrentPoint() *Point {
	p := g.LastPoint()
	if p == nil || p.State() == StatusComplete {
		return nil
	}
	return p
}

// AppendPoint adds p as the next point of the game.
func (g *Game) AppendPoint(p *Point) {
	g.Points = append(g.Points, p)
}

func (g *Game) MarkInProgress() { advance(&g.Status, StatusInProgress) }
func (g *Game) MarkComplete()   { advance(&g.Status, StatusComplete) }
