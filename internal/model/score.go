package model

import (
	"fmt"
	"strings"
)

// PointValue is one side's position on the LOVE..GAME ladder of a
// standard game. Advantage is not a value: it is FORTY-FORTY plus
// GameScore.Advantage.
type PointValue int

const (
	PointLove PointValue = iota
	PointFifteen
	PointThirty
	PointForty
	PointGame
)

func (v PointValue) String() string {
	switch v {
	case PointLove:
		return "0"
	case PointFifteen:
		return "15"
	case PointThirty:
		return "30"
	case PointForty:
		return "40"
	case PointGame:
		return "GAME"
	}
	return fmt.Sprintf("PointValue(%d)", int(v))
}

// Side identifies server or receiver within a game.
type Side int

const (
	SideNone Side = iota
	SideServer
	SideReceiver
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case SideServer:
		return SideReceiver
	case SideReceiver:
		return SideServer
	}
	return SideNone
}

func (s Side) String() string {
	switch s {
	case SideServer:
		return "server"
	case SideReceiver:
		return "receiver"
	}
	return "none"
}

// GameScore is the score of one game from the server's perspective.
//
// Standard games are scored on the ladder (Server, Receiver, Advantage).
// Tiebreak games are scored by the raw point counts, which are kept for
// standard games as well.
type GameScore struct {
	Tiebreak       bool       `json:"tiebreak,omitempty"`
	Server         PointValue `json:"server"`
	Receiver       PointValue `json:"receiver"`
	Advantage      Side       `json:"advantage,omitempty"`
	ServerPoints   int        `json:"server_points"`
	ReceiverPoints int        `json:"receiver_points"`
}

// IsDeuce reports whether both sides are at FORTY.
func (g GameScore) IsDeuce() bool {
	return g.Server == PointForty && g.Receiver == PointForty
}

// Value returns the ladder value of side.
func (g GameScore) Value(side Side) PointValue {
	if side == SideReceiver {
		return g.Receiver
	}
	return g.Server
}

// Points returns the number of points won by side.
func (g GameScore) Points(side Side) int {
	if side == SideReceiver {
		return g.ReceiverPoints
	}
	return g.ServerPoints
}

func (g GameScore) String() string {
	const sep = " - "
	if g.Tiebreak {
		return fmt.Sprintf("%d%s%d", g.ServerPoints, sep, g.ReceiverPoints)
	}
	switch g.Advantage {
	case SideServer:
		return "AD" + sep + PointForty.String()
	case SideReceiver:
		return PointForty.String() + sep + "AD"
	}
	return g.Server.String() + sep + g.Receiver.String()
}

// SetScore is the games tally of one set, indexed by player.
type SetScore struct {
	Games [2]int `json:"games"`

	// TiebreakLoserPoints is set when the set was decided by a tiebreak.
	TiebreakLoserPoints *int `json:"tiebreak_loser_points,omitempty"`
}

func (s SetScore) String() string {
	out := fmt.Sprintf("%d-%d", s.Games[0], s.Games[1])
	if s.TiebreakLoserPoints != nil {
		out += fmt.Sprintf("(%d)", *s.TiebreakLoserPoints)
	}
	return out
}

// MatchScore is the sequence of set scores, one per started set.
type MatchScore struct {
	Sets []SetScore `json:"sets"`
}

func (m MatchScore) String() string {
	parts := make([]string, len(m.Sets))
	for i, s := range m.Sets {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
