// Package testutil drives matches through the engine for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/scorekeeper/internal/engine"
	"github.com/roach88/scorekeeper/internal/model"
)

// Player IDs used by NewMatch. Alice serves the first game under default
// rules.
const (
	Alice = "alice"
	Bob   = "bob"
)

// maxPoints bounds every helper loop so a scoring bug fails the test instead
// of hanging it.
const maxPoints = 500

// NewMatch returns an unstarted singles match between Alice and Bob.
func NewMatch(t testing.TB, rules model.MatchRules) *model.Match {
	t.Helper()
	m, err := model.NewMatch("match-1", []model.Player{
		model.NewPlayer(Alice, "Alice"),
		model.NewPlayer(Bob, "Bob"),
	}, rules)
	require.NoError(t, err)
	return m
}

// NewProcessor returns a processor over a fresh match.
func NewProcessor(t testing.TB, rules model.MatchRules, opts ...engine.ProcessorOption) *engine.Processor {
	t.Helper()
	p, err := engine.NewProcessor(NewMatch(t, rules), opts...)
	require.NoError(t, err)
	return p
}

// WinPoint records a simple point won by player.
func WinPoint(t testing.TB, p *engine.Processor, player string) {
	t.Helper()
	_, err := p.UpdatePoint(model.NewSimplePoint(player))
	require.NoError(t, err)
}

// WinPoints records n simple points won by player.
func WinPoints(t testing.TB, p *engine.Processor, player string, n int) {
	t.Helper()
	for range n {
		WinPoint(t, p, player)
	}
}

// Rally records strokes one by one.
func Rally(t testing.TB, p *engine.Processor, strokes ...model.Stroke) {
	t.Helper()
	for _, s := range strokes {
		_, err := p.UpdateStroke(s)
		require.NoError(t, err)
	}
}

// WinGame has player win every point until the current game is over.
// Works for standard and tiebreak games alike.
func WinGame(t testing.TB, p *engine.Processor, player string) {
	t.Helper()
	g := p.Match().CurrentGame()
	if g == nil {
		WinPoint(t, p, player)
		g = p.Match().CurrentGame()
	}
	for i := 0; g.State() != model.StatusComplete; i++ {
		require.Less(t, i, maxPoints, "game did not complete")
		WinPoint(t, p, player)
	}
	require.Equal(t, player, g.Winner)
}

// WinGames has player win n consecutive games.
func WinGames(t testing.TB, p *engine.Processor, player string, n int) {
	t.Helper()
	for range n {
		WinGame(t, p, player)
	}
}

// WinSet has player win every game until the current set is over.
func WinSet(t testing.TB, p *engine.Processor, player string) {
	t.Helper()
	s := p.Match().CurrentSet()
	if s == nil {
		WinGame(t, p, player)
		s = p.Match().CurrentSet()
	}
	for i := 0; s.State() != model.StatusComplete; i++ {
		require.Less(t, i, maxPoints, "set did not complete")
		WinGame(t, p, player)
	}
	require.Equal(t, player, s.Winner)
}

// ReachGames alternates games from the start of the current set until the
// games stand at a-b for Alice and Bob. The set must not finish on the way.
func ReachGames(t testing.TB, p *engine.Processor, a, b int) {
	t.Helper()
	for i := range max(a, b) {
		if i < a {
			WinGame(t, p, Alice)
		}
		if i < b {
			WinGame(t, p, Bob)
		}
	}
	set := p.Match().CurrentSet()
	require.Equal(t, [2]int{a, b}, set.GamesWon)
}

// ReachDeuce alternates points in the current game until it stands at
// FORTY-FORTY.
func ReachDeuce(t testing.TB, p *engine.Processor) {
	t.Helper()
	for range 3 {
		WinPoint(t, p, Alice)
		WinPoint(t, p, Bob)
	}
	require.True(t, p.Match().CurrentGame().Score.IsDeuce())
}
