package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scorekeeper/internal/engine"
	"github.com/roach88/scorekeeper/internal/model"
	"github.com/roach88/scorekeeper/internal/stats"
	"github.com/roach88/scorekeeper/internal/testutil"
)

const (
	alice = testutil.Alice
	bob   = testutil.Bob
)

func TestScenario_GameToLove(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())

	testutil.WinPoints(t, p, alice, 3)
	g := p.Match().CurrentGame()
	assert.Equal(t, "40 - 0", g.Score.String())
	assert.Equal(t, model.StatusInProgress, g.State())

	testutil.WinPoint(t, p, alice)

	assert.Equal(t, model.StatusComplete, g.State())
	assert.Equal(t, alice, g.Winner)
	assert.Equal(t, "GAME - 0", g.Score.String())
	for _, pt := range g.Points {
		assert.False(t, pt.Score.IsDeuce())
	}
	assert.Equal(t, "1-0", p.Match().Score().String())
}

func TestScenario_AdvantageGame(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())
	testutil.ReachDeuce(t, p)
	g := p.Match().CurrentGame()

	testutil.WinPoint(t, p, alice)
	assert.Equal(t, "AD - 40", g.Score.String())
	assert.Equal(t, model.StatusInProgress, g.State(), "advantage does not end the game")

	testutil.WinPoint(t, p, alice)
	assert.Equal(t, model.StatusComplete, g.State())
	assert.Equal(t, alice, g.Winner)
}

func TestScenario_DeuceNeverSelfResolves(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())
	testutil.ReachDeuce(t, p)
	g := p.Match().CurrentGame()

	for range 20 {
		testutil.WinPoint(t, p, bob)
		require.Equal(t, model.StatusInProgress, g.State())
		testutil.WinPoint(t, p, alice)
		require.True(t, g.Score.IsDeuce())
	}

	testutil.WinPoints(t, p, bob, 2)
	assert.Equal(t, bob, g.Winner)
	assert.Len(t, g.Points, 48)
}

func TestScenario_NoAdGame(t *testing.T) {
	rules := model.DefaultRules()
	rules.NoAdScoring = true
	p := testutil.NewProcessor(t, rules)
	testutil.ReachDeuce(t, p)
	g := p.Match().CurrentGame()

	testutil.WinPoint(t, p, bob)

	assert.Equal(t, model.StatusComplete, g.State())
	assert.Equal(t, bob, g.Winner)
	assert.Equal(t, "40 - GAME", g.Score.String())
	for _, pt := range g.Points {
		assert.Equal(t, model.SideNone, pt.Score.Advantage)
	}
}

func TestScenario_TiebreakSet(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())
	testutil.ReachGames(t, p, 6, 6)

	set := p.Match().CurrentSet()
	require.Len(t, set.Games, 13)
	tb := set.CurrentGame()
	assert.True(t, tb.IsTiebreak())
	assert.Equal(t, model.KindTiebreakGame, tb.Kind())
	for _, g := range set.Games[:12] {
		assert.Len(t, g.Points, 4)
	}

	for range 5 {
		testutil.WinPoint(t, p, alice)
		testutil.WinPoint(t, p, bob)
	}
	assert.Equal(t, "5 - 5", tb.Score.String())
	testutil.WinPoint(t, p, alice)
	assert.Equal(t, model.StatusInProgress, tb.State())
	testutil.WinPoint(t, p, alice)

	assert.Equal(t, model.StatusComplete, tb.State())
	assert.Equal(t, model.StatusComplete, set.State())
	assert.Equal(t, alice, set.Winner)
	assert.Equal(t, [2]int{7, 6}, set.GamesWon)

	m := p.Match()
	require.Len(t, m.Sets, 2)
	assert.Equal(t, "7-6(5)", m.Sets[0].Score().String())
	assert.Equal(t, 1-tb.Server, m.Sets[1].Games[0].Server, "tiebreak receiver serves next")
}

func TestScenario_AdvantageFinalSet(t *testing.T) {
	rules := model.DefaultRules()
	rules.FinalSetTiebreakDisabled = true
	p := testutil.NewProcessor(t, rules)

	testutil.WinSet(t, p, alice)
	testutil.WinSet(t, p, bob)
	require.True(t, p.Match().IsFinalSetWinByTwo())

	testutil.ReachGames(t, p, 6, 6)
	set := p.Match().CurrentSet()
	assert.False(t, set.CurrentGame().IsTiebreak())

	testutil.WinGame(t, p, alice)
	assert.Equal(t, [2]int{7, 6}, set.GamesWon)
	assert.Equal(t, model.StatusInProgress, set.State())

	testutil.WinGame(t, p, bob)
	testutil.WinGame(t, p, alice)
	assert.Equal(t, [2]int{8, 7}, set.GamesWon)
	assert.Equal(t, model.StatusInProgress, set.State())

	testutil.WinGame(t, p, alice)
	assert.Equal(t, [2]int{9, 7}, set.GamesWon)
	assert.Equal(t, model.StatusComplete, set.State())

	m := p.Match()
	assert.Equal(t, model.StatusComplete, m.State())
	assert.Equal(t, alice, m.Winner)
	assert.Len(t, m.Sets, 3, "no set after the match is decided")
	for _, g := range set.Games {
		assert.False(t, g.IsTiebreak())
	}
	assert.Equal(t, "6-0, 0-6, 9-7", m.Score().String())
}

func TestScenario_TiebreakInEarlierSetWhenFinalHasNone(t *testing.T) {
	rules := model.DefaultRules()
	rules.FinalSetTiebreakDisabled = true
	p := testutil.NewProcessor(t, rules)

	testutil.ReachGames(t, p, 6, 6)

	assert.True(t, p.Match().CurrentGame().IsTiebreak())
}

func TestScenario_TiebreakTarget(t *testing.T) {
	rules := model.DefaultRules()
	rules.TiebreakPoints = 10
	p := testutil.NewProcessor(t, rules)
	testutil.ReachGames(t, p, 6, 6)
	tb := p.Match().CurrentGame()

	testutil.WinPoints(t, p, bob, 9)
	assert.Equal(t, model.StatusInProgress, tb.State())
	testutil.WinPoint(t, p, bob)
	assert.Equal(t, bob, tb.Winner)
}

func TestMatch_CompletesAndRejectsFurtherEvents(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())

	testutil.WinSet(t, p, bob)
	testutil.WinSet(t, p, bob)

	m := p.Match()
	assert.Equal(t, model.StatusComplete, m.State())
	assert.Equal(t, bob, m.Winner)
	assert.Equal(t, [2]int{0, 2}, m.SetsWon)
	assert.Len(t, m.Sets, 2)

	seq := m.Seq
	_, err := p.UpdatePoint(model.NewSimplePoint(alice))
	assert.True(t, engine.IsInvalidInput(err))
	assert.Equal(t, seq, m.Seq)
}

func TestServing_AlternatesAcrossGamesAndSets(t *testing.T) {
	rules := model.DefaultRules()
	rules.FirstServer = 1
	p := testutil.NewProcessor(t, rules)

	testutil.WinSet(t, p, alice)

	m := p.Match()
	for i, g := range m.Sets[0].Games {
		assert.Equal(t, (i+1)%2, g.Server, "game %d", i+1)
	}
	assert.Equal(t, 1, m.Sets[1].Games[0].Server, "six games later bob serves again")
}

func TestRally_Outcomes(t *testing.T) {
	stroke := func(player string, o model.Outcome) model.Stroke {
		return model.Stroke{Player: player, Outcome: o}
	}

	tests := []struct {
		name    string
		strokes []model.Stroke
		winner  string
	}{
		{"ace", []model.Stroke{stroke(alice, model.OutcomeAce)}, alice},
		{"double fault", []model.Stroke{stroke(alice, model.OutcomeFault), stroke(alice, model.OutcomeDoubleFault)}, bob},
		{"return winner", []model.Stroke{stroke(alice, model.OutcomeInPlay), stroke(bob, model.OutcomeWinner)}, bob},
		{"rally ends out", []model.Stroke{
			stroke(alice, model.OutcomeInPlay),
			stroke(bob, model.OutcomeInPlay),
			stroke(alice, model.OutcomeInPlay),
			stroke(bob, model.OutcomeOut),
		}, alice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewProcessor(t, model.DefaultRules())

			for i, s := range tt.strokes {
				_, err := p.UpdateStroke(s)
				require.NoError(t, err)
				pt := p.Match().CurrentGame().LastPoint()
				if i < len(tt.strokes)-1 {
					assert.Equal(t, model.StatusInProgress, pt.State())
				}
			}

			g := p.Match().CurrentGame()
			require.Len(t, g.Points, 1)
			pt := g.Points[0]
			assert.Equal(t, model.StatusComplete, pt.State())
			assert.Equal(t, tt.winner, pt.Winner)
			assert.Len(t, pt.Strokes, len(tt.strokes))
			assert.Equal(t, int64(len(tt.strokes)), p.Match().Seq)
		})
	}
}

func TestUpdatePoint_RallyPoint(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())

	pt := model.NewRallyPoint()
	pt.AddStroke(model.Stroke{Player: alice, Outcome: model.OutcomeInPlay})
	_, err := p.UpdatePoint(pt)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, pt.State())

	testutil.Rally(t, p, model.Stroke{Player: bob, Outcome: model.OutcomeWinner})

	assert.Equal(t, bob, pt.Winner)
	assert.Len(t, p.Match().CurrentGame().Points, 1)
}

func TestUpdate_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, p *engine.Processor)
		apply func(p *engine.Processor) error
	}{
		{
			name: "unknown stroke player",
			apply: func(p *engine.Processor) error {
				_, err := p.UpdateStroke(model.Stroke{Player: "carol", Outcome: model.OutcomeAce})
				return err
			},
		},
		{
			name: "unknown outcome",
			apply: func(p *engine.Processor) error {
				_, err := p.UpdateStroke(model.Stroke{Player: alice, Outcome: "let"})
				return err
			},
		},
		{
			name: "nil point",
			apply: func(p *engine.Processor) error {
				_, err := p.UpdatePoint(nil)
				return err
			},
		},
		{
			name: "rally point without strokes",
			apply: func(p *engine.Processor) error {
				_, err := p.UpdatePoint(model.NewRallyPoint())
				return err
			},
		},
		{
			name: "unknown point winner",
			apply: func(p *engine.Processor) error {
				_, err := p.UpdatePoint(model.NewSimplePoint("carol"))
				return err
			},
		},
		{
			name: "simple point during a rally",
			setup: func(t *testing.T, p *engine.Processor) {
				testutil.Rally(t, p, model.Stroke{Player: alice, Outcome: model.OutcomeInPlay})
			},
			apply: func(p *engine.Processor) error {
				_, err := p.UpdatePoint(model.NewSimplePoint(alice))
				return err
			},
		},
		{
			name: "point applied twice",
			setup: func(t *testing.T, p *engine.Processor) {
				testutil.WinPoint(t, p, alice)
			},
			apply: func(p *engine.Processor) error {
				_, err := p.UpdatePoint(p.Match().CurrentGame().Points[0])
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewProcessor(t, model.DefaultRules())
			if tt.setup != nil {
				tt.setup(t, p)
			}
			before := p.Match().Score().String()
			seq := p.Match().Seq

			err := tt.apply(p)

			require.Error(t, err)
			assert.True(t, engine.IsInvalidInput(err), err.Error())
			assert.Equal(t, before, p.Match().Score().String())
			assert.Equal(t, seq, p.Match().Seq)
		})
	}
}

func TestProcessor_Dispatch(t *testing.T) {
	players := func(ids ...string) []model.Player {
		out := make([]model.Player, len(ids))
		for i, id := range ids {
			out[i] = model.NewPlayer(id, "")
		}
		return out
	}
	newMatch := func(t *testing.T, ids ...string) *model.Match {
		m, err := model.NewMatch("m", players(ids...), model.DefaultRules())
		require.NoError(t, err)
		return m
	}

	t.Run("nil match", func(t *testing.T) {
		_, err := engine.NewProcessor(nil)
		assert.True(t, engine.IsInvalidInput(err))
	})
	t.Run("no players", func(t *testing.T) {
		_, err := engine.NewProcessor(&model.Match{ID: "m"})
		assert.True(t, engine.IsInvalidInput(err))
	})
	t.Run("singles", func(t *testing.T) {
		p, err := engine.NewProcessor(newMatch(t, "a", "b"))
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
	t.Run("doubles", func(t *testing.T) {
		_, err := engine.NewProcessor(newMatch(t, "a", "b", "c", "d"))
		assert.True(t, engine.IsUnsupportedVariant(err))
	})
	for _, ids := range [][]string{{"a"}, {"a", "b", "c"}, {"a", "b", "c", "d", "e"}} {
		t.Run("configuration", func(t *testing.T) {
			_, err := engine.NewProcessor(newMatch(t, ids...))
			assert.True(t, engine.IsConfigurationError(err))
		})
	}
}

func TestProcessor_StampsSequence(t *testing.T) {
	m := testutil.NewMatch(t, model.DefaultRules())
	m.Seq = 10
	p, err := engine.NewProcessor(m)
	require.NoError(t, err)

	testutil.Rally(t, p,
		model.Stroke{Player: alice, Outcome: model.OutcomeInPlay},
		model.Stroke{Player: bob, Outcome: model.OutcomeOut},
	)
	testutil.WinPoint(t, p, bob)

	g := m.CurrentGame()
	assert.Equal(t, int64(11), g.Points[0].Strokes[0].Seq)
	assert.Equal(t, int64(12), g.Points[0].Strokes[1].Seq)
	assert.Equal(t, int64(13), g.Points[1].Seq)
	assert.Equal(t, int64(13), m.Seq)
}

func TestEvents_FireInOrder(t *testing.T) {
	rules := model.DefaultRules()
	rules.BestOf = 1
	p := testutil.NewProcessor(t, rules)

	var log []engine.EventType
	counts := map[engine.EventType]int{}
	for _, et := range engine.EventTypes {
		p.RegisterEvent(et, func(*model.Match) error {
			counts[et]++
			log = append(log, et)
			return nil
		})
	}
	var order []string
	p.RegisterEvent(engine.EventMatchComplete, func(*model.Match) error { order = append(order, "first"); return nil })
	p.RegisterEvent(engine.EventMatchComplete, func(*model.Match) error { order = append(order, "second"); return nil })

	testutil.WinSet(t, p, alice)

	assert.Equal(t, 24, counts[engine.EventPointComplete])
	assert.Equal(t, 6, counts[engine.EventGameComplete])
	assert.Equal(t, 1, counts[engine.EventSetComplete])
	assert.Equal(t, 1, counts[engine.EventMatchComplete])
	assert.Equal(t, []engine.EventType{
		engine.EventPointComplete,
		engine.EventGameComplete,
		engine.EventSetComplete,
		engine.EventMatchComplete,
	}, log[len(log)-4:])
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEvents_CallbackSeesCompletedUnit(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())

	var winners []string
	p.RegisterEvent(engine.EventGameComplete, func(m *model.Match) error {
		winners = append(winners, m.CurrentGame().Winner)
		return nil
	})

	testutil.WinGame(t, p, bob)
	testutil.WinGame(t, p, alice)

	assert.Equal(t, []string{bob, alice}, winners)
}

func TestEvents_CallbackFailure(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())
	boom := errors.New("boom")

	var after int
	p.RegisterEvent(engine.EventGameComplete, func(*model.Match) error { return boom })
	p.RegisterEvent(engine.EventGameComplete, func(*model.Match) error { after++; return nil })

	testutil.WinPoints(t, p, alice, 3)
	_, err := p.UpdatePoint(model.NewSimplePoint(alice))

	require.Error(t, err)
	assert.True(t, engine.IsCallbackFailure(err))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "event=game-complete")
	assert.Zero(t, after, "remaining callbacks are aborted")

	m := p.Match()
	set := m.CurrentSet()
	assert.Equal(t, model.StatusComplete, set.Games[0].State(), "no rollback")
	assert.Equal(t, [2]int{1, 0}, set.GamesWon)
	assert.Len(t, set.Games, 1, "cascade stopped at the failure")
	assert.Equal(t, int64(4), m.Seq, "the applied point keeps its sequence number")

	// The next event resumes the cascade before it is applied.
	_, err = p.UpdatePoint(model.NewSimplePoint(bob))
	require.NoError(t, err)
	require.Len(t, set.Games, 2)
	assert.Len(t, set.Games[1].Points, 1)
	assert.Equal(t, "15 - 0", set.Games[1].Score.String(), "bob serves the second game")
	assert.Equal(t, [2]int{1, 0}, set.GamesWon, "the game is counted once")
}

func TestEvents_CallbackPanic(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())
	p.RegisterEvent(engine.EventPointComplete, func(*model.Match) error { panic("bad callback") })

	_, err := p.UpdatePoint(model.NewSimplePoint(alice))

	assert.True(t, engine.IsCallbackFailure(err))
	assert.Contains(t, err.Error(), "bad callback")
	assert.Equal(t, "15 - 0", p.Match().CurrentGame().Score.String())
}

func TestEvents_CallbackFailsWhileSettling(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())
	boom := errors.New("boom")
	fail := func(*model.Match) error { return boom }
	p.RegisterEvent(engine.EventPointComplete, fail)
	p.RegisterEvent(engine.EventGameComplete, fail)

	for i := range 4 {
		_, err := p.UpdatePoint(model.NewSimplePoint(alice))
		require.True(t, engine.IsCallbackFailure(err), "point %d", i+1)
		require.False(t, engine.IsNotApplied(err), "point %d", i+1)
	}
	m := p.Match()
	set := m.CurrentSet()
	assert.Equal(t, int64(4), m.Seq)

	// Settling the fourth point completes the game, and its callback fails.
	_, err := p.UpdatePoint(model.NewSimplePoint(bob))
	require.Error(t, err)
	assert.True(t, engine.IsNotApplied(err))
	assert.True(t, engine.IsCallbackFailure(err))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "event=game-complete")
	assert.Equal(t, int64(4), m.Seq, "an unapplied event takes no sequence number")
	require.Len(t, set.Games, 1)
	assert.Len(t, set.Games[0].Points, 4, "the point was not appended")
	assert.Equal(t, model.StatusComplete, set.Games[0].State())
	assert.Equal(t, [2]int{1, 0}, set.GamesWon)

	// Submitted again, the point opens the second game.
	_, err = p.UpdatePoint(model.NewSimplePoint(bob))
	assert.True(t, engine.IsCallbackFailure(err))
	assert.False(t, engine.IsNotApplied(err))
	assert.Equal(t, int64(5), m.Seq)
	require.Len(t, set.Games, 2)
	assert.Equal(t, "15 - 0", set.Games[1].Score.String())
	assert.Equal(t, [2]int{1, 0}, set.GamesWon)
}

func TestProcessor_Settle(t *testing.T) {
	p := testutil.NewProcessor(t, model.DefaultRules())
	failures, completed := 1, 0
	p.RegisterEvent(engine.EventGameComplete, func(*model.Match) error {
		if failures > 0 {
			failures--
			return errors.New("boom")
		}
		completed++
		return nil
	})

	testutil.WinPoints(t, p, alice, 3)
	_, err := p.UpdatePoint(model.NewSimplePoint(alice))
	require.True(t, engine.IsCallbackFailure(err))

	m := p.Match()
	require.Len(t, m.CurrentSet().Games, 1)

	require.NoError(t, p.Settle())
	assert.Len(t, m.CurrentSet().Games, 2, "the next game is appended")
	assert.Equal(t, int64(4), m.Seq, "settling consumes no sequence number")
	assert.Zero(t, completed, "the completed game does not fire again")

	// Nothing is left open.
	require.NoError(t, p.Settle())
	assert.Len(t, m.CurrentSet().Games, 2)
}

func TestProcessor_Statistics(t *testing.T) {
	points := stats.PointsWon()
	games := stats.GamesWon()
	p := testutil.NewProcessor(t, model.DefaultRules(), engine.WithInstructions(points))
	require.True(t, p.AddInstruction(games))

	testutil.WinGame(t, p, alice)
	testutil.WinPoint(t, p, bob)

	results := p.Statistics()
	require.Len(t, results, 2)
	assert.Equal(t, 4, results[0].Get(alice))
	assert.Equal(t, 1, results[0].Get(bob))
	assert.Equal(t, 1, results[1].Get(alice))

	again := p.Statistics()
	assert.Equal(t, 8, again[0].Get(alice), "accumulators are not reset between passes")

	p.ResetStatistics()
	require.True(t, p.RemoveInstruction(games))
	results = p.Statistics()
	require.Len(t, results, 1)
	assert.Equal(t, 4, results[0].Get(alice))
}

func TestWithResolver(t *testing.T) {
	r := engine.NewResolver(map[model.Kind][]engine.Strategy{
		model.KindPoint: {engine.StandardPointStrategy{}},
	})
	p := testutil.NewProcessor(t, model.DefaultRules(), engine.WithResolver(r))

	_, err := p.UpdatePoint(model.NewSimplePoint(alice))

	assert.True(t, engine.IsConfigurationError(err))
	assert.Equal(t, "15 - 0", p.Match().CurrentGame().Score.String(), "the point was still scored")
}
