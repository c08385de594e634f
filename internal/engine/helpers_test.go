package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/scorekeeper/internal/model"
)

// startedMatch returns a match between "a" and "b" with its first set and
// game created.
func startedMatch(t *testing.T, rules model.MatchRules) *model.Match {
	t.Helper()
	m, err := model.NewMatch("m1", []model.Player{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, rules)
	require.NoError(t, err)
	m.AppendSet(model.NewSet(1, 0))
	return m
}

// fixedStrategy applies to everything and reports a fixed outcome.
type fixedStrategy struct {
	name    string
	applies bool
	done    bool
	calls   int
}

func (s *fixedStrategy) Name() string                           { return s.name }
func (s *fixedStrategy) Applies(model.Unit, *model.Match) bool { return s.applies }
func (s *fixedStrategy) Apply(model.Unit, *model.Match) (bool, error) {
	s.calls++
	return s.done, nil
}
