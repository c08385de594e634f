package engine

import "github.com/roach88/scorekeeper/internal/model"

// Resolver picks the single completion strategy that applies to a unit and
// applies it.
//
// Strategies are registered per unit kind and tried in registration order.
// The registration map is fixed at construction.
type Resolver struct {
	strategies map[model.Kind][]Strategy
}

// DefaultStrategies returns the rulebook for singles tennis.
func DefaultStrategies() map[model.Kind][]Strategy {
	return map[model.Kind][]Strategy{
		model.KindPoint:        {StandardPointStrategy{}, TiebreakPointStrategy{}},
		model.KindGame:         {DeuceGameStrategy{}, NoAdGameStrategy{}},
		model.KindTiebreakGame: {TiebreakGameStrategy{}},
		model.KindSet:          {StandardSetStrategy{}, NoFinalSetTiebreakStrategy{}},
		model.KindMatch:        {BestOfMatchStrategy{}},
	}
}

// NewResolver creates a resolver over strategies. A nil map selects
// DefaultStrategies. The map and its slices are copied.
func NewResolver(strategies map[model.Kind][]Strategy) *Resolver {
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	r := &Resolver{strategies: make(map[model.Kind][]Strategy, len(strategies))}
	for kind, list := range strategies {
		r.strategies[kind] = append([]Strategy(nil), list...)
	}
	return r
}

// Strategy returns the one strategy that applies to u.
//
// Returns a configuration error when none applies and an ambiguity error
// when more than one does.
func (r *Resolver) Strategy(u model.Unit, m *model.Match) (Strategy, error) {
	var matched []Strategy
	for _, s := range r.strategies[u.Kind()] {
		if s.Applies(u, m) {
			matched = append(matched, s)
		}
	}
	switch len(matched) {
	case 0:
		return nil, NewConfigurationError(u.Kind())
	case 1:
		return matched[0], nil
	}
	names := make([]string, len(matched))
	for i, s := range matched {
		names[i] = s.Name()
	}
	return nil, NewAmbiguityError(u.Kind(), names)
}

// Resolve reports whether u is complete, applying its strategy if needed.
// A unit that is already complete is reported as such without applying
// anything again.
func (r *Resolver) Resolve(u model.Unit, m *model.Match) (bool, error) {
	if u.State() == model.StatusComplete {
		return true, nil
	}
	s, err := r.Strategy(u, m)
	if err != nil {
		return false, err
	}
	return s.Apply(u, m)
}
