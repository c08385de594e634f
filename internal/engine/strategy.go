package engine

import "github.com/roach88/scorekeeper/internal/model"

// Strategy decides whether one kind of scoring unit has just been won under
// one rule variant.
//
// Applies must be side-effect free. For a given match configuration and unit
// state, exactly one registered strategy per unit kind may apply.
//
// Apply returns true when the unit is complete. In that case the unit is
// already marked COMPLETE, its winner is set, and the win has been counted on
// the parent unit.
type Strategy interface {
	Name() string
	Applies(u model.Unit, m *model.Match) bool
	Apply(u model.Unit, m *model.Match) (bool, error)
}

// unexpectedUnit reports a strategy handed a unit of the wrong concrete type.
// This is a registration defect.
func unexpectedUnit(s Strategy, u model.Unit) error {
	return &ScoringError{
		Code:    ErrCodeConfiguration,
		Message: "strategy " + s.Name() + " cannot resolve this unit",
		Unit:    u.Kind(),
	}
}
