package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MatchRules configures which scoring variants apply to a match.
type MatchRules struct {
	// BestOf is the number of sets in the match.
	BestOf int `json:"best_of" validate:"oneof=1 3 5"`

	// GamesPerSet is the number of games needed to win a set.
	GamesPerSet int `json:"games_per_set" validate:"min=1,max=12"`

	// NoAdScoring makes the point after deuce decide the game.
	NoAdScoring bool `json:"no_ad_scoring"`

	// FinalSetTiebreakDisabled makes the deciding set an advantage set.
	FinalSetTiebreakDisabled bool `json:"final_set_tiebreak_disabled"`

	// TiebreakPoints is the point target of a tiebreak game (win by two).
	TiebreakPoints int `json:"tiebreak_points" validate:"min=1,max=21"`

	// FirstServer is the index of the player serving the first game.
	FirstServer int `json:"first_server" validate:"min=0,max=1"`
}

// DefaultRules returns best-of-three, six-game sets, advantage scoring and a
// seven-point tiebreak in every set.
func DefaultRules() MatchRules {
	return MatchRules{
		BestOf:         3,
		GamesPerSet:    6,
		TiebreakPoints: 7,
	}
}

// SetsNeeded is the number of sets a player must win to take the match.
func (r MatchRules) SetsNeeded() int {
	return r.BestOf/2 + 1
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the rules against their field constraints.
func (r MatchRules) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid match rules: %w", err)
	}
	return nil
}
