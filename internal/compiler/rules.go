// Package compiler compiles CUE match-rules documents into model.MatchRules.
//
// A rules document is a CUE struct checked against an embedded schema:
//
//	best_of:            3      // 1, 3 or 5
//	games_per_set:      6      // 1..12
//	no_ad:              false
//	final_set_tiebreak: true
//	tiebreak_points:    7      // 1..21
//	first_server:       0      // 0 or 1
//
// Every field is optional. Unknown fields are rejected.
package compiler

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/scorekeeper/internal/model"
)

//go:embed schema.cue
var schemaCUE string

// CompileRules checks v against the rules schema and returns the rules it
// describes. Uses the CUE SDK's Go API directly.
//
// The CUE value should be the rules struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`rules: { best_of: 5, no_ad: true }`)
//	rules, err := CompileRules(v.LookupPath(cue.ParsePath("rules")))
func CompileRules(v cue.Value) (model.MatchRules, error) {
	if err := v.Err(); err != nil {
		return model.MatchRules{}, formatCUEError(err)
	}

	schema := v.Context().CompileString(schemaCUE, cue.Filename("schema.cue")).
		LookupPath(cue.ParsePath("#Rules"))
	if err := schema.Err(); err != nil {
		return model.MatchRules{}, fmt.Errorf("compile rules schema: %w", err)
	}

	u := schema.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return model.MatchRules{}, formatCUEError(err)
	}

	var (
		rules    model.MatchRules
		tiebreak bool
		err      error
	)
	fields := []struct {
		name string
		read func(cue.Value) error
	}{
		{"best_of", intField(&rules.BestOf)},
		{"games_per_set", intField(&rules.GamesPerSet)},
		{"no_ad", boolField(&rules.NoAdScoring)},
		{"final_set_tiebreak", boolField(&tiebreak)},
		{"tiebreak_points", intField(&rules.TiebreakPoints)},
		{"first_server", intField(&rules.FirstServer)},
	}
	for _, f := range fields {
		fv, _ := u.LookupPath(cue.ParsePath(f.name)).Default()
		if err = f.read(fv); err != nil {
			return model.MatchRules{}, &CompileError{
				Field:   f.name,
				Message: err.Error(),
				Pos:     fv.Pos(),
			}
		}
	}
	rules.FinalSetTiebreakDisabled = !tiebreak

	if err := rules.Validate(); err != nil {
		return model.MatchRules{}, &CompileError{
			Field:   "rules",
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return rules, nil
}

func intField(dst *int) func(cue.Value) error {
	return func(v cue.Value) error {
		n, err := v.Int64()
		if err != nil {
			return err
		}
		*dst = int(n)
		return nil
	}
}

func boolField(dst *bool) func(cue.Value) error {
	return func(v cue.Value) error {
		b, err := v.Bool()
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
}

// CompileRulesBytes compiles a CUE rules document. filename is used in error
// positions.
func CompileRulesBytes(filename string, src []byte) (model.MatchRules, error) {
	ctx := cuecontext.New()
	return CompileRules(ctx.CompileBytes(src, cue.Filename(filename)))
}

// LoadRules reads and compiles a CUE rules file.
func LoadRules(path string) (model.MatchRules, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return model.MatchRules{}, fmt.Errorf("read rules: %w", err)
	}
	return CompileRulesBytes(path, src)
}

// CompileRulesMap compiles rules given as decoded data, such as a YAML
// mapping. A nil map yields the default rules.
func CompileRulesMap(fields map[string]any) (model.MatchRules, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	ctx := cuecontext.New()
	return CompileRules(ctx.Encode(fields))
}

// CompileError represents a rules document that does not compile.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
