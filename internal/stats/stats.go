package stats

import (
	"maps"
	"slices"

	"github.com/roach88/scorekeeper/internal/model"
)

// Statistic is the accumulated result of one instruction, counted per
// player ID.
type Statistic struct {
	Name   string         `json:"name"`
	Kind   model.Kind     `json:"kind"`
	Counts map[string]int `json:"counts"`
}

// Get returns the count for player, or zero.
func (s Statistic) Get(player string) int {
	return s.Counts[player]
}

// Total sums the counts of every player.
func (s Statistic) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// Instruction is a stateful accumulator bound to one unit kind.
//
// Implementations must be comparable (typically pointers) so they can be
// removed from an Evaluator.
type Instruction interface {
	Kind() model.Kind
	Evaluate(u model.Unit, m *model.Match)
	Result() Statistic
	Reset()
}

// Evaluator holds instructions in registration order.
type Evaluator struct {
	instructions []Instruction
}

// NewEvaluator returns an evaluator with the given instructions registered.
func NewEvaluator(instructions ...Instruction) *Evaluator {
	e := &Evaluator{}
	for _, in := range instructions {
		e.Add(in)
	}
	return e
}

// Add registers in. Nil instructions are rejected.
func (e *Evaluator) Add(in Instruction) bool {
	if in == nil {
		return false
	}
	e.instructions = append(e.instructions, in)
	return true
}

// Remove unregisters the first occurrence of in.
func (e *Evaluator) Remove(in Instruction) bool {
	i := slices.Index(e.instructions, in)
	if i < 0 {
		return false
	}
	e.instructions = slices.Delete(e.instructions, i, i+1)
	return true
}

// Instructions returns the registered instructions in order.
func (e *Evaluator) Instructions() []Instruction {
	return slices.Clone(e.instructions)
}

// Evaluate walks every set of m and returns one result per instruction.
func (e *Evaluator) Evaluate(m *model.Match) []Statistic {
	e.walk(m, model.Children(m))

	results := make([]Statistic, len(e.instructions))
	for i, in := range e.instructions {
		results[i] = in.Result()
	}
	return results
}

// Reset clears the state of every registered instruction.
func (e *Evaluator) Reset() {
	for _, in := range e.instructions {
		in.Reset()
	}
}

func (e *Evaluator) walk(m *model.Match, units []model.Unit) {
	for _, u := range units {
		if children := model.Children(u); len(children) > 0 {
			e.walk(m, children)
		}
		kind := u.Kind()
		for _, in := range e.instructions {
			if in.Kind() == kind {
				in.Evaluate(u, m)
			}
		}
	}
}

// AttributeFunc decides which player, if any, a unit counts for.
type AttributeFunc func(u model.Unit, m *model.Match) (player string, ok bool)

// Tally counts units of one kind per attributed player.
type Tally struct {
	name      string
	kind      model.Kind
	attribute AttributeFunc
	counts    map[string]int
}

// NewTally returns a counting instruction bound to kind.
func NewTally(name string, kind model.Kind, attribute AttributeFunc) *Tally {
	return &Tally{
		name:      name,
		kind:      kind,
		attribute: attribute,
		counts:    make(map[string]int),
	}
}

func (t *Tally) Kind() model.Kind { return t.kind }

func (t *Tally) Evaluate(u model.Unit, m *model.Match) {
	if player, ok := t.attribute(u, m); ok {
		t.counts[player]++
	}
}

func (t *Tally) Result() Statistic {
	return Statistic{Name: t.name, Kind: t.kind, Counts: maps.Clone(t.counts)}
}

func (t *Tally) Reset() { clear(t.counts) }
