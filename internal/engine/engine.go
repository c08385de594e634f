package engine

import (
	"fmt"

	"github.com/roach88/scorekeeper/internal/model"
	"github.com/roach88/scorekeeper/internal/stats"
)

// Processor binds one match to the match strategy chosen for it, the
// statistics registered on it, and the clock stamping its events.
//
// Thread-safety: a Processor is not safe for concurrent use. Hosts must
// serialize updates to one match.
type Processor struct {
	match    *model.Match
	strategy MatchStrategy
	stats    *stats.Evaluator
	clock    *Clock
}

type processorConfig struct {
	resolver     *Resolver
	instructions []stats.Instruction
}

// ProcessorOption allows configuration of a processor.
type ProcessorOption func(*processorConfig)

// WithResolver replaces the default rulebook.
func WithResolver(r *Resolver) ProcessorOption {
	return func(c *processorConfig) {
		c.resolver = r
	}
}

// WithInstructions registers statistic instructions at construction.
func WithInstructions(instructions ...stats.Instruction) ProcessorOption {
	return func(c *processorConfig) {
		c.instructions = append(c.instructions, instructions...)
	}
}

// NewProcessor selects the match strategy for m from its player count.
//
// Two players select singles. Four players select doubles, which is not
// implemented. Any other count is a configuration error.
func NewProcessor(m *model.Match, opts ...ProcessorOption) (*Processor, error) {
	if m == nil {
		return nil, NewInvalidInputError("match is nil", nil)
	}
	if len(m.Players) == 0 {
		return nil, NewInvalidInputError("match has no players", nil)
	}

	cfg := &processorConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var strategy MatchStrategy
	switch len(m.Players) {
	case 2:
		strategy = NewSinglesStrategy(cfg.resolver)
	case 4:
		return nil, NewUnsupportedVariantError("doubles")
	default:
		return nil, &ScoringError{
			Code:    ErrCodeConfiguration,
			Message: fmt.Sprintf("no match strategy for %d players", len(m.Players)),
			Unit:    model.KindMatch,
		}
	}

	return &Processor{
		match:    m,
		strategy: strategy,
		stats:    stats.NewEvaluator(cfg.instructions...),
		clock:    NewClockAt(m.Seq),
	}, nil
}

// Match returns the processed match.
func (p *Processor) Match() *model.Match { return p.match }

// UpdateStroke applies a stroke to the match.
//
// Every event that is applied, even one whose callbacks fail, consumes the
// next sequence number. Rejected input and events left unapplied by a failed
// settle consume none.
func (p *Processor) UpdateStroke(s model.Stroke) (*model.Match, error) {
	s.Seq = p.clock.Current() + 1
	m, err := p.strategy.UpdateStroke(p.match, s)
	p.stamp(err)
	return m, err
}

// UpdatePoint applies a whole point to the match.
func (p *Processor) UpdatePoint(pt *model.Point) (*model.Match, error) {
	if pt != nil {
		pt.Seq = p.clock.Current() + 1
	}
	m, err := p.strategy.UpdatePoint(p.match, pt)
	p.stamp(err)
	return m, err
}

func (p *Processor) stamp(err error) {
	if err != nil && (IsInvalidInput(err) || IsNotApplied(err)) {
		return
	}
	p.match.Seq = p.clock.Next()
}

// Settle finishes a completion cascade that a callback failure left open,
// firing the callbacks of every level it completes. It applies no event and
// consumes no sequence number.
func (p *Processor) Settle() error {
	return p.strategy.Settle(p.match)
}

// RegisterEvent adds a lifecycle callback.
func (p *Processor) RegisterEvent(t EventType, cb Callback) {
	p.strategy.RegisterEvent(t, cb)
}

// AddInstruction registers a statistic instruction.
func (p *Processor) AddInstruction(in stats.Instruction) bool {
	return p.stats.Add(in)
}

// RemoveInstruction unregisters a statistic instruction.
func (p *Processor) RemoveInstruction(in stats.Instruction) bool {
	return p.stats.Remove(in)
}

// Statistics runs a full evaluation pass over the match. Instructions keep
// their state between passes; call ResetStatistics to start over.
func (p *Processor) Statistics() []stats.Statistic {
	return p.stats.Evaluate(p.match)
}

// ResetStatistics clears every registered instruction.
func (p *Processor) ResetStatistics() {
	p.stats.Reset()
}
