// Package service applies scoring events to stored matches.
//
// Every update loads the match, applies the event through a freshly built
// engine processor, and saves the new snapshot together with the event in
// one write. Updates to one match are serialized; distinct matches proceed
// concurrently.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/scorekeeper/internal/engine"
	"github.com/roach88/scorekeeper/internal/model"
	"github.com/roach88/scorekeeper/internal/stats"
)

// Repository persists match snapshots and their event logs.
// Implemented by *store.Store.
type Repository interface {
	Find(ctx context.Context, id string) (*model.Match, error)
	Save(ctx context.Context, m *model.Match, events ...model.Event) (*model.Match, error)
	Events(ctx context.Context, matchID string) ([]model.Event, error)
}

// ProcessorHook is called on every processor the service builds for an
// update, before the event is applied. Hooks typically register lifecycle
// callbacks.
type ProcessorHook func(p *engine.Processor)

// Scoring is the scoring update service.
type Scoring struct {
	repo  Repository
	ids   engine.IDGenerator
	opts  []engine.ProcessorOption
	hooks []ProcessorHook

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Scoring service.
type Option func(*Scoring)

// WithIDGenerator replaces the UUIDv7 match ID generator.
func WithIDGenerator(g engine.IDGenerator) Option {
	return func(s *Scoring) {
		s.ids = g
	}
}

// WithProcessorOptions passes options to every processor built.
func WithProcessorOptions(opts ...engine.ProcessorOption) Option {
	return func(s *Scoring) {
		s.opts = append(s.opts, opts...)
	}
}

// WithProcessorHook adds a hook run on every processor built for an update.
func WithProcessorHook(h ProcessorHook) Option {
	return func(s *Scoring) {
		s.hooks = append(s.hooks, h)
	}
}

// New creates a scoring service over repo.
func New(repo Repository, opts ...Option) *Scoring {
	s := &Scoring{
		repo:  repo,
		ids:   engine.UUIDv7Generator{},
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMatch stores a new, unstarted match. Players and rules are
// validated, and the match must be playable by the engine.
func (s *Scoring) CreateMatch(ctx context.Context, players []model.Player, rules model.MatchRules) (*model.Match, error) {
	m, err := model.NewMatch(s.ids.Generate(), players, rules)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	if _, err := engine.NewProcessor(m, s.opts...); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	if _, err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	slog.Info("match created",
		"match", m.ID,
		"players", len(m.Players),
		"best_of", m.Rules.BestOf,
	)
	return m, nil
}

// RecordStroke applies one stroke to a stored match.
func (s *Scoring) RecordStroke(ctx context.Context, matchID string, stroke model.Stroke) (*model.Match, error) {
	return s.update(ctx, matchID, func(p *engine.Processor) (model.Event, error) {
		_, err := p.UpdateStroke(stroke)
		return model.Event{Kind: model.EventStroke, Player: stroke.Player, Outcome: stroke.Outcome}, err
	})
}

// RecordPoint applies a point won by winner to a stored match.
func (s *Scoring) RecordPoint(ctx context.Context, matchID, winner string) (*model.Match, error) {
	return s.update(ctx, matchID, func(p *engine.Processor) (model.Event, error) {
		_, err := p.UpdatePoint(model.NewSimplePoint(winner))
		return model.Event{Kind: model.EventPoint, Player: winner}, err
	})
}

// update runs apply under the match lock and saves the result.
//
// Rejected input leaves the stored match untouched. An event left unapplied
// by a failed settle saves the settled snapshot without logging the event.
// Any other error still saves the match and logs the event, because the
// event was applied before it failed. Errors are returned after the save.
func (s *Scoring) update(ctx context.Context, matchID string, apply func(*engine.Processor) (model.Event, error)) (*model.Match, error) {
	unlock := s.lock(matchID)
	defer unlock()

	m, err := s.repo.Find(ctx, matchID)
	if err != nil {
		return nil, err
	}
	p, err := s.processor(m)
	if err != nil {
		return nil, err
	}

	ev, applyErr := apply(p)
	notApplied := applyErr != nil && engine.IsNotApplied(applyErr)
	if applyErr != nil && engine.IsInvalidInput(applyErr) && !notApplied {
		return nil, applyErr
	}

	var events []model.Event
	if !notApplied {
		ev.MatchID = m.ID
		ev.Seq = m.Seq
		events = append(events, ev)
	}

	saved, err := s.repo.Save(ctx, m, events...)
	if err != nil {
		return nil, err
	}
	if notApplied {
		slog.Error("event not applied", "match", m.ID, "seq", m.Seq, "error", applyErr)
		return saved, applyErr
	}
	if applyErr != nil {
		slog.Error("event applied with error", "match", m.ID, "seq", ev.Seq, "error", applyErr)
		return saved, applyErr
	}
	if saved.State() == model.StatusComplete {
		slog.Info("match complete", "match", m.ID, "winner", saved.Winner, "score", saved.Score().String())
	}
	return saved, nil
}

// Match returns the stored match.
func (s *Scoring) Match(ctx context.Context, matchID string) (*model.Match, error) {
	return s.repo.Find(ctx, matchID)
}

// Statistics evaluates the built-in statistics over a stored match.
func (s *Scoring) Statistics(ctx context.Context, matchID string) ([]stats.Statistic, error) {
	m, err := s.repo.Find(ctx, matchID)
	if err != nil {
		return nil, err
	}
	opts := append([]engine.ProcessorOption{engine.WithInstructions(stats.Builtins()...)}, s.opts...)
	p, err := engine.NewProcessor(m, opts...)
	if err != nil {
		return nil, err
	}
	return p.Statistics(), nil
}

func (s *Scoring) processor(m *model.Match) (*engine.Processor, error) {
	p, err := engine.NewProcessor(m, s.opts...)
	if err != nil {
		return nil, err
	}
	for _, h := range s.hooks {
		h(p)
	}
	return p, nil
}

// lock acquires the mutex of one match and returns its release.
func (s *Scoring) lock(matchID string) func() {
	s.mu.Lock()
	l, ok := s.locks[matchID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[matchID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
