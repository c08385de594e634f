package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/scorekeeper/internal/compiler"
	"github.com/roach88/scorekeeper/internal/engine"
	"github.com/roach88/scorekeeper/internal/model"
	"github.com/roach88/scorekeeper/internal/service"
	"github.com/roach88/scorekeeper/internal/store"
)

// maxGamePoints bounds a game step so a scoring bug fails the scenario
// instead of hanging it.
const maxGamePoints = 500

// Harness is the scenario execution engine.
type Harness struct {
	store   *store.Store
	service *service.Scoring
	matchID string
	result  *Result
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with the
// scenario name as the match ID.
//
// Execution flow:
// 1. Create fresh in-memory database and scoring service
// 2. Compile the rules and create the match
// 3. Execute flow steps, checking expected errors
// 4. Read back the final match and check that its event log replays to it
// 5. Evaluate assertions
//
// A returned error means the scenario could not be run at all. Scoring
// failures are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	rules, err := compiler.CompileRulesMap(scenario.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		result: NewResult(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	h.service = service.New(st,
		service.WithIDGenerator(engine.NewFixedGenerator(scenario.Name)),
		service.WithProcessorHook(h.observe),
	)

	ctx := context.Background()

	players := make([]model.Player, len(scenario.Players))
	for i, p := range scenario.Players {
		players[i] = model.NewPlayer(p.ID, p.Name)
	}
	m, err := h.service.CreateMatch(ctx, players, rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	h.matchID = m.ID

	if err := h.executeFlow(ctx, scenario.Flow); err != nil {
		h.result.AddError(err.Error())
	}

	if err := h.finish(ctx); err != nil {
		return nil, err
	}

	for _, errMsg := range EvaluateAssertions(h.result, scenario.Assertions) {
		h.result.AddError(errMsg)
	}

	return h.result, nil
}

// observe registers the trace callbacks on a processor built by the service.
func (h *Harness) observe(p *engine.Processor) {
	for _, t := range engine.EventTypes {
		p.RegisterEvent(t, func(m *model.Match) error {
			h.record(t, m)
			return nil
		})
	}
}

// record traces one completion. Callbacks run before the next game or set
// is appended, so the current units are the ones that completed.
func (h *Harness) record(t engine.EventType, m *model.Match) {
	h.result.Counts[string(t)]++

	ev := TraceEvent{
		Seq:   m.Seq + 1,
		Event: string(t),
		Score: m.Score().String(),
	}
	switch t {
	case engine.EventPointComplete:
		return
	case engine.EventGameComplete:
		g := m.CurrentGame()
		ev.Winner = g.Winner
		ev.Game = g.Score.String()
	case engine.EventSetComplete:
		ev.Winner = m.CurrentSet().Winner
	case engine.EventMatchComplete:
		ev.Winner = m.Winner
	}
	h.logger.Debug("trace", "seq", ev.Seq, "event", ev.Event, "winner", ev.Winner)
	h.result.AddTrace(ev)
}

// executeFlow runs the flow steps in order. It stops at the first step
// that does not behave as expected.
func (h *Harness) executeFlow(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := h.executeStep(ctx, fmt.Sprintf("flow[%d]", i), step); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harness) executeStep(ctx context.Context, path string, step Step) error {
	for range max(step.Repeat, 1) {
		if len(step.Steps) > 0 {
			for i, s := range step.Steps {
				if err := h.executeStep(ctx, fmt.Sprintf("%s.steps[%d]", path, i), s); err != nil {
					return err
				}
			}
			continue
		}

		err := h.apply(ctx, step)
		if err := checkExpected(step.ExpectError, err); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (h *Harness) apply(ctx context.Context, step Step) error {
	switch {
	case step.Point != "":
		_, err := h.service.RecordPoint(ctx, h.matchID, step.Point)
		return err
	case step.Stroke != nil:
		_, err := h.service.RecordStroke(ctx, h.matchID, model.Stroke{
			Player:  step.Stroke.Player,
			Outcome: model.Outcome(step.Stroke.Outcome),
		})
		return err
	case step.Game != "":
		return h.winGame(ctx, step.Game)
	}
	return errors.New("empty step")
}

// winGame records points won by player until the game in play completes.
func (h *Harness) winGame(ctx context.Context, player string) error {
	m, err := h.service.Match(ctx, h.matchID)
	if err != nil {
		return err
	}
	si, gi := 0, 0
	if set := m.CurrentSet(); set != nil {
		si, gi = len(m.Sets)-1, len(set.Games)-1
	}

	for range maxGamePoints {
		m, err = h.service.RecordPoint(ctx, h.matchID, player)
		if err != nil {
			return err
		}
		if m.Sets[si].Games[gi].State() == model.StatusComplete {
			return nil
		}
	}
	return fmt.Errorf("game %d of set %d did not complete", gi+1, si+1)
}

// checkExpected compares a step error with the expected error code.
func checkExpected(code string, err error) error {
	if code == "" {
		return err
	}
	if err == nil {
		return fmt.Errorf("expected %s error, step succeeded", code)
	}
	var se *engine.ScoringError
	if !errors.As(err, &se) {
		return fmt.Errorf("expected %s error, got: %w", code, err)
	}
	if string(se.Code) != code {
		return fmt.Errorf("expected %s error, got %s: %w", code, se.Code, err)
	}
	return nil
}

// finish reads back the stored match and replays its event log.
func (h *Harness) finish(ctx context.Context) error {
	m, err := h.store.Find(ctx, h.matchID)
	if err != nil {
		return fmt.Errorf("failed to read final match: %w", err)
	}

	h.result.Final = Final{
		Status: string(m.State()),
		Winner: m.Winner,
		Score:  m.Score().String(),
		Seq:    m.Seq,
	}
	if g := m.CurrentGame(); g != nil && m.State() != model.StatusComplete {
		h.result.Final.Game = g.Score.String()
	}
	for _, s := range m.Score().Sets {
		h.result.Sets = append(h.result.Sets, s.String())
	}

	replay, err := h.service.Replay(ctx, h.matchID)
	if err != nil {
		h.result.AddError(fmt.Sprintf("replay failed: %v", err))
		return nil
	}
	if !replay.Consistent {
		h.result.AddError(fmt.Sprintf("replay diverged: stored %q, replayed %q",
			replay.StoredScore, replay.Score))
	}
	return nil
}
