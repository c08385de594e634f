// Package metrics counts scoring completions with Prometheus.
//
// Metrics exported:
//
//   - scorekeeper_engine_units_completed_total: Counter by unit kind
//   - scorekeeper_engine_matches_completed_total: Counter of finished matches
//
// A Recorder is attached to a processor as a set of lifecycle callbacks, so
// the counters only move when the engine actually completes a unit.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/scorekeeper/internal/engine"
	"github.com/roach88/scorekeeper/internal/model"
)

const (
	namespace = "scorekeeper"
	subsystem = "engine"
)

// Recorder holds the scoring counters.
//
// Thread-safety: Recorder is safe for concurrent use; Prometheus counters
// are atomic.
type Recorder struct {
	unitsCompleted   *prometheus.CounterVec
	matchesCompleted prometheus.Counter
}

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		unitsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units_completed_total",
				Help:      "Scoring units completed, by unit kind.",
			},
			[]string{"kind"},
		),
		matchesCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "matches_completed_total",
				Help:      "Matches decided.",
			},
		),
	}

	for _, c := range []prometheus.Collector{r.unitsCompleted, r.matchesCompleted} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return r, nil
}

// Attach registers the recorder's callbacks on p.
func (r *Recorder) Attach(p *engine.Processor) {
	p.RegisterEvent(engine.EventPointComplete, func(*model.Match) error {
		r.unitsCompleted.WithLabelValues(string(model.KindPoint)).Inc()
		return nil
	})
	p.RegisterEvent(engine.EventGameComplete, func(m *model.Match) error {
		r.unitsCompleted.WithLabelValues(string(m.CurrentGame().Kind())).Inc()
		return nil
	})
	p.RegisterEvent(engine.EventSetComplete, func(*model.Match) error {
		r.unitsCompleted.WithLabelValues(string(model.KindSet)).Inc()
		return nil
	})
	p.RegisterEvent(engine.EventMatchComplete, func(*model.Match) error {
		r.unitsCompleted.WithLabelValues(string(model.KindMatch)).Inc()
		r.matchesCompleted.Inc()
		return nil
	})
}
