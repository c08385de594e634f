package model

import "fmt"

// Outcome classifies a single stroke.
type Outcome string

const (
	OutcomeInPlay      Outcome = "in_play"
	OutcomeFault       Outcome = "fault"
	OutcomeAce         Outcome = "ace"
	OutcomeWinner      Outcome = "winner"
	OutcomeOut         Outcome = "out"
	OutcomeDoubleFault Outcome = "double_fault"
)

var outcomes = map[Outcome]bool{
	OutcomeInPlay:      true,
	OutcomeFault:       true,
	OutcomeAce:         true,
	OutcomeWinner:      true,
	OutcomeOut:         true,
	OutcomeDoubleFault: true,
}

// ParseOutcome validates s as an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(s)
	if !outcomes[o] {
		return "", fmt.Errorf("unknown stroke outcome %q", s)
	}
	return o, nil
}

// Stroke is a single recorded shot. Strokes are immutable once recorded.
type Stroke struct {
	Player  string  `json:"player"`
	Outcome Outcome `json:"outcome"`
	Seq     int64   `json:"seq,omitempty"`
}

func (s *Stroke) Kind() Kind { return KindStroke }

// State is always COMPLETE: a stroke is a finished event.
func (s *Stroke) State() Status { return StatusComplete }

// IsWinner reports a clean winner (aces included), credited to the striker.
func (s Stroke) IsWinner() bool {
	return s.Outcome == OutcomeWinner || s.Outcome == OutcomeAce
}

// IsOutRallyShot reports a shot that landed out of bounds.
func (s Stroke) IsOutRallyShot() bool { return s.Outcome == OutcomeOut }

// IsDoubleFault reports a double fault, credited to the receiver.
func (s Stroke) IsDoubleFault() bool { return s.Outcome == OutcomeDoubleFault }
