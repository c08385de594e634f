package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/scorekeeper/internal/engine"
	"github.com/roach88/scorekeeper/internal/model"
)

// Scenario defines a scoring scenario: a match, the events played in it,
// and the assertions its final state must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the match ID and
	// the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rules is a match-rules document. Omitted fields take their defaults.
	Rules map[string]any `yaml:"rules,omitempty"`

	// Players lists the match players in order. The first player is player
	// index 0.
	Players []PlayerSpec `yaml:"players"`

	// Flow contains the events played, in order.
	Flow []Step `yaml:"flow"`

	// Assertions validate the trace and the final match.
	// Supported types: match_status, match_score, set_score, game_score,
	// winner, event_count, trace_contains
	Assertions []Assertion `yaml:"assertions"`
}

// PlayerSpec names one player of the scenario match.
type PlayerSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Step is one flow step. Exactly one of Point, Game, Stroke or Steps is set.
type Step struct {
	// Point records a simple point won by the named player.
	Point string `yaml:"point,omitempty"`

	// Game has the named player win every point until the current game is
	// over.
	Game string `yaml:"game,omitempty"`

	// Stroke records one rally stroke.
	Stroke *StrokeStep `yaml:"stroke,omitempty"`

	// Steps groups steps, usually to repeat them together.
	Steps []Step `yaml:"steps,omitempty"`

	// Repeat runs the step this many times. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`

	// ExpectError is the error code the step must fail with, e.g.
	// INVALID_INPUT. A failing step without it fails the scenario.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// StrokeStep is a stroke played by a player.
type StrokeStep struct {
	Player  string `yaml:"player"`
	Outcome string `yaml:"outcome"`
}

// Assertion represents a single check on the scenario outcome.
type Assertion struct {
	// Type is the assertion type.
	Type string `yaml:"type"`

	// Expect is the expected value for match_status, match_score,
	// set_score, game_score and winner.
	Expect string `yaml:"expect,omitempty"`

	// Set is the 1-based set number for set_score.
	Set int `yaml:"set,omitempty"`

	// Event is the lifecycle event for event_count and trace_contains.
	Event string `yaml:"event,omitempty"`

	// Count is the expected number of events for event_count.
	Count int `yaml:"count,omitempty"`

	// Winner optionally narrows trace_contains to one unit winner.
	Winner string `yaml:"winner,omitempty"`

	// Score optionally narrows trace_contains to one match score.
	Score string `yaml:"score,omitempty"`
}

// Assertion types.
const (
	AssertMatchStatus   = "match_status"
	AssertMatchScore    = "match_score"
	AssertSetScore      = "set_score"
	AssertGameScore     = "game_score"
	AssertWinner        = "winner"
	AssertEventCount    = "event_count"
	AssertTraceContains = "trace_contains"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file cannot be read, parsed, or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos)
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Players) == 0 {
		return fmt.Errorf("players list is required and must be non-empty")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, p := range s.Players {
		if p.ID == "" {
			return fmt.Errorf("players[%d]: id is required", i)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(fmt.Sprintf("flow[%d]", i), &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(path string, step *Step) error {
	set := 0
	for _, ok := range []bool{step.Point != "", step.Game != "", step.Stroke != nil, len(step.Steps) > 0} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%s: exactly one of point, game, stroke or steps is required", path)
	}
	if step.Repeat < 0 {
		return fmt.Errorf("%s: repeat must be non-negative", path)
	}
	if step.Stroke != nil {
		if step.Stroke.Player == "" {
			return fmt.Errorf("%s.stroke: player is required", path)
		}
		if _, err := model.ParseOutcome(step.Stroke.Outcome); err != nil {
			return fmt.Errorf("%s.stroke: %w", path, err)
		}
	}
	if step.ExpectError != "" && len(step.Steps) > 0 {
		return fmt.Errorf("%s: expect_error cannot be set on a group", path)
	}
	for i := range step.Steps {
		if err := validateStep(fmt.Sprintf("%s.steps[%d]", path, i), &step.Steps[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertMatchStatus, AssertMatchScore, AssertGameScore, AssertWinner:
		if a.Expect == "" && a.Type != AssertMatchScore {
			return fmt.Errorf("assertions[%d]: expect is required for %s", index, a.Type)
		}
	case AssertSetScore:
		if a.Set < 1 {
			return fmt.Errorf("assertions[%d]: set must be 1 or more for set_score", index)
		}
		if a.Expect == "" {
			return fmt.Errorf("assertions[%d]: expect is required for set_score", index)
		}
	case AssertEventCount:
		if !knownEvent(a.Event) {
			return fmt.Errorf("assertions[%d]: unknown event %q for event_count", index, a.Event)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", index)
		}
	case AssertTraceContains:
		if !knownEvent(a.Event) {
			return fmt.Errorf("assertions[%d]: unknown event %q for trace_contains", index, a.Event)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func knownEvent(name string) bool {
	for _, t := range engine.EventTypes {
		if string(t) == name {
			return true
		}
	}
	return false
}
