package harness

// TraceEvent is one lifecycle event observed while the scenario ran.
// Point completions are counted in Result.Counts but not traced.
type TraceEvent struct {
	// Seq is the sequence number of the event that caused the completion.
	Seq int64 `json:"seq"`

	// Event is the lifecycle event, e.g. "game-complete".
	Event string `json:"event"`

	// Winner is the player who won the completed unit.
	Winner string `json:"winner"`

	// Game is the final score of the completed game.
	Game string `json:"game,omitempty"`

	// Score is the match score when the event fired.
	Score string `json:"score"`
}

// Final is the stored match after the flow ran.
type Final struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Score  string `json:"score"`

	// Game is the score of the game in play. Empty once the match is over.
	Game string `json:"game,omitempty"`

	Seq int64 `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every step behaved as expected and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains game, set and match completions in order.
	Trace []TraceEvent `json:"trace"`

	// Counts tallies every lifecycle event fired, points included.
	Counts map[string]int `json:"counts"`

	// Errors contains failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the stored match at the end of the flow.
	Final Final `json:"final"`

	// Sets holds the games tally of every started set, e.g. "7-6(5)".
	Sets []string `json:"sets"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Counts: make(map[string]int),
		Errors: []string{},
		Sets:   []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a completion to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
