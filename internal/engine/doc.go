// Package engine implements the tennis score-completion engine.
//
// A match is a strict tree: Match → Set → Game (standard or tiebreak) →
// Point → Stroke. Each applied event is added to the point in progress,
// then the engine asks, bottom-up, whether each unit has just been won.
//
// COMPLETION STRATEGIES:
//
// Every unit kind has a small set of strategies, one per rule variant
// (advantage or no-ad games, tiebreak or advantage sets, ...). For a given
// match configuration exactly one of them applies. The Resolver enforces
// that: no applicable strategy is a configuration error, more than one is an
// ambiguity error. Both are registration defects and never retried.
//
// CASCADE:
//
// The singles strategy resolves point, game, set and match in that order and
// stops at the first unit that is still open, appending the next game or
// set where needed. Each completion fires its lifecycle callbacks in
// registration order. A failing callback aborts the update but never rolls
// back state; the interrupted cascade resumes with the next event.
//
// PROCESSOR:
//
// Processor picks the match strategy from the player count, stamps each
// applied event from a logical Clock, and exposes statistics evaluation.
// It is single-writer: callers serialize updates per match.
package engine
