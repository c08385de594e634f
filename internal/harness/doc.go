// Package harness runs scoring scenarios against the full scoring stack.
//
// A scenario is a YAML file naming a match (rules and players), a flow of
// events, and assertions on the outcome:
//
//	name: deuce_game
//	description: Players trade points to deuce, then alice wins two in a row
//	players:
//	  - {id: alice, name: Alice}
//	  - {id: bob, name: Bob}
//	flow:
//	  - steps: [{point: alice}, {point: bob}]
//	    repeat: 3
//	  - point: alice
//	    repeat: 2
//	assertions:
//	  - {type: match_score, expect: "1-0"}
//	  - {type: trace_contains, event: game-complete, winner: alice}
//
// Rules are compiled by the compiler package, so omitted fields take their
// defaults. Each scenario runs in a fresh in-memory store through the
// scoring service, so events are persisted and the event log is replayed
// against the stored snapshot at the end of the run. A replay that
// diverges fails the scenario.
//
// # Flow steps
//
//   - point: player wins a simple point
//   - game: player wins every point until the game in play is over
//   - stroke: {player, outcome} records one rally stroke
//   - steps: a group of steps
//
// Any step takes repeat, and a single step may declare expect_error with the
// error code it must fail with.
//
// # Assertions
//
//   - match_status, match_score, game_score, winner: compare the final match
//   - set_score: compares one set, e.g. {set: 1, expect: "7-6(5)"}
//   - event_count: counts one lifecycle event, point completions included
//   - trace_contains: finds a game, set or match completion in the trace
//
// # Golden files
//
// RunWithGolden compares the trace of completions and the final match with
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
