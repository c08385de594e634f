// Package stats evaluates statistic instructions over a match hierarchy.
//
// An Instruction is a stateful accumulator bound to exactly one unit kind.
// The Evaluator walks the match depth-first, children before parents and
// siblings left to right, feeding each unit to every instruction bound to
// its kind. Results come back in instruction registration order.
//
// Instructions keep their state between evaluations. Evaluating the same
// match twice without Reset counts everything twice; resetting is the
// caller's job.
package stats
