package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s %s\n", event.Seq, event.Event, event.Winner, event.Score)
		}
	}

	return buf.String()
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertMatchStatus:
			err = assertEqual(result, assertion.Type, assertion.Expect, result.Final.Status)
		case AssertMatchScore:
			err = assertEqual(result, assertion.Type, assertion.Expect, result.Final.Score)
		case AssertGameScore:
			err = assertEqual(result, assertion.Type, assertion.Expect, result.Final.Game)
		case AssertWinner:
			err = assertEqual(result, assertion.Type, assertion.Expect, result.Final.Winner)
		case AssertSetScore:
			err = assertSetScore(result, assertion)
		case AssertEventCount:
			err = assertEventCount(result, assertion)
		case AssertTraceContains:
			err = assertTraceContains(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func assertEqual(result *Result, typ, expected, actual string) error {
	if expected == actual {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("%q", expected),
		Actual:   fmt.Sprintf("%q", actual),
		Trace:    result.Trace,
	}
}

// assertSetScore checks the games tally of one started set.
func assertSetScore(result *Result, assertion Assertion) error {
	if assertion.Set > len(result.Sets) {
		return &AssertionError{
			Type:     AssertSetScore,
			Expected: fmt.Sprintf("set %d scored %q", assertion.Set, assertion.Expect),
			Actual:   fmt.Sprintf("only %d sets started", len(result.Sets)),
			Trace:    result.Trace,
		}
	}
	return assertEqual(result, AssertSetScore, assertion.Expect, result.Sets[assertion.Set-1])
}

// assertEventCount checks how many times an event fired, point completions
// included.
func assertEventCount(result *Result, assertion Assertion) error {
	count := result.Counts[assertion.Event]
	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertEventCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Event),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertTraceContains checks that the trace holds the event, narrowed by
// winner and score when given.
func assertTraceContains(result *Result, assertion Assertion) error {
	for _, event := range result.Trace {
		if event.Event != assertion.Event {
			continue
		}
		if assertion.Winner != "" && event.Winner != assertion.Winner {
			continue
		}
		if assertion.Score != "" && event.Score != assertion.Score {
			continue
		}
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("%s won by %q at %q", assertion.Event, assertion.Winner, assertion.Score),
		Actual:   "not found in trace",
		Trace:    result.Trace,
	}
}
