package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/scorekeeper/internal/model"
)

// ScoringError represents an error detected while applying an event to a
// match or while building the processor for one.
//
// Scoring errors include:
//   - Configuration: no completion strategy applies to a unit
//   - Ambiguity: more than one completion strategy applies to a unit
//   - Unsupported variant: a doubles match was requested
//   - Invalid input: nil match, bad player list, or an event that cannot apply
//   - Callback failure: a lifecycle callback returned an error or panicked
//
// None of them are retried. State already transitioned before the error is
// kept as is.
type ScoringError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Unit is the kind of scoring unit being resolved, if any.
	Unit model.Kind

	// Event is the lifecycle event whose callback failed, if any.
	Event EventType

	// Err is the underlying cause.
	Err error
}

// ErrNotApplied marks an update that stopped before its event was applied,
// because finishing a cascade left open by an earlier callback failure
// failed again. The match may have moved on to the next game or set; the
// event itself was not recorded and can be submitted again.
var ErrNotApplied = errors.New("event not applied")

// ErrorCode categorizes scoring errors.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates no strategy is registered for a unit.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"

	// ErrCodeAmbiguousStrategy indicates overlapping strategy registrations.
	ErrCodeAmbiguousStrategy ErrorCode = "AMBIGUOUS_STRATEGY"

	// ErrCodeUnsupportedVariant indicates an unimplemented match variant.
	ErrCodeUnsupportedVariant ErrorCode = "UNSUPPORTED_VARIANT"

	// ErrCodeInvalidInput indicates a rejected match or event.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeCallbackFailed indicates a lifecycle callback failed.
	ErrCodeCallbackFailed ErrorCode = "CALLBACK_FAILED"
)

// Error implements the error interface.
func (e *ScoringError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	switch {
	case e.Unit != "":
		fmt.Fprintf(&b, " (unit=%s)", e.Unit)
	case e.Event != "":
		fmt.Fprintf(&b, " (event=%s)", e.Event)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *ScoringError) Unwrap() error { return e.Err }

func hasCode(err error, code ErrorCode) bool {
	var se *ScoringError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsConfigurationError returns true if no strategy applied to a unit.
func IsConfigurationError(err error) bool { return hasCode(err, ErrCodeConfiguration) }

// IsAmbiguityError returns true if several strategies applied to a unit.
func IsAmbiguityError(err error) bool { return hasCode(err, ErrCodeAmbiguousStrategy) }

// IsUnsupportedVariant returns true if the match variant is not implemented.
func IsUnsupportedVariant(err error) bool { return hasCode(err, ErrCodeUnsupportedVariant) }

// IsInvalidInput returns true if the match or event was rejected.
// Invalid input never changes match state.
func IsInvalidInput(err error) bool { return hasCode(err, ErrCodeInvalidInput) }

// IsCallbackFailure returns true if a lifecycle callback failed.
func IsCallbackFailure(err error) bool { return hasCode(err, ErrCodeCallbackFailed) }

// IsNotApplied returns true if the update stopped before applying its event.
func IsNotApplied(err error) bool { return errors.Is(err, ErrNotApplied) }

// NewConfigurationError creates a ScoringError for a unit no strategy claims.
func NewConfigurationError(kind model.Kind) *ScoringError {
	return &ScoringError{
		Code:    ErrCodeConfiguration,
		Message: "no completion strategy applies",
		Unit:    kind,
	}
}

// NewAmbiguityError creates a ScoringError naming every strategy that
// claimed the unit.
func NewAmbiguityError(kind model.Kind, names []string) *ScoringError {
	return &ScoringError{
		Code:    ErrCodeAmbiguousStrategy,
		Message: fmt.Sprintf("%d completion strategies apply [%s]", len(names), strings.Join(names, ", ")),
		Unit:    kind,
	}
}

// NewUnsupportedVariantError creates a ScoringError for an unimplemented
// variant.
func NewUnsupportedVariantError(variant string) *ScoringError {
	return &ScoringError{
		Code:    ErrCodeUnsupportedVariant,
		Message: variant + " is not implemented",
	}
}

// NewInvalidInputError creates a ScoringError for a rejected match or event.
func NewInvalidInputError(msg string, err error) *ScoringError {
	return &ScoringError{
		Code:    ErrCodeInvalidInput,
		Message: msg,
		Err:     err,
	}
}

// NewCallbackError wraps a callback failure with the event that fired it.
func NewCallbackError(event EventType, err error) *ScoringError {
	return &ScoringError{
		Code:    ErrCodeCallbackFailed,
		Message: "lifecycle callback failed",
		Event:   event,
		Err:     err,
	}
}
