package condrange

import (
	"fmt"

	"go.uber.org/multierr"
)

// ErrorKind classifies a construction or lookup failure.
type ErrorKind string

const (
	// ErrInvalidRange covers out-of-band months, days, weekdays and
	// AM/PM or bare hour values.
	ErrInvalidRange ErrorKind = "invalid_range"
	// ErrInvalidDuration covers negative duration components and
	// all-zero TimeSpanCond construction.
	ErrInvalidDuration ErrorKind = "invalid_duration"
	// ErrEmptyCombinator covers OrCond/AndCond built with no children.
	ErrEmptyCombinator ErrorKind = "empty_combinator"
	// ErrUnknownName covers factory or config lookups for a name the
	// Config does not define.
	ErrUnknownName ErrorKind = "unknown_name"
)

// ConditionError is the module's single error type; every construction
// failure surfaces as one, so callers never need to type-switch over
// several error shapes.
type ConditionError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ConditionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, field, message string) *ConditionError {
	return &ConditionError{Kind: kind, Field: field, Message: message}
}

func invalidRangeErr(field, message string) error {
	return newError(ErrInvalidRange, field, message)
}

func invalidDurationErr(field, message string) error {
	return newError(ErrInvalidDuration, field, message)
}

func emptyCombinatorErr(field string) error {
	return newError(ErrEmptyCombinator, field, "combinator requires at least one child")
}

func unknownNameErr(field, name string) error {
	return newError(ErrUnknownName, field, fmt.Sprintf("unknown name %q", name))
}

// combineErrors aggregates zero or more validation errors into a single
// error using go.uber.org/multierr, so a Config load reports every problem
// at once instead of only the first. The New*Cond constructors do not use
// it; each returns its first validation error.
func combineErrors(errs ...error) error {
	return multierr.Combine(errs...)
}
