// Package workflow holds domain-level building blocks shared by the
// milestone workflow services: typed errors and per-project serialization.
package workflow

import "fmt"

// Kind classifies a domain error so callers can map it to user guidance
// or a transport status without string matching.
type Kind string

const (
	// KindNotFound signals an unknown entity id.
	KindNotFound Kind = "not_found"
	// KindValidation signals malformed input: empty required field,
	// duplicate phase order, non-positive amount.
	KindValidation Kind = "validation"
	// KindPrecondition signals that required upstream state is not met,
	// e.g. completing a phase with unfinished deliverables.
	KindPrecondition Kind = "precondition"
	// KindState signals an operation invoked from a status that does not
	// permit it, e.g. approving a draft delivery.
	KindState Kind = "state"
)

// Error is the domain error type returned by workflow operations.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by kind, so sentinel comparisons like
// errors.Is(err, workflow.ErrNotFound) work across wrapped chains.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrPrecondition = &Error{Kind: KindPrecondition}
	ErrState        = &Error{Kind: KindState}
)

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...any) *Error {
	return &Error{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...)}
}

func State(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a domain error, keeping the kind.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
