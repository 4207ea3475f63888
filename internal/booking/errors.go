package booking

import (
	"errors"
	"fmt"

	"github.com/iliyamo/flight-reservation/internal/metrics"
)

// Kind classifies booking failures.  Callers branch on the kind, never on
// the message text.
type Kind int

const (
	KindStorage Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
	KindExhausted
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindExhausted:
		return "exhausted"
	default:
		return "storage"
	}
}

// Error is returned by every booking operation that fails.  Msg is safe
// to show to the customer; Err keeps the underlying cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func invalid(msg string) *Error { return newError(KindInvalidInput, msg, nil) }

// KindOf returns the kind of err.  Errors that did not originate here are
// treated as storage failures.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindStorage
}

// MessageOf returns the customer-facing message of err.
func MessageOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Msg
	}
	return "internal error"
}

func IsNotFound(err error) bool     { return err != nil && KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return err != nil && KindOf(err) == KindConflict }
func IsExhausted(err error) bool    { return err != nil && KindOf(err) == KindExhausted }
func IsInvalidInput(err error) bool { return err != nil && KindOf(err) == KindInvalidInput }

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch KindOf(err) {
	case KindInvalidInput:
		return metrics.OutcomeInvalidInput
	case KindNotFound:
		return metrics.OutcomeNotFound
	case KindConflict:
		return metrics.OutcomeConflict
	case KindExhausted:
		return metrics.OutcomeExhausted
	}
	return metrics.OutcomeError
}
