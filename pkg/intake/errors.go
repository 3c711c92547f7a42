package intake

import "github.com/crimson-sun/intake/internal/engine"

var (
	// ErrEmptyInput: the input has no content. Ask the user to describe the task.
	ErrEmptyInput = engine.ErrEmptyInput
	// ErrInputTooLong: the input exceeds the configured rune limit.
	ErrInputTooLong = engine.ErrInputTooLong
	// ErrUnextractableTitle is handled internally and not expected to reach
	// callers. It is exported so KindOf can name it.
	ErrUnextractableTitle = engine.ErrUnextractableTitle
)

// InvariantViolationError reports a classifier defect. Its Error method
// returns a generic message; Input and Reason carry the details.
type InvariantViolationError = engine.InvariantViolationError

// ErrorKind discriminates classification failures.
type ErrorKind string

const (
	KindEmptyInput         ErrorKind = engine.KindEmptyInput
	KindInputTooLong       ErrorKind = engine.KindInputTooLong
	KindUnextractableTitle ErrorKind = engine.KindUnextractableTitle
	KindInvariantViolation ErrorKind = engine.KindInvariantViolation
	KindInternal           ErrorKind = engine.KindInternal
)

// KindOf returns the kind of an error returned by this package, or "" for nil.
func KindOf(err error) ErrorKind {
	return ErrorKind(engine.KindOf(err))
}
