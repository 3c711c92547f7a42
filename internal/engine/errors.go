package engine

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/crimson-sun/intake/internal/engine/normalizer"
	"github.com/crimson-sun/intake/internal/engine/title"
)

var (
	// ErrEmptyInput: the input has no content. The caller should re-prompt.
	ErrEmptyInput = normalizer.ErrEmptyInput
	// ErrInputTooLong: the input exceeds the configured rune limit.
	ErrInputTooLong = errors.New("input too long")
	// ErrUnextractableTitle is handled internally by the title fallback and
	// is not expected to reach callers.
	ErrUnextractableTitle = title.ErrUnextractable
)

// InvariantViolationError reports a result that broke an output invariant.
// It is always a defect in the lexicon or the extraction rules, never caused
// by the user, so Error returns a generic message and the details stay in
// the fields and the log.
type InvariantViolationError struct {
	Input  string
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "could not process input"
}

// Error kinds, as written to batch records.
const (
	KindEmptyInput         = "empty_input"
	KindInputTooLong       = "input_too_long"
	KindUnextractableTitle = "unextractable_title"
	KindInvariantViolation = "invariant_violation"
	KindInternal           = "internal"
)

// KindOf maps an error returned by the engine to its kind. A nil error has
// no kind.
func KindOf(err error) string {
	var iv *InvariantViolationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrInputTooLong):
		return KindInputTooLong
	case errors.Is(err, ErrUnextractableTitle):
		return KindUnextractableTitle
	case errors.As(err, &iv):
		return KindInvariantViolation
	default:
		return KindInternal
	}
}

// CheckLength rejects raw input longer than maxRunes. A limit <= 0 disables
// the check.
func CheckLength(raw string, maxRunes int) error {
	if maxRunes <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(raw); n > maxRunes {
		return fmt.Errorf("%w: %d runes, limit %d", ErrInputTooLong, n, maxRunes)
	}
	return nil
}
