package nock

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOpcode    = errors.New("invalid opcode")
	ErrInvalidAddress   = errors.New("invalid tree address")
	ErrMissingChild     = fmt.Errorf("%w: no child of an atom", ErrInvalidAddress)
	ErrNotAnAtom        = errors.New("not an atom")
	ErrNotACell         = errors.New("not a cell")
	ErrBadCondition     = errors.New("condition is not an atom")
	ErrMalformedFormula = errors.New("malformed formula")
	ErrFuelExhausted    = errors.New("fuel exhausted")

	ErrNegativeAtom     = errors.New("atoms cannot be negative")
	ErrEmptySequence    = errors.New("cannot associate an empty sequence")
	ErrUnsupportedValue = errors.New("value has no noun form")
)

// EvalError is returned for any fault during evaluation. Subject and
// Formula are the pair whose reduction failed.
type EvalError struct {
	Err     error
	Subject Noun
	Formula Noun
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("nock: %v in *[%s %s]", e.Err, nounString(e.Subject), nounString(e.Formula))
}

func (e *EvalError) Unwrap() error { return e.Err }

func nounString(n Noun) string {
	if n == nil {
		return "?"
	}
	s := n.String()
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return s
}
