package assembler

import (
	"errors"
	"fmt"

	"github.com/Urethramancer/rvasm/isa"
)

// Error kinds. Every failure returned by the assembler wraps exactly one of these.
var (
	ErrUnknownMnemonic     = isa.ErrUnknownMnemonic
	ErrUnknownRegister     = isa.ErrUnknownRegister
	ErrMalformedOperands   = errors.New("malformed operands")
	ErrImmediateOutOfRange = errors.New("immediate out of range")
	ErrMisalignedTarget    = errors.New("misaligned target")
	ErrUndefinedLabel      = errors.New("undefined label")
	ErrDuplicateLabel      = errors.New("duplicate label")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrUnknownMnemonic, "UnknownMnemonic"},
	{ErrUnknownRegister, "UnknownRegister"},
	{ErrMalformedOperands, "MalformedOperands"},
	{ErrImmediateOutOfRange, "ImmediateOutOfRange"},
	{ErrMisalignedTarget, "MisalignedTarget"},
	{ErrUndefinedLabel, "UndefinedLabel"},
	{ErrDuplicateLabel, "DuplicateLabel"},
}

// Kind names the error kind wrapped by err, or "" if it is not an assembler error.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// LineError ties a failure to the source line that caused it.
type LineError struct {
	Line   int
	Source string
	Err    error
}

func (e *LineError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v (%s)", e.Line, e.Err, e.Source)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(l Line, err error) error {
	return &LineError{Line: l.Number, Source: l.Source, Err: err}
}
