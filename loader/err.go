package loader

import (
	"errors"

	"github.com/ezrec/bitasm/translate"
)

var f = translate.From

var (
	ErrPolicyDuplicate = errors.New(f("policy() called twice"))
	ErrPolicyLate      = errors.New(f("policy() must precede all definitions"))
	ErrPolicyMissing   = errors.New(f("policy() never called"))
	ErrEndian          = errors.New(f("endian must be 'little' or 'big'"))
	ErrRepr            = errors.New(f("repr must be 'unsigned', 'signed' or 'hex'"))
	ErrSymbol          = errors.New(f("symbol must be 'none', 'relative' or 'absolute'"))
	ErrExpansionResult = errors.New(f("expansion must return a list of token lists"))
)

// ErrScript locates a failure while running an ISA script.
type ErrScript struct {
	Filename string
	Err      error
}

func (err ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err ErrScript) Unwrap() error {
	return err.Err
}

// ErrArgument reports a bad argument to a script builtin.
type ErrArgument struct {
	Builtin string
	Err     error
}

func (err ErrArgument) Error() string {
	return f("%v: %v", err.Builtin, err.Err)
}

func (err ErrArgument) Unwrap() error {
	return err.Err
}
