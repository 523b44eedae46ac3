package isa

import (
	"errors"

	"github.com/ezrec/bitasm/translate"
)

var f = translate.From

var (
	// Definition errors
	ErrRangeWordWidth    = errors.New(f("word width not a power of two up to 32"))
	ErrRangeInvalid      = errors.New(f("bit range invalid"))
	ErrRangeWidth        = errors.New(f("bit range word width differs from policy"))
	ErrRangeOverlap      = errors.New(f("bit ranges overlap"))
	ErrOpPartOverflow    = errors.New(f("opcode value exceeds its bit range"))
	ErrOpcodeEmpty       = errors.New(f("opcode has no parts"))
	ErrImmWidth          = errors.New(f("immediate width invalid"))
	ErrImmPartOverflow   = errors.New(f("immediate part exceeds immediate width"))
	ErrImmPartMissing    = errors.New(f("immediate has no parts"))
	ErrTokenIndex        = errors.New(f("token index out of range"))
	ErrTokenDuplicate    = errors.New(f("token index used twice"))
	ErrFieldNil          = errors.New(f("field missing"))
	ErrFieldOpcode       = errors.New(f("opcode used as operand field"))
	ErrMnemonicEmpty     = errors.New(f("mnemonic empty"))
	ErrMnemonicDuplicate = errors.New(f("mnemonic duplicated"))
	ErrEncodingDuplicate = errors.New(f("encoding duplicated"))
	ErrExpanderMissing   = errors.New(f("pseudo-instruction expander missing"))
	ErrPolicyMissing     = errors.New(f("policy missing"))
	ErrAliasRange        = errors.New(f("register alias number out of range"))
	ErrImmRepr           = errors.New(f("immediate representation invalid"))
	ErrImmSymbol         = errors.New(f("immediate symbol kind invalid"))
)

// ErrDefinition reports an invalid instruction table entry.
type ErrDefinition struct {
	Mnemonic string
	Err      error
}

func (err ErrDefinition) Error() string {
	return f("definition '%v' %v", err.Mnemonic, err.Err)
}

func (err ErrDefinition) Unwrap() error {
	return err.Err
}

// ErrArityMismatch is returned when a line has the wrong number of tokens.
// Expected and Got count every token, including the mnemonic.
type ErrArityMismatch struct {
	LineNo   int
	Mnemonic string
	Expected int
	Got      int
}

func (err ErrArityMismatch) Error() string {
	return f("line %d '%v' expects %d operands, but got %d", err.LineNo, err.Mnemonic, err.Expected-1, max(err.Got-1, 0))
}

type ErrUnknownRegisterName struct {
	LineNo int
	Token  string
}

func (err ErrUnknownRegisterName) Error() string {
	return f("line %d unknown register '%v'", err.LineNo, err.Token)
}

type ErrUnknownRegisterNumber struct {
	Number uint32
}

func (err ErrUnknownRegisterNumber) Error() string {
	return f("unknown register number %d", err.Number)
}

type ErrMalformedImmediate struct {
	LineNo int
	Token  string
}

func (err ErrMalformedImmediate) Error() string {
	return f("line %d '%v' is not a number", err.LineNo, err.Token)
}

type ErrImmediateRange struct {
	LineNo int
	Token  string
	Value  int64
	Width  uint
	Repr   Repr
}

func (err ErrImmediateRange) Error() string {
	return f("line %d '%v' does not fit a %d bit %v immediate", err.LineNo, err.Token, err.Width, err.Repr.String())
}

// ErrUnresolvedField is returned for a field the encoder cannot handle, or
// whose token index is not present on the line.
type ErrUnresolvedField struct {
	LineNo int
	Index  int
}

func (err ErrUnresolvedField) Error() string {
	return f("line %d field %d unresolved", err.LineNo, err.Index)
}

type ErrMnemonicUnknown struct {
	LineNo   int
	Mnemonic string
}

func (err ErrMnemonicUnknown) Error() string {
	return f("line %d unknown instruction '%v'", err.LineNo, err.Mnemonic)
}

type ErrOpcodeUnknown struct {
	Word uint32
}

func (err ErrOpcodeUnknown) Error() string {
	return f("no instruction matches 0x%08x", err.Word)
}

// ErrExpansion wraps a failure raised inside a pseudo-instruction expander.
type ErrExpansion struct {
	LineNo   int
	Mnemonic string
	Err      error
}

func (err ErrExpansion) Error() string {
	return f("line %d pseudo-instruction '%v' %v", err.LineNo, err.Mnemonic, err.Err)
}

func (err ErrExpansion) Unwrap() error {
	return err.Err
}
