package asm

import (
	"errors"

	"github.com/ezrec/bitasm/translate"
)

var f = translate.From

var (
	ErrTableMissing = errors.New(f("instruction table missing"))
	ErrBaseAlign    = errors.New(f("base address not word aligned"))
)

// ErrSyntax locates an assembly failure in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrAddress locates a disassembly failure.
type ErrAddress struct {
	Address uint32
	Err     error
}

func (err ErrAddress) Error() string {
	return f("address 0x%08x %v", err.Address, err.Err)
}

func (err ErrAddress) Unwrap() error {
	return err.Err
}

// ErrTruncated is returned when a binary image does not end on a word boundary.
type ErrTruncated struct {
	Length    int
	WordBytes int
}

func (err ErrTruncated) Error() string {
	return f("binary of %d bytes is not a multiple of %d byte words", err.Length, err.WordBytes)
}
