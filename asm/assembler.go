// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"log"
	"strings"
	"unicode"

	"github.com/ezrec/bitasm/isa"
)

// Assembler is a single pass assembler over an instruction table.
type Assembler struct {
	Table   *isa.Table // Instruction set to assemble with.
	Base    uint32     // Address of the first word.
	Verbose bool       // If set, verbosely logs the assembler actions.
}

// Tokenize splits a line of assembly text into tokens. Comments start with
// ';' or '#'. Commas and parentheses separate tokens like whitespace, so
// "lw a0, 8(sp)" yields "lw", "a0", "8", "sp".
func Tokenize(line string) []string {
	if at := strings.IndexAny(line, ";#"); at >= 0 {
		line = line[:at]
	}
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '(' || r == ')'
	})
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	if asm.Table == nil {
		err = ErrTableMissing
		return
	}

	policy := asm.Table.Policy()
	step := uint32(WordBytes(policy))
	if asm.Base%step != 0 {
		err = ErrBaseAlign
		return
	}

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	prog = &Program{Policy: policy}
	address := asm.Base

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		words := Tokenize(line)
		if len(words) == 0 {
			continue
		}

		var codes []uint32
		codes, err = asm.Table.Assemble(isa.SourceLine{LineNo: lineno, Tokens: words})
		if err != nil {
			return
		}

		if asm.Verbose {
			for n, code := range codes {
				log.Printf("%v: 0x%08x: 0x%08x\n", lineno, address+uint32(n)*step, code)
			}
		}

		prog.Listing = append(prog.Listing, Listing{
			LineNo:  lineno,
			Address: address,
			Tokens:  words,
			Words:   codes,
		})
		address += uint32(len(codes)) * step
	}

	err = scanner.Err()

	return
}
