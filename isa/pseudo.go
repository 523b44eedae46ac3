package isa

import (
	"slices"
)

// Expander maps a pseudo-instruction line to the real lines it stands for.
type Expander func(pseudo *PseudoInstruction, line SourceLine) ([]SourceLine, error)

// PseudoInstruction is a mnemonic that expands to other instructions.
type PseudoInstruction struct {
	name   string
	fields []Field
	expand Expander
}

// NewPseudo creates a pseudo-instruction. The fields document the operands,
// and fix the token count of a line.
func NewPseudo(name string, expand Expander, fields ...Field) *PseudoInstruction {
	return &PseudoInstruction{
		name:   name,
		fields: slices.Clone(fields),
		expand: expand,
	}
}

func (pi *PseudoInstruction) Name() string {
	return pi.name
}

func (pi *PseudoInstruction) Fields() []Field {
	return slices.Clone(pi.fields)
}

// Field returns the operand field for a token index.
func (pi *PseudoInstruction) Field(index int) (field Field, ok bool) {
	if index < 1 || index > len(pi.fields) {
		return
	}
	return pi.fields[index-1], true
}

func (pi *PseudoInstruction) ExpectedTokens() int {
	return 1 + len(pi.fields)
}

// Expand checks the line arity and returns the expansion. Lines produced
// without a line number inherit the one of the pseudo-instruction.
func (pi *PseudoInstruction) Expand(line SourceLine) (lines []SourceLine, err error) {
	if len(line.Tokens) != pi.ExpectedTokens() {
		err = ErrArityMismatch{
			LineNo:   line.LineNo,
			Mnemonic: pi.name,
			Expected: pi.ExpectedTokens(),
			Got:      len(line.Tokens),
		}
		return
	}

	expanded, err := pi.expand(pi, line)
	if err != nil {
		return
	}

	for n := range expanded {
		if expanded[n].LineNo == 0 {
			expanded[n].LineNo = line.LineNo
		}
	}

	lines = expanded

	return
}
