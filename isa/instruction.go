package isa

import (
	"slices"
)

// Instruction is the complete encoding of one concrete opcode.
type Instruction struct {
	opcode *Opcode
	fields []Field
}

// NewInstruction creates an instruction. Field order is operand order.
func NewInstruction(opcode *Opcode, fields ...Field) *Instruction {
	return &Instruction{
		opcode: opcode,
		fields: slices.Clone(fields),
	}
}

// Name returns the mnemonic.
func (ins *Instruction) Name() string {
	return ins.opcode.Name
}

// Opcode returns the identifying opcode.
func (ins *Instruction) Opcode() *Opcode {
	return ins.opcode
}

// Fields returns the operand fields, in operand order.
func (ins *Instruction) Fields() []Field {
	return slices.Clone(ins.fields)
}

// ExpectedTokens is the token count of a line, mnemonic included.
func (ins *Instruction) ExpectedTokens() int {
	return 1 + len(ins.fields)
}

// Matches is true if word carries the opcode of the instruction.
func (ins *Instruction) Matches(word uint32) bool {
	return ins.opcode.Matches(word)
}

// Assemble encodes a line. On failure no word is produced.
func (ins *Instruction) Assemble(policy Policy, line SourceLine) (word uint32, err error) {
	if len(line.Tokens) != ins.ExpectedTokens() {
		err = ErrArityMismatch{
			LineNo:   line.LineNo,
			Mnemonic: ins.Name(),
			Expected: ins.ExpectedTokens(),
			Got:      len(line.Tokens),
		}
		return
	}

	built := ins.opcode.Apply(0)
	for n, field := range ins.fields {
		switch field := field.(type) {
		case *Register:
			built, err = field.Apply(policy, line, built)
		case *Immediate:
			built, err = field.Apply(line, built)
		default:
			err = ErrUnresolvedField{LineNo: line.LineNo, Index: n + 1}
		}
		if err != nil {
			return
		}
	}

	word = built

	return
}

// Disassemble decodes word into the mnemonic and operand tokens. The address
// and symbol map are used for label annotation only, and symbols may be nil.
func (ins *Instruction) Disassemble(policy Policy, word, address uint32, symbols SymbolMap) (tokens []string, err error) {
	line := ins.opcode.Decode(make([]string, 0, ins.ExpectedTokens()))
	for n, field := range ins.fields {
		switch field := field.(type) {
		case *Register:
			line, err = field.Decode(policy, word, line)
		case *Immediate:
			line, err = field.Decode(word, address, symbols, line)
		default:
			err = ErrUnresolvedField{Index: n + 1}
		}
		if err != nil {
			return
		}
	}

	tokens = line

	return
}
