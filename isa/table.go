package isa

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ezrec/bitasm/internal"
)

// Table is a validated instruction set: its policy, instructions and
// pseudo-instructions. A Table is immutable, and safe for concurrent use.
type Table struct {
	policy       Policy
	instructions []*Instruction
	pseudos      []*PseudoInstruction
	byName       map[string]*Instruction
	pseudoByName map[string]*PseudoInstruction
}

// NewTable validates the definitions and creates a Table. Disassembly
// selects the first instruction whose opcode matches, so more specific
// encodings should come first.
func NewTable(policy Policy, instructions []*Instruction, pseudos []*PseudoInstruction) (table *Table, err error) {
	if policy == nil {
		err = ErrPolicyMissing
		return
	}
	if !validWordWidth(policy.WordWidth()) {
		err = ErrRangeWordWidth
		return
	}

	t := &Table{
		policy:       policy,
		instructions: slices.Clone(instructions),
		pseudos:      slices.Clone(pseudos),
		byName:       make(map[string]*Instruction, len(instructions)),
		pseudoByName: make(map[string]*PseudoInstruction, len(pseudos)),
	}

	type pattern struct{ mask, value uint32 }
	patterns := make(map[pattern]string, len(instructions))

	for _, ins := range t.instructions {
		if ins == nil || ins.opcode == nil {
			err = ErrDefinition{Err: ErrFieldNil}
			return
		}
		name := ins.Name()
		err = t.validateInstruction(ins)
		if err == nil {
			err = t.claim(name)
		}
		if err != nil {
			err = ErrDefinition{Mnemonic: name, Err: err}
			return
		}
		t.byName[name] = ins

		mask, value := ins.opcode.Pattern()
		if other, ok := patterns[pattern{mask, value}]; ok {
			err = ErrDefinition{Mnemonic: name, Err: fmt.Errorf("%w: %v", ErrEncodingDuplicate, other)}
			return
		}
		patterns[pattern{mask, value}] = name
	}

	for _, pi := range t.pseudos {
		if pi == nil {
			err = ErrDefinition{Err: ErrFieldNil}
			return
		}
		err = t.validatePseudo(pi)
		if err == nil {
			err = t.claim(pi.name)
		}
		if err != nil {
			err = ErrDefinition{Mnemonic: pi.name, Err: err}
			return
		}
		t.pseudoByName[pi.name] = pi
	}

	table = t

	return
}

// MustTable is NewTable, panicking on an invalid definition.
func MustTable(policy Policy, instructions []*Instruction, pseudos []*PseudoInstruction) *Table {
	table, err := NewTable(policy, instructions, pseudos)
	if err != nil {
		panic(fmt.Sprintf("isa: %v", err))
	}
	return table
}

// claim reserves a mnemonic.
func (t *Table) claim(name string) error {
	if len(name) == 0 {
		return ErrMnemonicEmpty
	}
	_, isIns := t.byName[name]
	_, isPseudo := t.pseudoByName[name]
	if isIns || isPseudo {
		return ErrMnemonicDuplicate
	}
	return nil
}

// checkRange validates a range against the policy word width.
func (t *Table) checkRange(br BitRange) error {
	err := br.Validate()
	if err != nil {
		return err
	}
	if br.N != t.policy.WordWidth() {
		return ErrRangeWidth
	}
	return nil
}

// checkFields validates the operand fields, and returns every range they occupy.
func (t *Table) checkFields(fields []Field) (ranges []BitRange, err error) {
	used := make(map[int]bool, len(fields))
	expected := 1 + len(fields)

	useToken := func(index int) error {
		if index < 1 || index >= expected {
			return ErrTokenIndex
		}
		if used[index] {
			return ErrTokenDuplicate
		}
		used[index] = true
		return nil
	}

	for _, field := range fields {
		switch field := field.(type) {
		case nil:
			err = ErrFieldNil
		case *Opcode:
			err = ErrFieldOpcode
		case *Register:
			if field == nil {
				err = ErrFieldNil
				break
			}
			err = useToken(field.Index)
			if err == nil {
				err = t.checkRange(field.Range)
			}
			ranges = append(ranges, field.Range)
		case *Immediate:
			if field == nil {
				err = ErrFieldNil
				break
			}
			err = useToken(field.Index)
			if err != nil {
				break
			}
			if field.Width == 0 || field.Width > WORD_WIDTH_MAX {
				err = ErrImmWidth
				break
			}
			if field.Repr < REPR_UNSIGNED || field.Repr > REPR_HEX {
				err = ErrImmRepr
				break
			}
			if field.Symbol < SYMBOL_NONE || field.Symbol > SYMBOL_ABSOLUTE {
				err = ErrImmSymbol
				break
			}
			if len(field.Parts) == 0 {
				err = ErrImmPartMissing
				break
			}
			for _, part := range field.Parts {
				err = t.checkRange(part.Range)
				if err != nil {
					break
				}
				if part.Offset+part.Range.Width() > field.Width {
					err = ErrImmPartOverflow
					break
				}
				ranges = append(ranges, part.Range)
			}
		default:
			err = ErrFieldNil
		}
		if err != nil {
			return
		}
	}

	return
}

// validateInstruction checks an instruction for internal consistency.
func (t *Table) validateInstruction(ins *Instruction) (err error) {
	if len(ins.opcode.Parts) == 0 {
		return ErrOpcodeEmpty
	}

	var ranges []BitRange
	for _, part := range ins.opcode.Parts {
		err = t.checkRange(part.Range)
		if err != nil {
			return
		}
		if part.Value&^part.Range.Mask() != 0 {
			return ErrOpPartOverflow
		}
		ranges = append(ranges, part.Range)
	}

	fieldRanges, err := t.checkFields(ins.fields)
	if err != nil {
		return
	}
	ranges = append(ranges, fieldRanges...)

	for n, a := range ranges {
		for _, b := range ranges[n+1:] {
			if a.Overlaps(b) {
				return fmt.Errorf("%w: %v %v", ErrRangeOverlap, a, b)
			}
		}
	}

	return
}

// validatePseudo checks a pseudo-instruction. Field ranges of a
// pseudo-instruction are never encoded, so they may overlap.
func (t *Table) validatePseudo(pi *PseudoInstruction) (err error) {
	if pi.expand == nil {
		return ErrExpanderMissing
	}
	_, err = t.checkFields(pi.fields)
	return
}

// Policy returns the policy of the table.
func (t *Table) Policy() Policy {
	return t.policy
}

// Instruction returns the named instruction.
func (t *Table) Instruction(name string) (ins *Instruction, ok bool) {
	ins, ok = t.byName[name]
	return
}

// Pseudo returns the named pseudo-instruction.
func (t *Table) Pseudo(name string) (pi *PseudoInstruction, ok bool) {
	pi, ok = t.pseudoByName[name]
	return
}

// Instructions iterates over the instructions in table order.
func (t *Table) Instructions() iter.Seq[*Instruction] {
	return slices.Values(t.instructions)
}

// Mnemonics iterates over all instruction, then pseudo-instruction, names.
func (t *Table) Mnemonics() iter.Seq[string] {
	return internal.IterSeqConcat(
		internal.IterSeqMap(slices.Values(t.instructions), (*Instruction).Name),
		internal.IterSeqMap(slices.Values(t.pseudos), (*PseudoInstruction).Name),
	)
}

// Expand returns the real instruction lines for a line. Lines that are not
// pseudo-instructions are returned unchanged.
func (t *Table) Expand(line SourceLine) (lines []SourceLine, err error) {
	pi, ok := t.pseudoByName[line.Mnemonic()]
	if !ok {
		lines = []SourceLine{line}
		return
	}

	return pi.Expand(line)
}

// Assemble encodes a line into one word, or several for a
// pseudo-instruction. On failure no words are produced.
func (t *Table) Assemble(line SourceLine) (words []uint32, err error) {
	lines, err := t.Expand(line)
	if err != nil {
		return
	}

	encoded := make([]uint32, 0, len(lines))
	for _, expanded := range lines {
		ins, ok := t.byName[expanded.Mnemonic()]
		if !ok {
			err = ErrMnemonicUnknown{LineNo: expanded.LineNo, Mnemonic: expanded.Mnemonic()}
			return
		}

		var word uint32
		word, err = ins.Assemble(t.policy, expanded)
		if err != nil {
			return
		}
		encoded = append(encoded, word)
	}

	words = encoded

	return
}

// Find returns the first instruction whose opcode matches word.
func (t *Table) Find(word uint32) (ins *Instruction, ok bool) {
	for _, ins = range t.instructions {
		if ins.Matches(word) {
			return ins, true
		}
	}
	return nil, false
}

// Disassemble decodes word at address into tokens. symbols may be nil.
func (t *Table) Disassemble(word, address uint32, symbols SymbolMap) (tokens []string, err error) {
	ins, ok := t.Find(word)
	if !ok {
		err = ErrOpcodeUnknown{Word: word}
		return
	}

	return ins.Disassemble(t.policy, word, address, symbols)
}
