package isa

import (
	"strconv"
)

// Repr is the textual representation of an immediate.
type Repr int

//go:generate go tool stringer -linecomment -type=Repr
const (
	REPR_UNSIGNED = Repr(0) // unsigned
	REPR_SIGNED   = Repr(1) // signed
	REPR_HEX      = Repr(2) // hex
)

// SymbolKind is the relocation applied when annotating an immediate with a label.
type SymbolKind int

//go:generate go tool stringer -linecomment -type=SymbolKind
const (
	SYMBOL_NONE     = SymbolKind(0) // none
	SYMBOL_RELATIVE = SymbolKind(1) // relative
	SYMBOL_ABSOLUTE = SymbolKind(2) // absolute
)

// ParseRepr returns the Repr named by its String() form.
func ParseRepr(name string) (repr Repr, ok bool) {
	for repr = REPR_UNSIGNED; repr <= REPR_HEX; repr++ {
		if repr.String() == name {
			return repr, true
		}
	}
	return
}

// ParseSymbolKind returns the SymbolKind named by its String() form.
func ParseSymbolKind(name string) (kind SymbolKind, ok bool) {
	for kind = SYMBOL_NONE; kind <= SYMBOL_ABSOLUTE; kind++ {
		if kind.String() == name {
			return kind, true
		}
	}
	return
}

// Field is an operand slot of an instruction. The set of fields is closed:
// *Opcode, *Register and *Immediate.
type Field interface {
	isField()
}

// OpPart is a fixed literal occupying a bit range.
type OpPart struct {
	Value uint32
	Range BitRange
}

// Op returns the OpPart value at bits [start, stop] of a 32-bit word.
func Op(value uint32, start, stop uint) OpPart {
	return OpPart{Value: value, Range: Bits(start, stop)}
}

// Matches is true if word carries the literal.
func (part OpPart) Matches(word uint32) bool {
	return part.Range.Decode(word) == part.Value
}

// Opcode identifies an operation by its mnemonic and literal bit pattern.
type Opcode struct {
	Name  string
	Parts []OpPart
}

func (*Opcode) isField() {}

// NewOpcode creates an opcode from its parts.
func NewOpcode(name string, parts ...OpPart) *Opcode {
	return &Opcode{Name: name, Parts: parts}
}

// Apply sets every literal in word.
func (op *Opcode) Apply(word uint32) uint32 {
	for _, part := range op.Parts {
		word |= part.Range.Apply(part.Value)
	}
	return word
}

// Decode appends the mnemonic.
func (op *Opcode) Decode(tokens []string) []string {
	return append(tokens, op.Name)
}

// Matches is true if every literal is present in word.
func (op *Opcode) Matches(word uint32) bool {
	for _, part := range op.Parts {
		if !part.Matches(word) {
			return false
		}
	}
	return true
}

// Pattern returns the mask of the opcode bits, and their values.
func (op *Opcode) Pattern() (mask, value uint32) {
	for _, part := range op.Parts {
		mask |= part.Range.Apply(0xffffffff)
		value |= part.Range.Apply(part.Value)
	}
	return
}

// token returns the token at index, or ErrUnresolvedField.
func token(line SourceLine, index int) (tok string, err error) {
	if index < 0 || index >= len(line.Tokens) {
		err = ErrUnresolvedField{LineNo: line.LineNo, Index: index}
		return
	}
	tok = line.Tokens[index]
	return
}

// Register is a register operand.
type Register struct {
	Index int      // Token index of the register name.
	Range BitRange // Location of the register number.
}

func (*Register) isField() {}

// Reg returns a register operand at token index, encoded in bits [start, stop].
func Reg(index int, start, stop uint) *Register {
	return &Register{Index: index, Range: Bits(start, stop)}
}

// Apply encodes the register named on the line into word.
func (reg *Register) Apply(policy Policy, line SourceLine, word uint32) (uint32, error) {
	name, err := token(line, reg.Index)
	if err != nil {
		return word, err
	}

	// A number the range cannot hold would encode a different register.
	number, ok := policy.RegNumber(name)
	if !ok || number&^reg.Range.Mask() != 0 {
		return word, ErrUnknownRegisterName{LineNo: line.LineNo, Token: name}
	}

	return word | reg.Range.Apply(number), nil
}

// Decode appends the name of the register encoded in word.
func (reg *Register) Decode(policy Policy, word uint32, tokens []string) ([]string, error) {
	number := reg.Range.Decode(word)
	name, ok := policy.RegName(number)
	if !ok {
		return tokens, ErrUnknownRegisterNumber{Number: number}
	}
	return append(tokens, name), nil
}

// ImmPart is one slice of an immediate. Bits [Offset, Offset+Range.Width())
// of the value are stored at Range.
type ImmPart struct {
	Offset uint
	Range  BitRange
}

// Part returns an immediate slice starting at value bit offset, stored in
// bits [start, stop] of a 32-bit word.
func Part(offset uint, start, stop uint) ImmPart {
	return ImmPart{Offset: offset, Range: Bits(start, stop)}
}

// Immediate is a literal operand, possibly scattered over several parts of
// the word.
type Immediate struct {
	Index  int        // Token index of the literal.
	Width  uint       // Width of the logical value.
	Repr   Repr       // Textual representation.
	Parts  []ImmPart  // Slices of the value.
	Symbol SymbolKind // Relocation used for label annotation.
}

func (*Immediate) isField() {}

// Imm returns an immediate operand at token index.
func Imm(index int, width uint, repr Repr, symbol SymbolKind, parts ...ImmPart) *Immediate {
	return &Immediate{
		Index:  index,
		Width:  width,
		Repr:   repr,
		Parts:  parts,
		Symbol: symbol,
	}
}

// Fits is true if value is representable by the immediate, and every set
// bit of its width is stored by a part.
func (imm *Immediate) Fits(value int64) bool {
	if imm.Repr == REPR_SIGNED {
		limit := int64(1) << (imm.Width - 1)
		if value < -limit || value >= limit {
			return false
		}
	} else if value < 0 || value >= int64(1)<<imm.Width {
		return false
	}

	bits := uint64(value) & (uint64(1)<<imm.Width - 1)
	return bits&^imm.covered() == 0
}

// covered returns the value bits stored by the parts.
func (imm *Immediate) covered() (bits uint64) {
	for _, part := range imm.Parts {
		bits |= uint64(part.Range.Mask()) << part.Offset
	}
	return
}

// Value parses and range checks the literal on the line.
func (imm *Immediate) Value(line SourceLine) (value int64, err error) {
	tok, err := token(line, imm.Index)
	if err != nil {
		return
	}

	value, ok := ParseLiteral(tok)
	if !ok {
		err = ErrMalformedImmediate{LineNo: line.LineNo, Token: tok}
		return
	}

	if !imm.Fits(value) {
		err = ErrImmediateRange{
			LineNo: line.LineNo,
			Token:  tok,
			Value:  value,
			Width:  imm.Width,
			Repr:   imm.Repr,
		}
		value = 0
		return
	}

	return
}

// Encode scatters value over the parts of the immediate.
func (imm *Immediate) Encode(value int64, word uint32) uint32 {
	for _, part := range imm.Parts {
		word |= part.Range.Apply(uint32(value >> part.Offset))
	}
	return word
}

// Apply encodes the literal on the line into word.
func (imm *Immediate) Apply(line SourceLine, word uint32) (uint32, error) {
	value, err := imm.Value(line)
	if err != nil {
		return word, err
	}
	return imm.Encode(value, word), nil
}

// Raw gathers the parts of the immediate from word.
func (imm *Immediate) Raw(word uint32) (raw uint32) {
	for _, part := range imm.Parts {
		raw |= part.Range.Decode(word) << part.Offset
	}
	return
}

// Decode appends the immediate encoded in word, followed by a <label> token
// if the symbol map names its target.
func (imm *Immediate) Decode(word, address uint32, symbols SymbolMap, tokens []string) ([]string, error) {
	raw := imm.Raw(word)

	switch imm.Repr {
	case REPR_SIGNED:
		tokens = append(tokens, strconv.FormatInt(int64(SignExtend(raw, imm.Width)), 10))
	case REPR_UNSIGNED:
		tokens = append(tokens, strconv.FormatUint(uint64(raw), 10))
	default:
		tokens = append(tokens, FormatHex(raw))
	}

	if imm.Symbol != SYMBOL_NONE && symbols != nil {
		target := uint32(SignExtend(raw, imm.Width))
		if imm.Symbol == SYMBOL_RELATIVE {
			target += address
		}
		label, ok := symbols.Lookup(target)
		if ok {
			tokens = append(tokens, "<"+label+">")
		}
	}

	return tokens, nil
}
