package isa

import (
	"encoding/binary"
	"maps"
	"slices"
	"strings"
)

// Policy supplies the register naming and word format of an instruction set.
type Policy interface {
	RegNumber(name string) (number uint32, ok bool) // Register number of a name or alias.
	RegName(number uint32) (name string, ok bool)   // Canonical register name.
	WordWidth() uint                                // Instruction word width in bits.
	ByteOrder() binary.ByteOrder                    // Byte order of words in memory.
}

// RegisterFile is a table driven Policy.
type RegisterFile struct {
	names   []string
	numbers map[string]uint32
	width   uint
	order   binary.ByteOrder
}

var _ Policy = (*RegisterFile)(nil)

// NewRegisterFile creates a policy with canonical names indexed by register
// number, plus additional aliases. An empty canonical name leaves that number
// unassigned. Aliases must name a register number below len(names). A nil
// order selects little endian.
func NewRegisterFile(width uint, order binary.ByteOrder, names []string, aliases map[string]uint32) (rf *RegisterFile, err error) {
	if !validWordWidth(width) {
		err = ErrRangeWordWidth
		return
	}

	if order == nil {
		order = binary.LittleEndian
	}

	rf = &RegisterFile{
		names:   slices.Clone(names),
		numbers: make(map[string]uint32, len(names)+len(aliases)),
		width:   width,
		order:   order,
	}

	for n, name := range names {
		if len(name) == 0 {
			continue
		}
		rf.numbers[name] = uint32(n)
	}

	for alias, number := range aliases {
		if number >= uint32(len(names)) {
			err = ErrAliasRange
			rf = nil
			return
		}
		rf.numbers[alias] = number
	}

	return
}

// Names of all registers and aliases, sorted.
func (rf *RegisterFile) Names() []string {
	return slices.Sorted(maps.Keys(rf.numbers))
}

func (rf *RegisterFile) RegNumber(name string) (number uint32, ok bool) {
	number, ok = rf.numbers[name]
	return
}

func (rf *RegisterFile) RegName(number uint32) (name string, ok bool) {
	if number >= uint32(len(rf.names)) {
		return
	}
	name = rf.names[number]
	ok = len(name) != 0
	return
}

func (rf *RegisterFile) WordWidth() uint {
	return rf.width
}

func (rf *RegisterFile) ByteOrder() binary.ByteOrder {
	return rf.order
}

// SymbolMap maps addresses back to labels during disassembly.
type SymbolMap interface {
	Lookup(address uint32) (label string, ok bool)
}

// Symbols is a map based SymbolMap.
type Symbols map[uint32]string

func (sym Symbols) Lookup(address uint32) (label string, ok bool) {
	label, ok = sym[address]
	return
}

// StripAnnotations removes the <label> tokens added by disassembly.
func StripAnnotations(tokens []string) []string {
	return slices.DeleteFunc(slices.Clone(tokens), func(tok string) bool {
		return len(tok) > 2 && strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">")
	})
}

// SourceLine is one tokenized assembly statement.
type SourceLine struct {
	LineNo int      // Originating source line, 1-based.
	Tokens []string // Mnemonic, followed by operands.
}

// NewSourceLine creates a line from its tokens.
func NewSourceLine(lineno int, tokens ...string) SourceLine {
	return SourceLine{LineNo: lineno, Tokens: tokens}
}

// Mnemonic returns the first token, if any.
func (line SourceLine) Mnemonic() string {
	if len(line.Tokens) == 0 {
		return ""
	}
	return line.Tokens[0]
}
