package riscv

import (
	"encoding/binary"
	"fmt"

	"github.com/ezrec/bitasm/isa"
)

const (
	WORD_WIDTH = 32 // Instruction width
	REG_COUNT  = 32 // Integer registers
)

// ABI names of x0 through x31.
var abiNames = [REG_COUNT]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

// numericNames returns x0 through x31.
func numericNames() []string {
	names := make([]string, REG_COUNT)
	for n := range names {
		names[n] = fmt.Sprintf("x%d", n)
	}
	return names
}

// newPolicy creates a register file with the given canonical names, and every
// other spelling as an alias.
func newPolicy(canonical, other []string) *isa.RegisterFile {
	aliases := map[string]uint32{
		"fp": 8,
	}
	for n, name := range other {
		aliases[name] = uint32(n)
	}

	rf, err := isa.NewRegisterFile(WORD_WIDTH, binary.LittleEndian, canonical, aliases)
	if err != nil {
		panic(err)
	}
	return rf
}

// NewPolicy returns the RV32I policy. Registers disassemble as x0-x31, and
// both numeric and ABI names assemble.
func NewPolicy() *isa.RegisterFile {
	return newPolicy(numericNames(), abiNames[:])
}

// NewABIPolicy is NewPolicy, but registers disassemble with their ABI names.
func NewABIPolicy() *isa.RegisterFile {
	return newPolicy(abiNames[:], numericNames())
}
