package riscv

import (
	"github.com/ezrec/bitasm/isa"
)

// Major opcodes
const (
	OPC_LOAD   = 0b0000011
	OPC_OP_IMM = 0b0010011
	OPC_AUIPC  = 0b0010111
	OPC_STORE  = 0b0100011
	OPC_OP     = 0b0110011
	OPC_LUI    = 0b0110111
	OPC_BRANCH = 0b1100011
	OPC_JALR   = 0b1100111
	OPC_JAL    = 0b1101111
	OPC_SYSTEM = 0b1110011
)

func opcode(name string, major uint32, parts ...isa.OpPart) *isa.Opcode {
	return isa.NewOpcode(name, append([]isa.OpPart{isa.Op(major, 0, 6)}, parts...)...)
}

func funct3(value uint32) isa.OpPart {
	return isa.Op(value, 12, 14)
}

func funct7(value uint32) isa.OpPart {
	return isa.Op(value, 25, 31)
}

// Operand fields, by token index.
func rd(index int) *isa.Register  { return isa.Reg(index, 7, 11) }
func rs1(index int) *isa.Register { return isa.Reg(index, 15, 19) }
func rs2(index int) *isa.Register { return isa.Reg(index, 20, 24) }

func immI(index int) *isa.Immediate {
	return isa.Imm(index, 12, isa.REPR_SIGNED, isa.SYMBOL_NONE, isa.Part(0, 20, 31))
}

func immS(index int) *isa.Immediate {
	return isa.Imm(index, 12, isa.REPR_SIGNED, isa.SYMBOL_NONE,
		isa.Part(0, 7, 11), isa.Part(5, 25, 31))
}

func immB(index int) *isa.Immediate {
	return isa.Imm(index, 13, isa.REPR_SIGNED, isa.SYMBOL_RELATIVE,
		isa.Part(1, 8, 11), isa.Part(5, 25, 30), isa.Part(11, 7, 7), isa.Part(12, 31, 31))
}

func immU(index int) *isa.Immediate {
	return isa.Imm(index, 20, isa.REPR_HEX, isa.SYMBOL_NONE, isa.Part(0, 12, 31))
}

func immJ(index int) *isa.Immediate {
	return isa.Imm(index, 21, isa.REPR_SIGNED, isa.SYMBOL_RELATIVE,
		isa.Part(1, 21, 30), isa.Part(11, 20, 20), isa.Part(12, 12, 19), isa.Part(20, 31, 31))
}

func shamt(index int) *isa.Immediate {
	return isa.Imm(index, 5, isa.REPR_UNSIGNED, isa.SYMBOL_NONE, isa.Part(0, 20, 24))
}

// rType: op rd rs1 rs2
func rType(name string, f3, f7 uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, OPC_OP, funct3(f3), funct7(f7)), rd(1), rs1(2), rs2(3))
}

// iType: op rd rs1 imm
func iType(name string, f3 uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, OPC_OP_IMM, funct3(f3)), rd(1), rs1(2), immI(3))
}

// shiftType: op rd rs1 shamt
func shiftType(name string, f3, f7 uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, OPC_OP_IMM, funct3(f3), funct7(f7)), rd(1), rs1(2), shamt(3))
}

// loadType: op rd imm rs1
func loadType(name string, major, f3 uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, major, funct3(f3)), rd(1), immI(2), rs1(3))
}

// storeType: op rs2 imm rs1
func storeType(name string, f3 uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, OPC_STORE, funct3(f3)), rs2(1), immS(2), rs1(3))
}

// branchType: op rs1 rs2 offset
func branchType(name string, f3 uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, OPC_BRANCH, funct3(f3)), rs1(1), rs2(2), immB(3))
}

// upperType: op rd imm20
func upperType(name string, major uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, major), rd(1), immU(2))
}

// systemType has no operands.
func systemType(name string, imm uint32) *isa.Instruction {
	return isa.NewInstruction(opcode(name, OPC_SYSTEM,
		isa.Op(0, 7, 11), funct3(0), isa.Op(0, 15, 19), isa.Op(imm, 20, 31)))
}

// Instructions returns the RV32I instruction definitions.
func Instructions() []*isa.Instruction {
	return []*isa.Instruction{
		rType("add", 0b000, 0b0000000),
		rType("sub", 0b000, 0b0100000),
		rType("sll", 0b001, 0b0000000),
		rType("slt", 0b010, 0b0000000),
		rType("sltu", 0b011, 0b0000000),
		rType("xor", 0b100, 0b0000000),
		rType("srl", 0b101, 0b0000000),
		rType("sra", 0b101, 0b0100000),
		rType("or", 0b110, 0b0000000),
		rType("and", 0b111, 0b0000000),

		iType("addi", 0b000),
		iType("slti", 0b010),
		iType("sltiu", 0b011),
		iType("xori", 0b100),
		iType("ori", 0b110),
		iType("andi", 0b111),

		shiftType("slli", 0b001, 0b0000000),
		shiftType("srli", 0b101, 0b0000000),
		shiftType("srai", 0b101, 0b0100000),

		loadType("lb", OPC_LOAD, 0b000),
		loadType("lh", OPC_LOAD, 0b001),
		loadType("lw", OPC_LOAD, 0b010),
		loadType("lbu", OPC_LOAD, 0b100),
		loadType("lhu", OPC_LOAD, 0b101),
		loadType("jalr", OPC_JALR, 0b000),

		storeType("sb", 0b000),
		storeType("sh", 0b001),
		storeType("sw", 0b010),

		branchType("beq", 0b000),
		branchType("bne", 0b001),
		branchType("blt", 0b100),
		branchType("bge", 0b101),
		branchType("bltu", 0b110),
		branchType("bgeu", 0b111),

		upperType("lui", OPC_LUI),
		upperType("auipc", OPC_AUIPC),

		isa.NewInstruction(opcode("jal", OPC_JAL), rd(1), immJ(2)),

		systemType("ecall", 0),
		systemType("ebreak", 1),
	}
}

var table = isa.MustTable(NewPolicy(), Instructions(), Pseudos())

// Table returns the RV32I table, with numeric register names.
func Table() *isa.Table {
	return table
}

// NewTable creates the RV32I table for another register naming policy.
func NewTable(policy isa.Policy) (*isa.Table, error) {
	return isa.NewTable(policy, Instructions(), Pseudos())
}
