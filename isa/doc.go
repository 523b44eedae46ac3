// Package isa implements a data-driven assembler and disassembler core for
// fixed-width instruction sets.
//
// An instruction set is described as data: each Instruction is an Opcode
// (fixed OpPart literals) followed by an ordered list of operand Fields.
// Register fields map a token through the injected Policy, and Immediate
// fields parse, range check and scatter a literal across one or more
// ImmPart bit ranges. PseudoInstructions expand one source line into several
// real ones.
//
// A Table groups the definitions with their Policy, validates them once at
// construction, and is immutable afterwards. All assemble and disassemble
// calls are pure and may be made concurrently.
package isa
