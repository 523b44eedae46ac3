// Package riscv defines the RV32I base integer instruction set, and its
// common pseudo-instructions, as an isa.Table.
//
// Memory operands are written with the offset and base register as
// separate operands, so `lw x5, 8(x2)` is the line `lw x5 8 x2`.
package riscv
