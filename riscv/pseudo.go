package riscv

import (
	"strconv"
	"strings"

	"github.com/ezrec/bitasm/isa"
)

// rewrite returns an expander that fills in each template. A template
// token "$n" is replaced by token n of the pseudo-instruction line.
func rewrite(templates ...[]string) isa.Expander {
	return func(pi *isa.PseudoInstruction, line isa.SourceLine) (lines []isa.SourceLine, err error) {
		for _, template := range templates {
			tokens := make([]string, len(template))
			for n, tok := range template {
				tokens[n] = tok
				if !strings.HasPrefix(tok, "$") {
					continue
				}
				index, _ := strconv.Atoi(tok[1:])
				if index < 1 || index >= len(line.Tokens) {
					err = isa.ErrUnresolvedField{LineNo: line.LineNo, Index: index}
					return
				}
				tokens[n] = line.Tokens[index]
			}
			lines = append(lines, isa.SourceLine{LineNo: line.LineNo, Tokens: tokens})
		}
		return
	}
}

// loadImmediate expands `li rd value` into addi, lui, or lui and addi.
func loadImmediate(pi *isa.PseudoInstruction, line isa.SourceLine) (lines []isa.SourceLine, err error) {
	dst, tok := line.Tokens[1], line.Tokens[2]

	value, ok := isa.ParseLiteral(tok)
	if !ok {
		err = isa.ErrMalformedImmediate{LineNo: line.LineNo, Token: tok}
		return
	}
	if value < -(1<<31) || value >= (1<<32) {
		err = isa.ErrImmediateRange{LineNo: line.LineNo, Token: tok, Value: value, Width: 32, Repr: isa.REPR_SIGNED}
		return
	}

	word := uint32(value)
	if signed := int32(word); signed >= -2048 && signed < 2048 {
		lines = append(lines, isa.NewSourceLine(line.LineNo, "addi", dst, "x0", strconv.Itoa(int(signed))))
		return
	}

	lo := isa.SignExtend(word&0xfff, 12)
	hi := ((word + 0x800) >> 12) & 0xfffff

	lines = append(lines, isa.NewSourceLine(line.LineNo, "lui", dst, isa.FormatHex(hi)))
	if lo != 0 {
		lines = append(lines, isa.NewSourceLine(line.LineNo, "addi", dst, dst, strconv.Itoa(int(lo))))
	}

	return
}

// Pseudos returns the common RV32I pseudo-instructions.
func Pseudos() []*isa.PseudoInstruction {
	return []*isa.PseudoInstruction{
		isa.NewPseudo("nop", rewrite([]string{"addi", "x0", "x0", "0"})),
		isa.NewPseudo("mv", rewrite([]string{"addi", "$1", "$2", "0"}), rd(1), rs1(2)),
		isa.NewPseudo("not", rewrite([]string{"xori", "$1", "$2", "-1"}), rd(1), rs1(2)),
		isa.NewPseudo("neg", rewrite([]string{"sub", "$1", "x0", "$2"}), rd(1), rs2(2)),
		isa.NewPseudo("seqz", rewrite([]string{"sltiu", "$1", "$2", "1"}), rd(1), rs1(2)),
		isa.NewPseudo("snez", rewrite([]string{"sltu", "$1", "x0", "$2"}), rd(1), rs2(2)),
		isa.NewPseudo("li", loadImmediate, rd(1),
			isa.Imm(2, 32, isa.REPR_SIGNED, isa.SYMBOL_NONE, isa.Part(0, 0, 31))),
		isa.NewPseudo("j", rewrite([]string{"jal", "x0", "$1"}), immJ(1)),
		isa.NewPseudo("jr", rewrite([]string{"jalr", "x0", "0", "$1"}), rs1(1)),
		isa.NewPseudo("ret", rewrite([]string{"jalr", "x0", "0", "x1"})),
		isa.NewPseudo("beqz", rewrite([]string{"beq", "$1", "x0", "$2"}), rs1(1), immB(2)),
		isa.NewPseudo("bnez", rewrite([]string{"bne", "$1", "x0", "$2"}), rs1(1), immB(2)),
	}
}
