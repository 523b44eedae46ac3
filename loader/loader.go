// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package loader builds instruction tables from Starlark scripts.
//
// A script declares the register policy first, then its instructions and
// pseudo-instructions:
//
//	policy(registers = ["r0", "r1", "r2", "r3"], aliases = {"sp": 3}, width = 16)
//	instr("add", opcode = [op(1, 12, 15)], fields = [reg(1, 8, 11), reg(2, 4, 7)])
//	def _inc(tokens):
//	    return [["add", tokens[1], "r1"]]
//	pseudo("inc", _inc, fields = [reg(1, 8, 11)])
//
// A pseudo-instruction expander receives the line tokens, mnemonic first, and
// returns a list of token lists.
package loader

import (
	"encoding/binary"
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bitasm/isa"
)

// Loader runs ISA scripts.
type Loader struct {
	Verbose bool // If set, logs every definition.
}

// state collects the definitions of one script.
type state struct {
	*Loader
	filename     string
	policy       *isa.RegisterFile
	width        uint
	instructions []*isa.Instruction
	pseudos      []*isa.PseudoInstruction
}

// LoadFile loads an ISA script from a file.
func LoadFile(filename string) (*isa.Table, error) {
	return (&Loader{}).Load(filename, nil)
}

// Load executes an ISA script and returns its validated table. src may be
// nil to read filename, or a string, []byte or io.Reader.
func (ld *Loader) Load(filename string, src any) (table *isa.Table, err error) {
	st := &state{
		Loader:   ld,
		filename: filename,
		width:    isa.WORD_WIDTH_MAX,
	}

	defer func() {
		if err != nil {
			err = ErrScript{Filename: filename, Err: err}
		}
	}()

	thread := &starlark.Thread{
		Name:  filename,
		Print: st.print,
	}
	opts := syntax.FileOptions{TopLevelControl: true}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, st.builtins())
	if err != nil {
		return
	}

	if st.policy == nil {
		err = ErrPolicyMissing
		return
	}

	table, err = isa.NewTable(st.policy, st.instructions, st.pseudos)

	return
}

func (st *state) print(_ *starlark.Thread, msg string) {
	log.Printf("%v: %v", st.filename, msg)
}

func (st *state) logf(format string, args ...any) {
	if st.Verbose {
		log.Printf("%v: "+format, append([]any{st.filename}, args...)...)
	}
}

func (st *state) builtins() starlark.StringDict {
	return starlark.StringDict{
		"policy":  starlark.NewBuiltin("policy", st.builtinPolicy),
		"op":      starlark.NewBuiltin("op", st.builtinOp),
		"reg":     starlark.NewBuiltin("reg", st.builtinReg),
		"part":    starlark.NewBuiltin("part", st.builtinPart),
		"imm":     starlark.NewBuiltin("imm", st.builtinImm),
		"instr":   starlark.NewBuiltin("instr", st.builtinInstr),
		"pseudo":  starlark.NewBuiltin("pseudo", st.builtinPseudo),
		"literal": starlark.NewBuiltin("literal", builtinLiteral),
	}
}

// bits creates a range in the policy word width.
func (st *state) bits(builtin string, start, stop int) (br isa.BitRange, err error) {
	if start < 0 || stop < 0 {
		err = ErrArgument{Builtin: builtin, Err: isa.ErrRangeInvalid}
		return
	}
	br, err = isa.NewBitRange(uint(start), uint(stop), st.width)
	if err != nil {
		err = ErrArgument{Builtin: builtin, Err: err}
	}
	return
}

// policy(registers, aliases={}, width=32, endian="little")
func (st *state) builtinPolicy(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var registers *starlark.List
	var aliases *starlark.Dict
	width := int(isa.WORD_WIDTH_MAX)
	endian := "little"

	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"registers", &registers,
		"aliases?", &aliases,
		"width?", &width,
		"endian?", &endian)
	if err != nil {
		return nil, err
	}

	if st.policy != nil {
		return nil, ErrArgument{Builtin: b.Name(), Err: ErrPolicyDuplicate}
	}
	if len(st.instructions) != 0 || len(st.pseudos) != 0 {
		return nil, ErrArgument{Builtin: b.Name(), Err: ErrPolicyLate}
	}

	var order binary.ByteOrder
	switch endian {
	case "little":
		order = binary.LittleEndian
	case "big":
		order = binary.BigEndian
	default:
		return nil, ErrArgument{Builtin: b.Name(), Err: ErrEndian}
	}

	names, err := tokens(registers)
	if err != nil {
		return nil, ErrArgument{Builtin: b.Name(), Err: fmt.Errorf("registers: %w", err)}
	}

	numbers := map[string]uint32{}
	if aliases != nil {
		for _, item := range aliases.Items() {
			alias, ok := starlark.AsString(item[0])
			if !ok {
				return nil, ErrArgument{Builtin: b.Name(), Err: fmt.Errorf("alias %v is not a string", item[0])}
			}
			var number uint32
			err = starlark.AsInt(item[1], &number)
			if err != nil {
				return nil, ErrArgument{Builtin: b.Name(), Err: fmt.Errorf("alias %v: %w", alias, err)}
			}
			numbers[alias] = number
		}
	}

	if width < 0 {
		return nil, ErrArgument{Builtin: b.Name(), Err: isa.ErrRangeWordWidth}
	}
	policy, err := isa.NewRegisterFile(uint(width), order, names, numbers)
	if err != nil {
		return nil, ErrArgument{Builtin: b.Name(), Err: err}
	}

	st.policy = policy
	st.width = uint(width)
	st.logf("policy: %d registers, %d bit %v endian", len(names), width, endian)

	return starlark.None, nil
}

// op(value, start, stop)
func (st *state) builtinOp(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Int
	var start, stop int

	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &value, &start, &stop)
	if err != nil {
		return nil, err
	}

	var v uint32
	err = starlark.AsInt(value, &v)
	if err != nil {
		return nil, ErrArgument{Builtin: b.Name(), Err: err}
	}

	br, err := st.bits(b.Name(), start, stop)
	if err != nil {
		return nil, err
	}

	return &definition{kind: "op", item: isa.OpPart{Value: v, Range: br}}, nil
}

// reg(index, start, stop)
func (st *state) builtinReg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var index, start, stop int

	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &index, &start, &stop)
	if err != nil {
		return nil, err
	}

	br, err := st.bits(b.Name(), start, stop)
	if err != nil {
		return nil, err
	}

	var field isa.Field = &isa.Register{Index: index, Range: br}
	return &definition{kind: "reg", item: field}, nil
}

// part(offset, start, stop)
func (st *state) builtinPart(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var offset, start, stop int

	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &offset, &start, &stop)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, ErrArgument{Builtin: b.Name(), Err: isa.ErrImmPartOverflow}
	}

	br, err := st.bits(b.Name(), start, stop)
	if err != nil {
		return nil, err
	}

	return &definition{kind: "part", item: isa.ImmPart{Offset: uint(offset), Range: br}}, nil
}

// imm(index, width, parts, repr="signed", symbol="none")
func (st *state) builtinImm(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var index, width int
	var parts *starlark.List
	reprName := isa.REPR_SIGNED.String()
	symbolName := isa.SYMBOL_NONE.String()

	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"index", &index,
		"width", &width,
		"parts", &parts,
		"repr?", &reprName,
		"symbol?", &symbolName)
	if err != nil {
		return nil, err
	}

	repr, ok := isa.ParseRepr(reprName)
	if !ok {
		return nil, ErrArgument{Builtin: b.Name(), Err: ErrRepr}
	}
	symbol, ok := isa.ParseSymbolKind(symbolName)
	if !ok {
		return nil, ErrArgument{Builtin: b.Name(), Err: ErrSymbol}
	}
	if width <= 0 {
		return nil, ErrArgument{Builtin: b.Name(), Err: isa.ErrImmWidth}
	}

	immParts, err := items[isa.ImmPart](b.Name(), "part", parts)
	if err != nil {
		return nil, err
	}

	var field isa.Field = isa.Imm(index, uint(width), repr, symbol, immParts...)
	return &definition{kind: "imm", item: field}, nil
}

// instr(name, opcode, fields=[])
func (st *state) builtinInstr(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var opcode, fields *starlark.List

	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"opcode", &opcode,
		"fields?", &fields)
	if err != nil {
		return nil, err
	}

	opParts, err := items[isa.OpPart](b.Name(), "op", opcode)
	if err != nil {
		return nil, err
	}
	operands, err := items[isa.Field](b.Name(), "field", fields)
	if err != nil {
		return nil, err
	}

	ins := isa.NewInstruction(isa.NewOpcode(name, opParts...), operands...)
	st.instructions = append(st.instructions, ins)
	st.logf("instr %v: %d operands", name, len(operands))

	return &definition{kind: "instr", item: ins}, nil
}

// pseudo(name, expand, fields=[])
func (st *state) builtinPseudo(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var expand starlark.Callable
	var fields *starlark.List

	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"expand", &expand,
		"fields?", &fields)
	if err != nil {
		return nil, err
	}

	operands, err := items[isa.Field](b.Name(), "field", fields)
	if err != nil {
		return nil, err
	}

	// Closures made at load time are not globals, so ExecFile never freezes
	// them. Expansion must not mutate captured state.
	expand.Freeze()

	pi := isa.NewPseudo(name, expander(st.filename, name, expand), operands...)
	st.pseudos = append(st.pseudos, pi)
	st.logf("pseudo %v: %d operands", name, len(operands))

	return &definition{kind: "pseudo", item: pi}, nil
}

// literal(token) parses an assembler integer literal.
func builtinLiteral(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var token string

	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &token)
	if err != nil {
		return nil, err
	}

	value, ok := isa.ParseLiteral(token)
	if !ok {
		return nil, ErrArgument{Builtin: b.Name(), Err: isa.ErrMalformedImmediate{Token: token}}
	}

	return starlark.MakeInt64(value), nil
}

// expander adapts a frozen Starlark function to an isa.Expander. Each
// expansion runs on its own thread, so a loaded table is safe for concurrent
// use.
func expander(filename, name string, fn starlark.Callable) isa.Expander {
	return func(pi *isa.PseudoInstruction, line isa.SourceLine) (lines []isa.SourceLine, err error) {
		defer func() {
			if err != nil {
				err = isa.ErrExpansion{LineNo: line.LineNo, Mnemonic: name, Err: err}
				lines = nil
			}
		}()

		thread := &starlark.Thread{Name: filename + ":" + name}

		arg := make([]starlark.Value, len(line.Tokens))
		for n, tok := range line.Tokens {
			arg[n] = starlark.String(tok)
		}

		rc, err := starlark.Call(thread, fn, starlark.Tuple{starlark.NewList(arg)}, nil)
		if err != nil {
			return
		}

		seq, ok := rc.(starlark.Indexable)
		if _, isString := rc.(starlark.String); !ok || isString {
			err = ErrExpansionResult
			return
		}

		for n := range seq.Len() {
			var toks []string
			toks, err = tokens(seq.Index(n))
			if err != nil {
				return
			}
			lines = append(lines, isa.SourceLine{LineNo: line.LineNo, Tokens: toks})
		}

		return
	}
}
