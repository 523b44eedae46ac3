package isa

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestOpcode(t *testing.T) {
	assert := assert.New(t)

	op := NewOpcode("add", Op(0b0110011, 0, 6), Op(0, 12, 14), Op(0, 25, 31))
	assert.Equal(uint32(0x33), op.Apply(0))
	assert.Equal(uint32(0x33|0x80), op.Apply(0x80))
	assert.Equal([]string{"add"}, op.Decode(nil))
	assert.True(op.Matches(0x003100b3))
	assert.False(op.Matches(0x403100b3)) // sub

	mask, value := op.Pattern()
	assert.Equal(uint32(0xfe00707f), mask)
	assert.Equal(uint32(0x33), value)
}

func TestRegister_Apply(t *testing.T) {
	assert := assert.New(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	policy := NewMockPolicy(ctrl)
	policy.EXPECT().RegNumber("a5").Return(uint32(15), true)
	policy.EXPECT().RegNumber("q9").Return(uint32(0), false)
	policy.EXPECT().RegNumber("big").Return(uint32(35), true)

	reg := Reg(1, 7, 11)

	word, err := reg.Apply(policy, NewSourceLine(1, "op", "a5"), 0x33)
	assert.NoError(err)
	assert.Equal(uint32(0x33|15<<7), word)

	word, err = reg.Apply(policy, NewSourceLine(9, "op", "q9"), 0x33)
	assert.Equal(ErrUnknownRegisterName{LineNo: 9, Token: "q9"}, err)
	assert.Equal(uint32(0x33), word)

	// 35 does not fit five bits, and must not wrap to register 3.
	word, err = reg.Apply(policy, NewSourceLine(3, "op", "big"), 0x33)
	assert.Equal(ErrUnknownRegisterName{LineNo: 3, Token: "big"}, err)
	assert.Equal(uint32(0x33), word)

	// Missing token
	_, err = Reg(2, 15, 19).Apply(policy, NewSourceLine(4, "op", "a5"), 0)
	assert.Equal(ErrUnresolvedField{LineNo: 4, Index: 2}, err)
}

func TestRegister_Decode(t *testing.T) {
	assert := assert.New(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	policy := NewMockPolicy(ctrl)
	policy.EXPECT().RegName(uint32(3)).Return("x3", true)
	policy.EXPECT().RegName(uint32(31)).Return("", false)

	reg := Reg(1, 20, 24)

	tokens, err := reg.Decode(policy, 3<<20, []string{"add"})
	assert.NoError(err)
	assert.Equal([]string{"add", "x3"}, tokens)

	tokens, err = reg.Decode(policy, 31<<20, []string{"add"})
	assert.Equal(ErrUnknownRegisterNumber{Number: 31}, err)
	assert.Equal([]string{"add"}, tokens)
}

func TestImmediate_Value(t *testing.T) {
	signed := Imm(1, 12, REPR_SIGNED, SYMBOL_NONE, Part(0, 20, 31))
	unsigned := Imm(1, 5, REPR_UNSIGNED, SYMBOL_NONE, Part(0, 20, 24))
	hex := Imm(1, 20, REPR_HEX, SYMBOL_NONE, Part(0, 12, 31))
	even := Imm(1, 13, REPR_SIGNED, SYMBOL_NONE, Part(1, 8, 11), Part(5, 25, 30), Part(11, 7, 7), Part(12, 31, 31))

	tests := []struct {
		name  string
		imm   *Immediate
		token string
		value int64
		err   error
	}{
		{"signed max", signed, "2047", 2047, nil},
		{"signed min", signed, "-2048", -2048, nil},
		{"signed hex", signed, "0x7ff", 2047, nil},
		{"signed over", signed, "2048", 0, ErrImmediateRange{LineNo: 5, Token: "2048", Value: 2048, Width: 12, Repr: REPR_SIGNED}},
		{"signed under", signed, "-2049", 0, ErrImmediateRange{LineNo: 5, Token: "-2049", Value: -2049, Width: 12, Repr: REPR_SIGNED}},
		{"unsigned max", unsigned, "31", 31, nil},
		{"unsigned over", unsigned, "32", 0, ErrImmediateRange{LineNo: 5, Token: "32", Value: 32, Width: 5, Repr: REPR_UNSIGNED}},
		{"unsigned negative", unsigned, "-1", 0, ErrImmediateRange{LineNo: 5, Token: "-1", Value: -1, Width: 5, Repr: REPR_UNSIGNED}},
		{"hex max", hex, "0xfffff", 0xfffff, nil},
		{"hex decimal", hex, "4096", 4096, nil},
		{"hex over", hex, "0x100000", 0, ErrImmediateRange{LineNo: 5, Token: "0x100000", Value: 0x100000, Width: 20, Repr: REPR_HEX}},
		{"even", even, "-8", -8, nil},
		{"even max", even, "4094", 4094, nil},
		{"even odd", even, "3", 0, ErrImmediateRange{LineNo: 5, Token: "3", Value: 3, Width: 13, Repr: REPR_SIGNED}},
		{"even odd negative", even, "-7", 0, ErrImmediateRange{LineNo: 5, Token: "-7", Value: -7, Width: 13, Repr: REPR_SIGNED}},
		{"malformed", signed, "ten", 0, ErrMalformedImmediate{LineNo: 5, Token: "ten"}},
		{"malformed hex", hex, "0x", 0, ErrMalformedImmediate{LineNo: 5, Token: "0x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.imm.Value(NewSourceLine(5, "op", tt.token))
			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestImmediate_Apply(t *testing.T) {
	assert := assert.New(t)

	imm := Imm(1, 12, REPR_SIGNED, SYMBOL_NONE, Part(0, 20, 31))

	word, err := imm.Apply(NewSourceLine(1, "addi", "-1"), 0x13)
	assert.NoError(err)
	assert.Equal(uint32(0xfff00013), word)

	word, err = imm.Apply(NewSourceLine(1, "addi", "4096"), 0x13)
	assert.Error(err)
	assert.Equal(uint32(0x13), word)
}

func TestImmediate_Decode(t *testing.T) {
	assert := assert.New(t)

	signed := Imm(1, 12, REPR_SIGNED, SYMBOL_NONE, Part(0, 20, 31))
	tokens, err := signed.Decode(0xfff00013, 0, nil, nil)
	assert.NoError(err)
	assert.Equal([]string{"-1"}, tokens)

	unsigned := Imm(1, 12, REPR_UNSIGNED, SYMBOL_NONE, Part(0, 20, 31))
	tokens, err = unsigned.Decode(0xfff00013, 0, nil, nil)
	assert.NoError(err)
	assert.Equal([]string{"4095"}, tokens)

	hex := Imm(1, 20, REPR_HEX, SYMBOL_NONE, Part(0, 12, 31))
	tokens, err = hex.Decode(0x12345037, 0, nil, []string{"lui", "x0"})
	assert.NoError(err)
	assert.Equal([]string{"lui", "x0", "0x12345"}, tokens)
}

func TestImmediate_SignedFidelity(t *testing.T) {
	for _, width := range []uint{1, 5, 12, 20} {
		imm := Imm(1, width, REPR_SIGNED, SYMBOL_NONE, Part(0, 32-width, 31))
		limit := int64(1) << (width - 1)
		for v := -limit; v < limit; v++ {
			word := imm.Encode(v, 0)
			if got := int64(SignExtend(imm.Raw(word), width)); got != v {
				t.Fatalf("width %d: encode(%d) decoded as %d", width, v, got)
			}
		}
	}
}

func TestImmediate_MultiPart(t *testing.T) {
	assert := assert.New(t)

	// A 5-bit signed value split as value[1:0] at word[1:0], and value[4:2] at word[31:29].
	imm := Imm(1, 5, REPR_SIGNED, SYMBOL_NONE, Part(0, 0, 1), Part(2, 29, 31))
	for v := int64(-16); v < 16; v++ {
		word := imm.Encode(v, 0)
		assert.Zero(word&0x1ffffffc, "value %d leaked outside its parts", v)
		tokens, err := imm.Decode(word, 0, nil, nil)
		assert.NoError(err)
		line := NewSourceLine(1, "op", tokens[0])
		value, err := imm.Value(line)
		assert.NoError(err)
		assert.Equal(v, value)
	}

	// A 12-bit even-only offset: value[4:1] at word[4:1], value[10:5] at
	// word[10:5] and the value sign bit 11 at word[31].
	branch := Imm(1, 12, REPR_SIGNED, SYMBOL_NONE, Part(1, 1, 4), Part(5, 5, 10), Part(11, 31, 31))
	for v := int64(-2048); v < 2048; v += 2 {
		word := branch.Encode(v, 0)
		assert.Equal(v, int64(SignExtend(branch.Raw(word), 12)))
	}
	assert.Equal(uint32(0x80000000), branch.Encode(-2048, 0))
	assert.Equal(uint32(0x000007fe), branch.Encode(2046, 0))
}

func TestImmediate_Symbols(t *testing.T) {
	assert := assert.New(t)

	symbols := Symbols{0x0f8: "loop", 0x400: "data"}

	relative := Imm(1, 12, REPR_SIGNED, SYMBOL_RELATIVE, Part(0, 20, 31))
	word := relative.Encode(-8, 0)

	tokens, err := relative.Decode(word, 0x100, symbols, nil)
	assert.NoError(err)
	assert.Equal([]string{"-8", "<loop>"}, tokens)

	// No symbol at the target
	tokens, err = relative.Decode(word, 0x200, symbols, nil)
	assert.NoError(err)
	assert.Equal([]string{"-8"}, tokens)

	// No symbol map
	tokens, err = relative.Decode(word, 0x100, nil, nil)
	assert.NoError(err)
	assert.Equal([]string{"-8"}, tokens)

	absolute := Imm(1, 20, REPR_HEX, SYMBOL_ABSOLUTE, Part(0, 12, 31))
	tokens, err = absolute.Decode(absolute.Encode(0x400, 0), 0x100, symbols, nil)
	assert.NoError(err)
	assert.Equal([]string{"0x400", "<data>"}, tokens)

	none := Imm(1, 12, REPR_SIGNED, SYMBOL_NONE, Part(0, 20, 31))
	tokens, err = none.Decode(word, 0x100, symbols, nil)
	assert.NoError(err)
	assert.Equal([]string{"-8"}, tokens)
}

func TestParseRepr(t *testing.T) {
	assert := assert.New(t)

	repr, ok := ParseRepr("hex")
	assert.True(ok)
	assert.Equal(REPR_HEX, repr)

	_, ok = ParseRepr("octal")
	assert.False(ok)

	kind, ok := ParseSymbolKind("relative")
	assert.True(ok)
	assert.Equal(SYMBOL_RELATIVE, kind)

	_, ok = ParseSymbolKind("pcrel")
	assert.False(ok)

	assert.Equal("Repr(7)", Repr(7).String())
	assert.Equal("absolute", SYMBOL_ABSOLUTE.String())
}
