package isa

import (
	"fmt"
)

const (
	WORD_WIDTH_MAX = 32 // Widest supported instruction word.
)

// BitRange is an inclusive [Start, Stop] span of bits in an N bit word.
type BitRange struct {
	Start uint // Lowest bit.
	Stop  uint // Highest bit, inclusive.
	N     uint // Word width.
}

// NewBitRange returns a validated BitRange.
func NewBitRange(start, stop, n uint) (br BitRange, err error) {
	br = BitRange{Start: start, Stop: stop, N: n}
	err = br.Validate()
	if err != nil {
		br = BitRange{}
	}
	return
}

// Bits returns the range [start, stop] of a 32-bit word. It panics on an
// invalid range, and is intended for static instruction tables.
func Bits(start, stop uint) BitRange {
	br, err := NewBitRange(start, stop, WORD_WIDTH_MAX)
	if err != nil {
		panic(fmt.Sprintf("isa: bits [%d:%d]: %v", stop, start, err))
	}
	return br
}

// validWordWidth is true for powers of two up to WORD_WIDTH_MAX.
func validWordWidth(n uint) bool {
	return n != 0 && n <= WORD_WIDTH_MAX && n&(n-1) == 0
}

// Validate checks the range invariants.
func (br BitRange) Validate() error {
	if !validWordWidth(br.N) {
		return ErrRangeWordWidth
	}
	if br.Start > br.Stop || br.Stop >= br.N {
		return ErrRangeInvalid
	}
	return nil
}

// Width returns the number of bits in the range.
func (br BitRange) Width() uint {
	return br.Stop - br.Start + 1
}

// Mask returns Width() low bits set.
func (br BitRange) Mask() uint32 {
	return mask(br.Width())
}

// Apply masks value to the range width, and shifts it into position.
func (br BitRange) Apply(value uint32) uint32 {
	return (value & br.Mask()) << br.Start
}

// Decode extracts the range from word.
func (br BitRange) Decode(word uint32) uint32 {
	return (word >> br.Start) & br.Mask()
}

// Overlaps is true if any bit is shared with other.
func (br BitRange) Overlaps(other BitRange) bool {
	return br.Start <= other.Stop && other.Start <= br.Stop
}

func (br BitRange) String() string {
	return fmt.Sprintf("[%d:%d]", br.Stop, br.Start)
}

// mask returns a value with the low width bits set.
func mask(width uint) uint32 {
	if width >= 32 {
		return 0xffffffff
	}
	return (uint32(1) << width) - 1
}

// SignExtend interprets the low width bits of value as two's complement.
func SignExtend(value uint32, width uint) int32 {
	if width == 0 || width >= 32 {
		return int32(value)
	}
	shift := 32 - width
	return int32(value<<shift) >> shift
}
