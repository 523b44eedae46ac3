package asm

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/bitasm/isa"
)

// Listing is one source line and the words it assembled to.
type Listing struct {
	LineNo  int      // Source line number.
	Address uint32   // Address of the first word.
	Tokens  []string // Tokens of the source line.
	Words   []uint32 // Encoded words.
}

// String formats the listing as address, words and tokens.
func (l Listing) String() string {
	words := make([]string, len(l.Words))
	for n, word := range l.Words {
		words[n] = fmt.Sprintf("%08x", word)
	}
	return fmt.Sprintf("%08x: %-17s %v", l.Address, strings.Join(words, " "), strings.Join(l.Tokens, " "))
}

// Program is an assembled program.
type Program struct {
	Policy  isa.Policy
	Listing []Listing
}

// Words iterates over every address and word of the program.
func (prog *Program) Words() iter.Seq2[uint32, uint32] {
	step := WordBytes(prog.Policy)
	return func(yield func(address, word uint32) bool) {
		for _, l := range prog.Listing {
			for n, word := range l.Words {
				if !yield(l.Address+uint32(n*step), word) {
					return
				}
			}
		}
	}
}

// Binary serializes the program words in the policy byte order.
func (prog *Program) Binary() (bin []byte) {
	for _, word := range prog.Words() {
		bin = appendWord(prog.Policy, bin, word)
	}
	return
}

// WordBytes is the number of bytes a word of the policy occupies.
func WordBytes(policy isa.Policy) int {
	return max(1, int(policy.WordWidth()+7)/8)
}

func appendWord(policy isa.Policy, bin []byte, word uint32) []byte {
	var buf [4]byte
	order := policy.ByteOrder()
	switch WordBytes(policy) {
	case 4:
		order.PutUint32(buf[:], word)
		return append(bin, buf[:4]...)
	case 2:
		order.PutUint16(buf[:], uint16(word))
		return append(bin, buf[:2]...)
	default:
		return append(bin, byte(word))
	}
}

func wordAt(policy isa.Policy, bin []byte) uint32 {
	order := policy.ByteOrder()
	switch WordBytes(policy) {
	case 4:
		return order.Uint32(bin)
	case 2:
		return uint32(order.Uint16(bin))
	default:
		return uint32(bin[0])
	}
}
