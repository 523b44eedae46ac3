package asm

import (
	"github.com/ezrec/bitasm/isa"
)

// Disassemble decodes words placed from base onward. Each word becomes one
// listing, numbered from 1.
func Disassemble(table *isa.Table, words []uint32, base uint32, symbols isa.SymbolMap) (listing []Listing, err error) {
	step := uint32(WordBytes(table.Policy()))

	decoded := make([]Listing, 0, len(words))
	for n, word := range words {
		address := base + uint32(n)*step
		var tokens []string
		tokens, err = table.Disassemble(word, address, symbols)
		if err != nil {
			err = ErrAddress{Address: address, Err: err}
			return
		}
		decoded = append(decoded, Listing{
			LineNo:  n + 1,
			Address: address,
			Tokens:  tokens,
			Words:   []uint32{word},
		})
	}

	listing = decoded

	return
}

// Decode splits a binary image into words in the policy byte order, and
// disassembles them.
func Decode(table *isa.Table, bin []byte, base uint32, symbols isa.SymbolMap) (listing []Listing, err error) {
	policy := table.Policy()
	step := WordBytes(policy)
	if len(bin)%step != 0 {
		err = ErrTruncated{Length: len(bin), WordBytes: step}
		return
	}

	words := make([]uint32, 0, len(bin)/step)
	for n := 0; n < len(bin); n += step {
		words = append(words, wordAt(policy, bin[n:]))
	}

	return Disassemble(table, words, base, symbols)
}
