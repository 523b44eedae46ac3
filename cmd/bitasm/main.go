// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/ezrec/bitasm/asm"
	"github.com/ezrec/bitasm/isa"
	"github.com/ezrec/bitasm/loader"
	"github.com/ezrec/bitasm/riscv"
)

// loadTable selects a built in instruction set, or loads an ISA script.
func loadTable(name string, verbose bool) (table *isa.Table, err error) {
	switch name {
	case "rv32i":
		table = riscv.Table()
	case "rv32i-abi":
		table, err = riscv.NewTable(riscv.NewABIPolicy())
	default:
		ld := &loader.Loader{Verbose: verbose}
		table, err = ld.Load(name, nil)
	}
	return
}

// loadSymbols reads 'ADDRESS LABEL' lines.
func loadSymbols(input io.Reader) (symbols isa.Symbols, err error) {
	symbols = isa.Symbols{}
	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno += 1
		words := asm.Tokenize(scanner.Text())
		if len(words) == 0 {
			continue
		}
		address, ok := isa.ParseLiteral(words[0])
		if len(words) != 2 || !ok {
			err = fmt.Errorf("line %d: expected 'ADDRESS LABEL'", lineno)
			return
		}
		symbols[uint32(address)] = words[1]
	}
	err = scanner.Err()
	return
}

func main() {
	var isaName string
	var assemble string
	var decode string
	var base string
	var symFile string
	var output string
	var dump bool
	var verbose bool

	flag.StringVar(&isaName, "isa", "rv32i", "Instruction set: rv32i, rv32i-abi, or a .star ISA script")
	flag.StringVar(&assemble, "a", "", "Assembly file to assemble")
	flag.StringVar(&decode, "d", "", "Binary file to disassemble")
	flag.StringVar(&base, "base", "0", "Base address")
	flag.StringVar(&symFile, "sym", "", "Symbol file for disassembly")
	flag.StringVar(&output, "o", "", "Binary output of the assembled program")
	flag.BoolVar(&dump, "dump", false, "Dump the listing structures to stderr")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	table, err := loadTable(isaName, verbose)
	if err != nil {
		log.Fatalf("%v: %v", isaName, err)
	}

	origin, ok := isa.ParseLiteral(base)
	if !ok || origin < 0 {
		log.Fatalf("%v: -base %v: not an address", os.Args[0], base)
	}

	var symbols isa.SymbolMap
	if len(symFile) != 0 {
		inf, err := os.Open(symFile)
		if err != nil {
			log.Fatalf("%v: %v", symFile, err)
		}
		syms, err := loadSymbols(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", symFile, err)
		}
		symbols = syms
	}

	var listing []asm.Listing

	switch {
	case len(assemble) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		inf, err := os.Open(assemble)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
		defer inf.Close()

		as := &asm.Assembler{Table: table, Base: uint32(origin), Verbose: verbose}
		prog, err := as.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
		listing = prog.Listing

		if len(output) != 0 {
			err = os.WriteFile(output, prog.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}
	case len(decode) != 0:
		bin, err := os.ReadFile(decode)
		if err != nil {
			log.Fatalf("%v: %v", decode, err)
		}
		listing, err = asm.Decode(table, bin, uint32(origin), symbols)
		if err != nil {
			log.Fatalf("%v: %v", decode, err)
		}
	default:
		// Remaining arguments are words to disassemble.
		var words []uint32
		for _, arg := range flag.Args() {
			word, ok := isa.ParseLiteral(arg)
			if !ok {
				log.Fatalf("%v: %v: not a word", os.Args[0], arg)
			}
			words = append(words, uint32(word))
		}
		listing, err = asm.Disassemble(table, words, uint32(origin), symbols)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	if dump {
		spew.Fdump(os.Stderr, listing)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for _, l := range listing {
		fmt.Fprintln(out, strings.TrimRight(l.String(), " "))
	}
}
