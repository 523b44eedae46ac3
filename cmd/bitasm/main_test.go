package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitasm/isa"
)

func TestLoadSymbols(t *testing.T) {
	assert := assert.New(t)

	symbols, err := loadSymbols(strings.NewReader("0x100 loop\n\n# comment\n256 again\n0x20 start ; entry\n"))
	assert.NoError(err)
	assert.Equal(isa.Symbols{0x100: "again", 0x20: "start"}, symbols)

	_, err = loadSymbols(strings.NewReader("loop 0x100\n"))
	assert.ErrorContains(err, "line 1")
}

func TestLoadTable(t *testing.T) {
	assert := assert.New(t)

	table, err := loadTable("rv32i", false)
	assert.NoError(err)
	name, _ := table.Policy().RegName(2)
	assert.Equal("x2", name)

	table, err = loadTable("rv32i-abi", false)
	assert.NoError(err)
	name, _ = table.Policy().RegName(2)
	assert.Equal("sp", name)

	table, err = loadTable("../../loader/testdata/toy16.star", false)
	assert.NoError(err)
	assert.Equal(uint(16), table.Policy().WordWidth())

	_, err = loadTable("missing.star", false)
	assert.Error(err)
}
