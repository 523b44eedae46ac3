package isa

import (
	"strconv"
	"strings"
)

// ParseLiteral parses a decimal or 0x prefixed hexadecimal integer, with an
// optional leading sign.
func ParseLiteral(token string) (value int64, ok bool) {
	digits := token
	negative := false

	switch {
	case strings.HasPrefix(digits, "-"):
		negative = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	base := 10
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		base = 16
		digits = digits[2:]
	}

	magnitude, err := strconv.ParseUint(digits, base, 63)
	if err != nil {
		return
	}

	value = int64(magnitude)
	if negative {
		value = -value
	}
	ok = true

	return
}

// FormatHex formats value as a 0x prefixed lower case hexadecimal token.
func FormatHex(value uint32) string {
	return "0x" + strconv.FormatUint(uint64(value), 16)
}
