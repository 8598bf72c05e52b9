// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"math"
	"strconv"
)

const (
	WORD_BITS       = 32    // Width of a machine word.
	ITERATION_LIMIT = 10000 // Default ceiling on executed lines per run.
	ACCUMULATOR     = RAX   // Register holding the result of a run.
)

// Wrap truncates a wide intermediate result to a machine word with two's
// complement wraparound.
func Wrap(raw int64) int32 {
	return int32(uint32(uint64(raw) & math.MaxUint32))
}

// Fits reports if the raw value is representable as a machine word.
func Fits(raw int64) bool {
	return raw >= math.MinInt32 && raw <= math.MaxInt32
}

// ParseWord parses a signed machine word. Digits are decimal, or
// hexadecimal after a 0x prefix. Leading zeros do not select octal.
func ParseWord(text string) (value int32, err error) {
	var sign string
	digits := text
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		sign, digits = digits[:1], digits[1:]
	}

	base := 10
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		base, digits = 16, digits[2:]
	}

	if len(digits) == 0 || digits[0] == '-' || digits[0] == '+' {
		err = ErrParseNumber(text)
		return
	}

	raw, err := strconv.ParseInt(sign+digits, base, WORD_BITS)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = int32(raw)
	return
}
