// internal/answer/parse.go
package answer

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse decomposes a display string into prefix, numeral, and suffix. The
// prefix is the longest leading run of characters that are not digits, '.',
// or '-'; the suffix is the longest trailing run of characters that are not
// digits or '.'. The remainder must parse as a floating-point numeral.
//
// Strings this package produced always round-trip exactly. For external
// strings this is a best-effort decomposition.
func Parse(display string) (ParsedAnswer, error) {
	trimmed := strings.TrimSpace(display)

	start := 0
	for start < len(trimmed) && !isNumeralByte(trimmed[start], true) {
		start++
	}
	end := len(trimmed)
	for end > start && !isNumeralByte(trimmed[end-1], false) {
		end--
	}

	numeral := trimmed[start:end]
	value, err := strconv.ParseFloat(numeral, 64)
	if err != nil {
		return ParsedAnswer{}, fmt.Errorf("%w: could not isolate a numeral in %q", ErrUnparseableAnswer, display)
	}

	places := 0
	if dot := strings.IndexByte(numeral, '.'); dot >= 0 {
		places = len(numeral) - dot - 1
	}

	return ParsedAnswer{
		Raw:           trimmed,
		Number:        value,
		Prefix:        trimmed[:start],
		Suffix:        trimmed[end:],
		DecimalPlaces: places,
	}, nil
}

// isNumeralByte reports whether c can belong to the numeral region. A leading
// '-' binds to the numeral; a trailing '-' belongs to the suffix.
func isNumeralByte(c byte, allowMinus bool) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if c == '.' {
		return true
	}
	return allowMinus && c == '-'
}
