package utils

import (
	"strconv"
	"strings"

	"github.com/julianstephens/dayfit/internal/constants"
)

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"},
	{1, "I"},
}

// Roman renders n as an upper-case Roman numeral. Non-positive values
// render as the empty string.
func Roman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

// Alphabetic renders n in bijective base 26: 1 is "a", 26 is "z", 27 is "aa".
func Alphabetic(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// RowLabel numbers table rows (1-based) in the configured number format.
func RowLabel(n int, format string) string {
	switch format {
	case constants.NumberFormatRoman:
		return Roman(n)
	case constants.NumberFormatAlphabet:
		return Alphabetic(n)
	default:
		return strconv.Itoa(n)
	}
}
