package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNumber parses an unsigned integer literal. The literal is either
// plain decimal digits or carries one of the base prefixes 2#, 8#, 10#
// or 16#, as in 16#ff. Underscores may separate digit groups.
func ParseNumber(s string) (int64, error) {
	digits := strings.ReplaceAll(s, "_", "")
	base := 10

	if i := strings.IndexByte(digits, '#'); i >= 0 {
		switch digits[:i] {
		case "2":
			base = 2
		case "8":
			base = 8
		case "10":
			base = 10
		case "16":
			base = 16
		default:
			return 0, fmt.Errorf("invalid number %q; unsupported base %s", s, digits[:i])
		}
		digits = digits[i+1:]
	}

	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	return v, nil
}
