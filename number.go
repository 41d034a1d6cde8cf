package jsontree

import (
	"fmt"
	"strconv"
	"strings"
)

// validateNumberGrammar enforces the two JSON-grammar rules §4.5 asks
// for on top of strconv's more permissive float grammar: no leading
// zero followed by another digit, and no stray hex/alphabetic
// digits. Ported from parson's is_decimal.
func validateNumberGrammar(s string) error {
	if len(s) > 1 && s[0] == '0' && isDigit(s[1]) {
		return fmt.Errorf("%w: leading zero in %q", ErrSyntax, s)
	}
	if len(s) > 2 && strings.HasPrefix(s, "-0") && isDigit(s[2]) {
		return fmt.Errorf("%w: leading zero in %q", ErrSyntax, s)
	}
	if strings.ContainsAny(s, "xX") {
		return fmt.Errorf("%w: hex digit in %q", ErrSyntax, s)
	}
	return nil
}

// scanNumber finds the longest prefix of s that looks like a JSON
// number token (sign, digits, decimal point, exponent), plus any 'x'
// and hex letters other than 'e'/'E' in the integer part, without
// validating its grammar — that's validateNumberGrammar's job. It
// mirrors strtod's "consume as much numeric-shaped input as
// possible" behavior, since Go's strconv.ParseFloat requires the
// exact substring up front rather than reporting how much it used.
func scanNumber(s string) (token string, rest string) {
	i := 0
	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < n && (isDigit(s[i]) || s[i] == 'x' || s[i] == 'X' ||
		(s[i] >= 'a' && s[i] <= 'f' && s[i] != 'e') ||
		(s[i] >= 'A' && s[i] <= 'F' && s[i] != 'E')) {
		i++
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && isDigit(s[i]) {
			i++
		}
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return s[:i], s[i:]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseNumberToken validates and converts token (as produced by
// scanNumber) to a float64, applying both JSON-grammar rules and
// strconv's own overflow detection (1e400 etc. overflow to +Inf,
// which is rejected here since it can't round-trip through a number
// Value).
func parseNumberToken(token string) (float64, error) {
	if err := validateNumberGrammar(token); err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, fmt.Errorf("%w: %q overflows float64", ErrSyntax, token)
		}
		return 0, fmt.Errorf("%w: %q is not a number: %v", ErrSyntax, token, err)
	}
	return f, nil
}
