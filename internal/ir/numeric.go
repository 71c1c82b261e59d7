package ir

import (
	"regexp"
	"strconv"
	"strings"
)

// numericPattern matches the only numeric shapes the query language knows:
// an optional minus sign, digits, and an optional fractional part.
// Exponents, leading plus signs and bare fractions (".5") are not numeric.
var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// IsNumericText reports whether s has the numeric literal shape.
func IsNumericText(s string) bool {
	return numericPattern.MatchString(s)
}

// ParseNumber converts numeric text into an Int or a Float.
// Text with a fractional part becomes a Float; integral text that
// overflows int64 also falls back to Float.
// Returns false if s does not have the numeric literal shape.
func ParseNumber(s string) (Value, bool) {
	if !IsNumericText(s) {
		return nil, false
	}
	if !strings.Contains(s, ".") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(n), true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return Float(f), true
}

// CoerceNumeric returns v as a numeric value if it already is one, or if it
// is a String with the numeric literal shape. Bools are never coercible.
func CoerceNumeric(v Value) (Value, bool) {
	switch val := v.(type) {
	case Int, Float:
		return val, true
	case String:
		return ParseNumber(string(val))
	default:
		return nil, false
	}
}
