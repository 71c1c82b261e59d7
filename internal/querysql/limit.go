package querysql

import (
	"regexp"
	"strconv"
	"strings"
)

var limitPattern = regexp.MustCompile(`^\d+$`)

// ParseLimit parses a LIMIT argument. Only a plain non-negative decimal
// integer is accepted: no sign, no fraction, no exponent.
func ParseLimit(text string) (int, error) {
	text = strings.TrimSpace(text)
	if !limitPattern.MatchString(text) {
		return 0, newSyntaxError(KindLimitFormat, ClauseLimit, text, "LIMIT must be a non-negative integer")
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, newSyntaxError(KindLimitFormat, ClauseLimit, text, "LIMIT out of range")
	}
	return n, nil
}
