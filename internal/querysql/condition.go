package querysql

import (
	"regexp"
	"strings"

	"github.com/roach88/jsonsql/internal/ir"
	"github.com/roach88/jsonsql/internal/queryir"
)

// conditionPattern matches `<field> <op> <value>` against the whole leaf text.
// The field cannot contain whitespace or operator characters. The value is a
// double-quoted string, a single-quoted string, or a bare token.
var conditionPattern = regexp.MustCompile(
	`^([^\s=!<>]+)\s*(!=|=|<|>)\s*("[^"]*"|'[^']*'|\S+)$`)

// ParseCondition parses one leaf condition.
//
// If the value token has the numeric shape (-?digits or -?digits.digits) the
// literal is an ir.Int or ir.Float and the condition is numeric. Otherwise the
// literal is an ir.String with one layer of matching surrounding quotes
// removed; no escape sequences are interpreted.
func ParseCondition(text string) (queryir.Condition, error) {
	text = strings.TrimSpace(text)
	m := conditionPattern.FindStringSubmatch(text)
	if m == nil {
		return queryir.Condition{}, newSyntaxError(KindConditionSyntax, ClauseWhere, text,
			"expected <field> <op> <value> with op one of =, !=, <, >")
	}

	cond := queryir.Condition{
		Field: m[1],
		Op:    queryir.Operator(m[2]),
	}

	raw := m[3]
	if n, ok := ir.ParseNumber(raw); ok {
		cond.Literal = n
		cond.Numeric = true
		return cond, nil
	}

	cond.Literal = ir.String(unquote(raw))
	return cond, nil
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
