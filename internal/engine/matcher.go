package engine

import (
	"github.com/roach88/jsonsql/internal/ir"
	"github.com/roach88/jsonsql/internal/queryir"
)

// matches reports whether a record satisfies a leaf condition.
//
// Typing rules:
//   - A record without the field never matches, for any operator.
//   - Numeric literal: the field value is coerced to a number (numbers as-is,
//     numeric-shaped strings parsed). If coercion fails, = is false, != is
//     true, and < and > are false.
//   - Non-numeric literal: = and != compare the field as-is, so 100 never
//     equals "100". < and > match nothing.
//
// Coercion is applied to the field only, never to the literal.
func matches(rec ir.Record, cond queryir.Condition) bool {
	value, ok := rec.Get(cond.Field)
	if !ok {
		return false
	}

	if cond.Numeric {
		return matchNumeric(value, cond)
	}
	return matchString(value, cond)
}

func matchNumeric(value ir.Value, cond queryir.Condition) bool {
	n, ok := ir.CoerceNumeric(value)
	if !ok {
		return cond.Op == queryir.OpNe
	}

	cmp := ir.CompareNumeric(n, cond.Literal)
	switch cond.Op {
	case queryir.OpEq:
		return cmp == 0
	case queryir.OpNe:
		return cmp != 0
	case queryir.OpLt:
		return cmp == -1
	case queryir.OpGt:
		return cmp == 1
	default:
		return false
	}
}

func matchString(value ir.Value, cond queryir.Condition) bool {
	switch cond.Op {
	case queryir.OpEq:
		return ir.Equal(value, cond.Literal)
	case queryir.OpNe:
		return !ir.Equal(value, cond.Literal)
	default:
		// < and > are numeric only.
		return false
	}
}
