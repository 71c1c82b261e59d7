package engine

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/ir"
	"github.com/roach88/jsonsql/internal/queryir"
	"github.com/roach88/jsonsql/internal/querysql"
)

// evaluate returns the rows of the input that satisfy node, in input order.
//
// Both children of a combinator are evaluated against the same input rows,
// then merged by row index: AND keeps rows in both, OR keeps rows in either.
// Every leaf is parsed even when rows is empty so malformed conditions
// always surface as errors.
//
// A nil node matches nothing.
func evaluate(node queryir.Node, rows []ir.Row) ([]ir.Row, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil

	case *queryir.Leaf:
		cond, err := querysql.ParseCondition(n.Text)
		if err != nil {
			return nil, err
		}
		var out []ir.Row
		for _, row := range rows {
			if matches(row.Record, cond) {
				out = append(out, row)
			}
		}
		return out, nil

	case *queryir.And:
		left, right, err := evaluatePair(n.Left, n.Right, rows)
		if err != nil {
			return nil, err
		}
		return intersect(left, right), nil

	case *queryir.Or:
		left, right, err := evaluatePair(n.Left, n.Right, rows)
		if err != nil {
			return nil, err
		}
		return union(left, right), nil

	default:
		return nil, fmt.Errorf("unsupported expression node %T", node)
	}
}

func evaluatePair(l, r queryir.Node, rows []ir.Row) ([]ir.Row, []ir.Row, error) {
	left, err := evaluate(l, rows)
	if err != nil {
		return nil, nil, err
	}
	right, err := evaluate(r, rows)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// intersect merges two index-ascending row lists, keeping rows present in
// both. The result is index-ascending.
func intersect(a, b []ir.Row) []ir.Row {
	var out []ir.Row
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index < b[j].Index:
			i++
		case a[i].Index > b[j].Index:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// union merges two index-ascending row lists, keeping each row once. The
// result is index-ascending.
func union(a, b []ir.Row) []ir.Row {
	out := make([]ir.Row, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index < b[j].Index:
			out = append(out, a[i])
			i++
		case a[i].Index > b[j].Index:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
