package queryir

import (
	"fmt"
)

// ValidationResult lists structural problems found in a plan.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems describes each rule the plan breaks, in discovery order.
	Problems []string
}

// Validate checks that a plan is well formed before it is executed.
//
// Plans produced by the parser always pass. The check exists for plans built
// by hand, which skip the parser's guarantees.
//
// Rules:
//  1. A projection names at least one field unless SelectAll is set
//  2. Field names are non-empty
//  3. LIMIT is non-negative
//  4. A WHERE tree is only present when HasWhere is set
//  5. Leaves carry condition text
//
// Nil operands inside a combinator are allowed; they match nothing.
//
// Validate is a pure function with no side effects.
func Validate(plan *Plan) ValidationResult {
	v := &validator{
		problems: []string{},
	}
	v.validatePlan(plan)

	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validatePlan(plan *Plan) {
	if plan == nil {
		v.addProblem("nil plan")
		return
	}

	if !plan.SelectAll {
		if len(plan.Fields) == 0 {
			v.addProblem("empty projection - select at least one field or *")
		}
		for i, name := range plan.Fields {
			if name == "" {
				v.addProblem("empty field name at position %d", i)
			}
		}
	}

	if plan.HasLimit && plan.Limit < 0 {
		v.addProblem("negative limit %d", plan.Limit)
	}

	if !plan.HasWhere {
		if plan.Where != nil {
			v.addProblem("WHERE tree set without HasWhere")
		}
		return
	}
	v.validateNode(plan.Where)
}

// validateNode recursively validates a WHERE tree node.
func (v *validator) validateNode(n Node) {
	switch node := n.(type) {
	case nil:
		// Empty operand, matches nothing
	case *Leaf:
		if node == nil || node.Text == "" {
			v.addProblem("empty condition leaf")
		}
	case *And:
		if node == nil {
			return
		}
		v.validateNode(node.Left)
		v.validateNode(node.Right)
	case *Or:
		if node == nil {
			return
		}
		v.validateNode(node.Left)
		v.validateNode(node.Right)
	default:
		v.addProblem("unknown node type: %T", n)
	}
}
