package queryir

import (
	"github.com/roach88/jsonsql/internal/ir"
)

// Node represents a WHERE-clause expression tree node.
//
// This is a sealed interface - only *Leaf, *And and *Or implement it.
// Binary nodes are fully formed only after parsing completes; while the
// tree is being built an operand may still be nil.
type Node interface {
	exprNode() // Marker method - seals interface to this package
}

// Leaf is an atomic comparison such as `age > 30`.
// Text is the trimmed condition text; it is parsed into a Condition when
// the leaf is evaluated.
type Leaf struct {
	Text string
}

func (*Leaf) exprNode() {}

// And matches records matched by both operands.
type And struct {
	Left  Node
	Right Node
}

func (*And) exprNode() {}

// Or matches records matched by either operand.
type Or struct {
	Left  Node
	Right Node
}

func (*Or) exprNode() {}

// Combinator is implemented by the binary node types.
// Operands exposes the operand slots so a builder can fill them in place.
type Combinator interface {
	Node
	Operands() (left, right *Node)
}

func (n *And) Operands() (left, right *Node) { return &n.Left, &n.Right }
func (n *Or) Operands() (left, right *Node)  { return &n.Left, &n.Right }

// Operator is a comparison operator in a leaf condition.
type Operator string

const (
	OpEq Operator = "="
	OpNe Operator = "!="
	OpLt Operator = "<"
	OpGt Operator = ">"
)

// Condition is a parsed leaf: <field> <op> <literal>.
//
// Numeric is true when the literal text had the numeric shape, in which
// case Literal is an ir.Int or ir.Float. Otherwise Literal is an ir.String
// with one layer of matching quotes removed.
type Condition struct {
	Field   string
	Op      Operator
	Literal ir.Value
	Numeric bool
}

// Plan is a parsed query.
type Plan struct {
	// Fields lists the projected field names in SELECT order.
	// Ignored when SelectAll is true.
	Fields    []string
	SelectAll bool

	// From is captured for diagnostics only; queries always run against the
	// engine's single dataset.
	From string

	// HasWhere is true when a non-empty WHERE clause was given. Where may
	// still be nil in that case (e.g. `WHERE ()`), which matches nothing.
	HasWhere bool
	Where    Node

	HasLimit bool
	Limit    int
}
