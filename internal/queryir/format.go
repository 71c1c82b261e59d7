package queryir

import "strings"

// Format renders a tree in fully parenthesized form, e.g.
// `((age > 30 AND salary > 6500) OR region = 'North')`.
// An absent node renders as `<nil>`.
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	switch node := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Leaf:
		b.WriteString(node.Text)
	case *And:
		formatBinary(b, "AND", node.Left, node.Right)
	case *Or:
		formatBinary(b, "OR", node.Left, node.Right)
	}
}

func formatBinary(b *strings.Builder, op string, left, right Node) {
	b.WriteByte('(')
	format(b, left)
	b.WriteByte(' ')
	b.WriteString(op)
	b.WriteByte(' ')
	format(b, right)
	b.WriteByte(')')
}

// CountLeaves returns the number of leaf conditions in the tree.
func CountLeaves(n Node) int {
	switch node := n.(type) {
	case *Leaf:
		return 1
	case *And:
		return CountLeaves(node.Left) + CountLeaves(node.Right)
	case *Or:
		return CountLeaves(node.Left) + CountLeaves(node.Right)
	default:
		return 0
	}
}
