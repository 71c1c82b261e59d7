// Package queryir provides the intermediate representation produced by the
// query parser and consumed by the engine.
//
// A query string is parsed into a Plan:
//
//	SELECT <fields> FROM <source> [WHERE <expr>] [LIMIT <n>]
//	  → Plan{Fields, From, Where, Limit}
//
// The WHERE expression becomes a strictly binary tree of Nodes:
//
//	Leaf  - one atomic comparison, kept as raw text until evaluation
//	And   - both operands must match
//	Or    - either operand may match
//
// SEALED INTERFACE:
//
// Node is sealed with the marker method pattern so the evaluator can switch
// exhaustively over the three node types. A nil Node is the absent tree.
//
// AND and OR carry no precedence relative to each other. The tree shape is
// exactly the left-to-right order in which combinators appear, with
// parentheses as the only grouping. See querysql.BuildTree.
package queryir
