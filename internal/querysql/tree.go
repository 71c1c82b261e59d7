package querysql

import (
	"strings"

	"github.com/roach88/jsonsql/internal/queryir"
)

// BuildTree converts WHERE text into an expression tree in one left-to-right
// pass.
//
// The builder keeps a current, possibly partial, node and a stack of pending
// parents, one per open parenthesis:
//
//	(        push current as a pending parent, start a fresh current
//	)        pop a pending parent and hang current on its empty operand
//	AND, OR  wrap current as the left operand of a new combinator
//	other    scan a leaf up to the next paren or AND/OR keyword
//
// AND and OR have equal precedence and associate left to right, so
// `a OR b AND c` is ((a OR b) AND c). Only parentheses group.
//
// Keywords are matched case-insensitively as whole words. Quoted strings are
// opaque: parentheses and keywords inside them belong to the leaf.
//
// Unbalanced parentheses are tolerated. A `)` with no pending parent is
// ignored, and groups still open at the end of the text are closed there.
// Two operands with no AND/OR between them, as in `(a = 1) b = 2`, are a
// QUERY_SYNTAX error.
//
// Empty text yields a nil tree. A combinator missing an operand (`a = 1 AND`)
// keeps a nil operand, which the engine evaluates as matching nothing.
func BuildTree(text string) (queryir.Node, error) {
	b := &treeBuilder{text: text}
	return b.build()
}

type treeBuilder struct {
	text    string
	pos     int
	current queryir.Node
	pending []queryir.Node
}

func (b *treeBuilder) build() (queryir.Node, error) {
	for b.skipSpace(); b.pos < len(b.text); b.skipSpace() {
		switch b.text[b.pos] {
		case '(':
			if !b.expectingOperand() {
				return nil, newSyntaxError(KindQuerySyntax, ClauseWhere, b.text,
					"missing AND/OR before '(' at offset %d", b.pos)
			}
			b.pending = append(b.pending, b.current)
			b.current = nil
			b.pos++

		case ')':
			b.closeGroup()
			b.pos++

		default:
			if keyword := b.keywordAt(b.pos); keyword != "" {
				b.combine(keyword)
				b.pos += len(keyword)
				continue
			}

			start := b.pos
			leaf := &queryir.Leaf{Text: b.scanLeaf()}
			if err := b.attachLeaf(leaf, start); err != nil {
				return nil, err
			}
		}
	}

	for len(b.pending) > 0 {
		b.closeGroup()
	}
	return b.current, nil
}

// expectingOperand reports whether current has room for another operand.
func (b *treeBuilder) expectingOperand() bool {
	switch node := b.current.(type) {
	case nil:
		return true
	case queryir.Combinator:
		_, right := node.Operands()
		return *right == nil
	default:
		return false
	}
}

// closeGroup finishes a parenthesized group. The group's tree fills the
// pending parent's first empty operand and the parent becomes current. With
// no pending parent the close is ignored; with a nil parent (the group
// opened the expression or another group) the group's tree stays current.
func (b *treeBuilder) closeGroup() {
	if len(b.pending) == 0 {
		return
	}
	parent := b.pending[len(b.pending)-1]
	b.pending = b.pending[:len(b.pending)-1]

	combinator, ok := parent.(queryir.Combinator)
	if !ok {
		return
	}
	left, right := combinator.Operands()
	if *left == nil {
		*left = b.current
	} else {
		*right = b.current
	}
	b.current = combinator
}

// combine makes current the left operand of a new combinator.
func (b *treeBuilder) combine(keyword string) {
	if strings.EqualFold(keyword, "AND") {
		b.current = &queryir.And{Left: b.current}
	} else {
		b.current = &queryir.Or{Left: b.current}
	}
}

// attachLeaf places a scanned leaf: as current when the tree is empty, or as
// the right operand of the current combinator.
func (b *treeBuilder) attachLeaf(leaf *queryir.Leaf, offset int) error {
	if b.current == nil {
		b.current = leaf
		return nil
	}
	if b.expectingOperand() {
		_, right := b.current.(queryir.Combinator).Operands()
		*right = leaf
		return nil
	}
	return newSyntaxError(KindQuerySyntax, ClauseWhere, b.text,
		"missing AND/OR before %q at offset %d", leaf.Text, offset)
}

// scanLeaf consumes characters up to the next paren or keyword outside of
// quotes and returns the trimmed text.
func (b *treeBuilder) scanLeaf() string {
	start := b.pos
	var quote byte
	for ; b.pos < len(b.text); b.pos++ {
		c := b.text[b.pos]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if (c == '\'' || c == '"') && opensQuote(b.text, b.pos) {
			quote = c
			continue
		}
		if c == '(' || c == ')' {
			break
		}
		if b.pos > start && b.keywordAt(b.pos) != "" {
			break
		}
	}
	return strings.TrimSpace(b.text[start:b.pos])
}

// opensQuote reports whether a quote character at text[i] starts a quoted
// value. Quotes only open at the start of a token, so apostrophes inside bare
// words such as O'Brien stay literal.
func opensQuote(text string, i int) bool {
	if i == 0 {
		return true
	}
	switch text[i-1] {
	case ' ', '\t', '\n', '\r', '=', '!', '<', '>', '(':
		return true
	default:
		return false
	}
}

// keywordAt returns "AND" or "OR" (as written) if a whole-word keyword starts
// at i, or "" otherwise.
func (b *treeBuilder) keywordAt(i int) string {
	if i > 0 && !isBoundary(b.text[i-1]) {
		return ""
	}
	for _, kw := range [...]string{"AND", "OR"} {
		end := i + len(kw)
		if end > len(b.text) || !strings.EqualFold(b.text[i:end], kw) {
			continue
		}
		if end == len(b.text) || isBoundary(b.text[end]) {
			return b.text[i:end]
		}
	}
	return ""
}

func (b *treeBuilder) skipSpace() {
	for b.pos < len(b.text) && isSpace(b.text[b.pos]) {
		b.pos++
	}
}

func isBoundary(c byte) bool {
	return isSpace(c) || c == '(' || c == ')'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
