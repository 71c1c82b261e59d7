package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/queryir"
)

func mustBuild(t *testing.T, text string) queryir.Node {
	t.Helper()
	tree, err := BuildTree(text)
	require.NoError(t, err)
	return tree
}

func TestBuildTreeShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single leaf", "age > 30", "age > 30"},
		{"leaf trimmed", "   age > 30   ", "age > 30"},
		{"and", "age > 30 AND salary > 6500", "(age > 30 AND salary > 6500)"},
		{"or", "region = 'South' OR region = 'West'", "(region = 'South' OR region = 'West')"},
		{
			"no precedence, left associative",
			"a = 1 OR b = 2 AND c = 3",
			"((a = 1 OR b = 2) AND c = 3)",
		},
		{
			"and then or is also left associative",
			"a = 1 AND b = 2 OR c = 3",
			"((a = 1 AND b = 2) OR c = 3)",
		},
		{
			"parentheses group the right operand",
			"a = 1 OR (b = 2 AND c = 3)",
			"(a = 1 OR (b = 2 AND c = 3))",
		},
		{
			"two parenthesized groups",
			"(age > 30 AND salary > 6500) OR (age < 10 AND region = 'North')",
			"((age > 30 AND salary > 6500) OR (age < 10 AND region = 'North'))",
		},
		{
			"nested groups",
			"((age > 30 AND salary > 6500) OR (age < 10 AND region = 'North')) AND name = 'Alice'",
			"(((age > 30 AND salary > 6500) OR (age < 10 AND region = 'North')) AND name = 'Alice')",
		},
		{"redundant parentheses", "((a = 1))", "a = 1"},
		{"lowercase keywords", "a = 1 and b = 2 or c = 3", "((a = 1 and b = 2) or c = 3)"},
		{"keyword without spaces around parens", "(a = 1)AND(b = 2)", "(a = 1 AND b = 2)"},
		{"keyword-like words stay in leaf", "name = ORACLE", "name = ORACLE"},
		{"word containing AND", "brand = ANDROID", "brand = ANDROID"},
		{"quoted keyword stays in leaf", "region = 'North AND South'", "region = 'North AND South'"},
		{"quoted parens stay in leaf", `note = "(draft)"`, `note = "(draft)"`},
		{"apostrophe inside bare word", "name = O'Brien OR x = 1", "(name = O'Brien OR x = 1)"},
		{"special characters", "description = 'This is a @#$%ˆ&*test!'", "description = 'This is a @#$%ˆ&*test!'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, queryir.Format(mustBuild(t, tt.input)))
		})
	}
}

func TestBuildTreeNodeTypes(t *testing.T) {
	tree := mustBuild(t, "(a = 1 AND b = 2) OR c = 3")

	or, ok := tree.(*queryir.Or)
	require.True(t, ok, "expected *Or at root, got %T", tree)

	and, ok := or.Left.(*queryir.And)
	require.True(t, ok, "expected *And on left, got %T", or.Left)
	assert.Equal(t, &queryir.Leaf{Text: "a = 1"}, and.Left)
	assert.Equal(t, &queryir.Leaf{Text: "b = 2"}, and.Right)

	assert.Equal(t, &queryir.Leaf{Text: "c = 3"}, or.Right)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Nil(t, mustBuild(t, ""))
	assert.Nil(t, mustBuild(t, "   "))
	assert.Nil(t, mustBuild(t, "()"))
}

func TestBuildTreeStrayCloseParenIsIgnored(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a = 1) AND b = 2", "(a = 1 AND b = 2)"},
		{")a = 1", "a = 1"},
		{"(a = 1)) OR b = 2", "(a = 1 OR b = 2)"},
		{"a = 1 AND b = 2)", "(a = 1 AND b = 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, queryir.Format(mustBuild(t, tt.input)))
		})
	}
}

func TestBuildTreeUnclosedGroupClosesAtEnd(t *testing.T) {
	assert.Equal(t, "(a = 1 AND b = 2)", queryir.Format(mustBuild(t, "a = 1 AND (b = 2")))
	assert.Equal(t, "(a = 1 OR (b = 2 AND c = 3))", queryir.Format(mustBuild(t, "a = 1 OR (b = 2 AND (c = 3")))
}

func TestBuildTreeMissingOperands(t *testing.T) {
	// Dangling combinators keep a nil operand rather than failing
	assert.Equal(t, "(a = 1 AND <nil>)", queryir.Format(mustBuild(t, "a = 1 AND")))
	assert.Equal(t, "(<nil> OR a = 1)", queryir.Format(mustBuild(t, "OR a = 1")))
	assert.Equal(t, "(<nil> AND a = 1)", queryir.Format(mustBuild(t, "() AND a = 1")))
}

func TestBuildTreeRejectsJuxtaposedOperands(t *testing.T) {
	inputs := []string{
		"(a = 1) b = 2",
		"a = 1 (b = 2)",
		"(a = 1) (b = 2)",
		"a = 1 AND (b = 2) c = 3",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := BuildTree(input)
			require.Error(t, err)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, KindQuerySyntax, se.Kind)
			assert.Contains(t, se.Message, "missing AND/OR")
		})
	}
}
