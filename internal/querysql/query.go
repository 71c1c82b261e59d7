package querysql

import (
	"regexp"
	"strings"

	"github.com/roach88/jsonsql/internal/queryir"
)

// headPattern recognizes SELECT ... FROM <source>, keywords case-insensitive.
// FROM takes a single token. Group 3 is the remainder, which splitClauses
// divides into WHERE and LIMIT.
var headPattern = regexp.MustCompile(`(?is)^\s*SELECT\s+(.+?)\s+FROM\s+(\S+)(.*)$`)

const limitWord = "LIMIT"

// ParseQuery splits a query string into its clauses and parses each one.
//
// The WHERE text is handed to BuildTree and the LIMIT text to ParseLimit.
// Leaf conditions are NOT parsed here; they are parsed when evaluated, so a
// malformed leaf surfaces as a CONDITION_SYNTAX error from the engine.
//
// An empty WHERE clause (`WHERE` followed by nothing) is treated as no WHERE
// clause at all. The first LIMIT keyword outside quotes ends the WHERE text.
func ParseQuery(query string) (*queryir.Plan, error) {
	m := headPattern.FindStringSubmatch(query)
	if m == nil {
		return nil, shapeError(query)
	}
	c, ok := splitClauses(m[3])
	if !ok {
		return nil, shapeError(query)
	}

	plan := &queryir.Plan{}
	if err := parseSelect(strings.TrimSpace(m[1]), plan); err != nil {
		return nil, err
	}
	plan.From = m[2]

	if whereText := strings.TrimSpace(c.where); whereText != "" {
		tree, err := BuildTree(whereText)
		if err != nil {
			return nil, err
		}
		plan.HasWhere = true
		plan.Where = tree
	}

	if c.hasLimit {
		if len(strings.Fields(c.limit)) > 1 {
			return nil, newSyntaxError(KindQuerySyntax, ClauseLimit, query, "LIMIT takes a single argument")
		}
		limit, err := ParseLimit(c.limit)
		if err != nil {
			return nil, err
		}
		plan.HasLimit = true
		plan.Limit = limit
	}

	return plan, nil
}

func shapeError(query string) *SyntaxError {
	return newSyntaxError(KindQuerySyntax, "", query,
		"expected SELECT <fields> FROM <source> [WHERE <condition>] [LIMIT <n>]")
}

// clauses holds the raw text of the optional trailing clauses.
type clauses struct {
	where    string
	limit    string
	hasLimit bool
}

// splitClauses divides the text after the FROM source into WHERE and LIMIT
// parts. It reports false when the text is neither empty nor a WHERE or
// LIMIT clause.
func splitClauses(rest string) (clauses, bool) {
	var c clauses
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return c, true
	}

	if n := keywordPrefix(rest, "WHERE"); n > 0 {
		rest = rest[n:]
		i := findLimit(rest)
		if i < 0 {
			c.where = rest
			return c, true
		}
		c.where, rest = rest[:i], rest[i:]
	}

	if n := keywordPrefix(rest, limitWord); n > 0 {
		c.hasLimit = true
		c.limit = strings.TrimSpace(rest[n:])
		return c, true
	}
	return c, false
}

// keywordPrefix returns the length of kw if s starts with it as a whole
// word followed by whitespace or the end of s, or 0 otherwise.
func keywordPrefix(s, kw string) int {
	if len(s) < len(kw) || !strings.EqualFold(s[:len(kw)], kw) {
		return 0
	}
	if len(s) > len(kw) && !isSpace(s[len(kw)]) {
		return 0
	}
	return len(kw)
}

// findLimit returns the offset of the first LIMIT keyword in WHERE text, or
// -1. Quoted spans are skipped using the same quote rule as BuildTree.
func findLimit(text string) int {
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		if (c == '\'' || c == '"') && opensQuote(text, i) {
			quote = c
			continue
		}
		if isLimitKeyword(text, i) {
			return i
		}
	}
	return -1
}

// isLimitKeyword reports whether a whole-word LIMIT at i is the clause
// keyword. Next to a comparison operator it is a field name or a bare
// literal, as in `status = limit`.
func isLimitKeyword(text string, i int) bool {
	end := i + len(limitWord)
	if end > len(text) || !strings.EqualFold(text[i:end], limitWord) {
		return false
	}
	if i > 0 && !isBoundary(text[i-1]) {
		return false
	}
	if end < len(text) && !isBoundary(text[end]) {
		return false
	}
	return !isOperatorByte(prevNonSpace(text, i)) && !isOperatorByte(nextNonSpace(text, end))
}

func prevNonSpace(text string, i int) byte {
	for i--; i >= 0; i-- {
		if !isSpace(text[i]) {
			return text[i]
		}
	}
	return 0
}

func nextNonSpace(text string, i int) byte {
	for ; i < len(text); i++ {
		if !isSpace(text[i]) {
			return text[i]
		}
	}
	return 0
}

func isOperatorByte(c byte) bool {
	return c == '=' || c == '!' || c == '<' || c == '>'
}

// parseSelect fills the projection part of the plan.
// `*` selects every field; otherwise the list is comma separated and each
// name trimmed. Empty names are dropped.
func parseSelect(text string, plan *queryir.Plan) error {
	if text == "*" {
		plan.SelectAll = true
		return nil
	}

	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		plan.Fields = append(plan.Fields, name)
	}
	if len(plan.Fields) == 0 {
		return newSyntaxError(KindQuerySyntax, ClauseSelect, text, "empty select list")
	}
	return nil
}
