package querysql

import "fmt"

// ErrorKind categorizes parse failures.
type ErrorKind string

const (
	// KindQuerySyntax indicates the overall clause shape, or the WHERE
	// expression structure, is malformed.
	KindQuerySyntax ErrorKind = "QUERY_SYNTAX"

	// KindLimitFormat indicates the LIMIT argument is not a non-negative integer.
	KindLimitFormat ErrorKind = "LIMIT_FORMAT"

	// KindConditionSyntax indicates a leaf condition is not `field op value`.
	KindConditionSyntax ErrorKind = "CONDITION_SYNTAX"
)

// SyntaxError describes why a piece of query text could not be parsed.
type SyntaxError struct {
	Kind    ErrorKind
	Clause  string // "SELECT", "WHERE", "LIMIT", or "" for the overall shape
	Input   string // The offending text
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Clause != "" {
		return fmt.Sprintf("%s in %s clause: %s: %q", e.Kind, e.Clause, e.Message, e.Input)
	}
	return fmt.Sprintf("%s: %s: %q", e.Kind, e.Message, e.Input)
}

// Clause names used in SyntaxError.Clause.
const (
	ClauseSelect = "SELECT"
	ClauseWhere  = "WHERE"
	ClauseLimit  = "LIMIT"
)

func newSyntaxError(kind ErrorKind, clause, input, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Clause: clause, Input: input, Message: fmt.Sprintf(format, args...)}
}
