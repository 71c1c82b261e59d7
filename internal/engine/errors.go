package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/jsonsql/internal/querysql"
)

// QueryError represents a query that could not be executed.
//
// Query errors abort the query with no partial result. They are never
// retried; the caller decides whether to ask for another query.
//
// QueryError includes structured fields for diagnostics.
type QueryError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Clause names the failing clause ("SELECT", "WHERE", "LIMIT"), or is
	// empty when the overall query shape is wrong.
	Clause string

	// Message is a human-readable description.
	Message string

	// Input is the offending text.
	Input string

	// QueryID correlates the error with debug logs.
	QueryID string

	// Err is the underlying parser error.
	Err error
}

// ErrorCode categorizes query errors.
type ErrorCode string

const (
	// ErrCodeQuerySyntax indicates the query does not have the shape
	// SELECT ... FROM ... [WHERE ...] [LIMIT ...], or its WHERE expression
	// is structurally malformed.
	ErrCodeQuerySyntax ErrorCode = "QUERY_SYNTAX"

	// ErrCodeLimitFormat indicates the LIMIT argument is not a non-negative integer.
	ErrCodeLimitFormat ErrorCode = "LIMIT_FORMAT"

	// ErrCodeConditionSyntax indicates a leaf condition is not `field op value`.
	ErrCodeConditionSyntax ErrorCode = "CONDITION_SYNTAX"
)

// Sentinel errors for errors.Is matching against a *QueryError's Code.
var (
	ErrQuerySyntax     = errors.New("query syntax error")
	ErrLimitFormat     = errors.New("limit format error")
	ErrConditionSyntax = errors.New("condition syntax error")
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Clause != "" {
		return fmt.Sprintf("%s: %s in %s clause: %q", e.Code, e.Message, e.Clause, e.Input)
	}
	return fmt.Sprintf("%s: %s: %q", e.Code, e.Message, e.Input)
}

// Unwrap returns the underlying parser error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Code.
func (e *QueryError) Is(target error) bool {
	switch target {
	case ErrQuerySyntax:
		return e.Code == ErrCodeQuerySyntax
	case ErrLimitFormat:
		return e.Code == ErrCodeLimitFormat
	case ErrConditionSyntax:
		return e.Code == ErrCodeConditionSyntax
	default:
		return false
	}
}

// IsQuerySyntaxError returns true if the error is a query syntax error.
// Uses errors.As to handle wrapped errors.
func IsQuerySyntaxError(err error) bool {
	return hasCode(err, ErrCodeQuerySyntax)
}

// IsLimitFormatError returns true if the error is a LIMIT format error.
func IsLimitFormatError(err error) bool {
	return hasCode(err, ErrCodeLimitFormat)
}

// IsConditionSyntaxError returns true if the error is a leaf condition error.
func IsConditionSyntaxError(err error) bool {
	return hasCode(err, ErrCodeConditionSyntax)
}

func hasCode(err error, code ErrorCode) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code == code
	}
	return false
}

// newQueryError lifts a parser error into a QueryError.
// Errors that did not come from the parser are reported as query syntax
// errors so callers only ever see the three documented codes.
func newQueryError(queryID string, err error) *QueryError {
	se, ok := asSyntaxError(err)
	if !ok {
		return &QueryError{
			Code:    ErrCodeQuerySyntax,
			Message: err.Error(),
			QueryID: queryID,
			Err:     err,
		}
	}

	return &QueryError{
		Code:    codeForKind(se.Kind),
		Clause:  se.Clause,
		Message: se.Message,
		Input:   se.Input,
		QueryID: queryID,
		Err:     se,
	}
}

func codeForKind(kind querysql.ErrorKind) ErrorCode {
	switch kind {
	case querysql.KindLimitFormat:
		return ErrCodeLimitFormat
	case querysql.KindConditionSyntax:
		return ErrCodeConditionSyntax
	default:
		return ErrCodeQuerySyntax
	}
}
