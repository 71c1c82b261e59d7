package harness

import "github.com/roach88/jsonsql/internal/ir"

// QueryOutcome records what one query produced.
type QueryOutcome struct {
	Query   string
	Records []ir.Record

	// ErrorCode is the engine error code, or "" on success.
	ErrorCode string

	// ErrorClause names the failing clause, if any.
	ErrorClause string

	// Err is the query error, if any.
	Err error
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	// True if every query matched its expect clause.
	Pass bool

	// Outcomes has one entry per query, in scenario order.
	Outcomes []QueryOutcome

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Outcomes: []QueryOutcome{},
		Errors:   []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
