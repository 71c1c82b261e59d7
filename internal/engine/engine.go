package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/jsonsql/internal/ir"
	"github.com/roach88/jsonsql/internal/queryir"
	"github.com/roach88/jsonsql/internal/querysql"
)

// QueryIDGenerator generates unique ids for query log correlation.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
// See queryid.go for implementations.
type QueryIDGenerator interface {
	Generate() string
}

// Engine evaluates queries against a single preloaded dataset.
//
// The dataset is fixed at construction and never mutated, so an Engine can be
// shared freely. Each Execute call parses its own plan and tree and discards
// them when it returns; nothing is cached between queries.
//
// INVARIANTS:
//   - Results always appear in original dataset order
//   - Set membership during AND/OR uses the row index, never record equality
//   - A failed query returns no partial result
type Engine struct {
	dataset *ir.Dataset
	idGen   QueryIDGenerator
	logger  *slog.Logger
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithLogger sets the logger used for per-query debug output.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithQueryIDGenerator overrides the query id generator.
// Default: UUIDv7Generator. Use NewFixedGenerator in tests for stable logs.
func WithQueryIDGenerator(gen QueryIDGenerator) EngineOption {
	return func(e *Engine) {
		e.idGen = gen
	}
}

// New creates an Engine over the given dataset.
// A nil dataset is treated as empty.
func New(dataset *ir.Dataset, opts ...EngineOption) *Engine {
	if dataset == nil {
		dataset = ir.NewDataset(nil)
	}

	e := &Engine{
		dataset: dataset,
		idGen:   UUIDv7Generator{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	// Apply options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Dataset returns the dataset the engine queries.
func (e *Engine) Dataset() *ir.Dataset {
	return e.dataset
}

// Execute parses and runs one query, returning the projected records in
// original dataset order.
//
// Pipeline:
//  1. Parse the query into a plan (QUERY_SYNTAX, LIMIT_FORMAT)
//  2. Evaluate the WHERE tree over the full dataset (CONDITION_SYNTAX)
//  3. Restore original order by row index
//  4. Truncate to LIMIT
//  5. Project the SELECT fields
//
// Errors are *QueryError values; use errors.Is with ErrQuerySyntax,
// ErrLimitFormat or ErrConditionSyntax to tell them apart.
func (e *Engine) Execute(query string) ([]ir.Record, error) {
	queryID := e.idGen.Generate()
	logger := e.logger.With("query_id", queryID)

	plan, err := querysql.ParseQuery(query)
	if err != nil {
		qerr := newQueryError(queryID, err)
		logger.Debug("query rejected", "code", qerr.Code, "error", qerr.Message)
		return nil, qerr
	}
	logger.Debug("query parsed",
		"select_all", plan.SelectAll,
		"fields", plan.Fields,
		"from", plan.From,
		"where", whereForLog(plan),
		"limit", limitForLog(plan),
	)

	results, err := e.ExecutePlan(plan)
	if err != nil {
		qerr := newQueryError(queryID, err)
		logger.Debug("query failed", "code", qerr.Code, "error", qerr.Message)
		return nil, qerr
	}

	logger.Debug("query executed", "returned", len(results))
	return results, nil
}

// ErrInvalidPlan is returned by ExecutePlan for a plan that fails
// queryir.Validate. Execute reports it as QUERY_SYNTAX.
var ErrInvalidPlan = errors.New("invalid plan")

// ExecutePlan runs an already parsed plan.
// Leaf conditions are parsed during evaluation, so a plan can still fail with
// a CONDITION_SYNTAX error.
func (e *Engine) ExecutePlan(plan *queryir.Plan) ([]ir.Record, error) {
	if result := queryir.Validate(plan); !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, strings.Join(result.Problems, "; "))
	}

	rows := e.dataset.Rows()

	if plan.HasWhere {
		matched, err := evaluate(plan.Where, rows)
		if err != nil {
			return nil, err
		}
		rows = restoreOrder(matched)
	}

	rows = applyLimit(plan, rows)
	return project(plan, rows), nil
}

// restoreOrder sorts rows by original index. Evaluation already yields
// ascending order; sorting here keeps the output contract independent of how
// the tree was combined.
func restoreOrder(rows []ir.Row) []ir.Row {
	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b ir.Row) int {
		return a.Index - b.Index
	})
	return sorted
}

// applyLimit keeps the first plan.Limit rows when a LIMIT was given.
func applyLimit(plan *queryir.Plan, rows []ir.Row) []ir.Row {
	if !plan.HasLimit || plan.Limit >= len(rows) {
		return rows
	}
	return rows[:plan.Limit]
}

// project shapes each row for output. SELECT * returns a copy of every
// field; a field list keeps only the listed fields present on each record,
// so records in one result may carry different field sets.
func project(plan *queryir.Plan, rows []ir.Row) []ir.Record {
	out := make([]ir.Record, len(rows))
	for i, row := range rows {
		if plan.SelectAll {
			out[i] = row.Record.Clone()
		} else {
			out[i] = row.Record.Project(plan.Fields)
		}
	}
	return out
}

func whereForLog(plan *queryir.Plan) string {
	if !plan.HasWhere {
		return ""
	}
	return queryir.Format(plan.Where)
}

func limitForLog(plan *queryir.Plan) any {
	if !plan.HasLimit {
		return nil
	}
	return plan.Limit
}

// asSyntaxError extracts the parser error behind err, if any.
func asSyntaxError(err error) (*querysql.SyntaxError, bool) {
	var se *querysql.SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
