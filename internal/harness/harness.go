package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/ir"
	"github.com/roach88/jsonsql/internal/source"
	"github.com/roach88/jsonsql/internal/testutil"
)

// RunOption configures a scenario run.
type RunOption func(*runConfig)

type runConfig struct {
	ctx    context.Context
	logger *slog.Logger
}

// WithContext sets the context used to load the dataset.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		c.ctx = ctx
	}
}

// WithLogger passes a logger to the loader and the engine.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load the dataset (file or inline records)
//  2. Build an engine with a fixed query id so logs are reproducible
//  3. Run every query in order, checking its expect clause
//
// The returned error covers setup failures only; expectation failures are
// reported through Result.
func Run(scenario *Scenario, opts ...RunOption) (*Result, error) {
	cfg := &runConfig{ctx: context.Background()}
	for _, opt := range opts {
		opt(cfg)
	}

	ds, err := loadDataset(cfg, scenario)
	if err != nil {
		return nil, err
	}

	engineOpts := []engine.EngineOption{
		engine.WithQueryIDGenerator(testutil.NewFixedQueryIDGenerator("scenario-" + scenario.Name)),
	}
	if cfg.logger != nil {
		engineOpts = append(engineOpts, engine.WithLogger(cfg.logger))
	}
	eng := engine.New(ds, engineOpts...)

	result := NewResult()
	for i, step := range scenario.Queries {
		outcome := runStep(eng, step.Query)
		result.Outcomes = append(result.Outcomes, outcome)
		checkExpect(result, i, step, outcome)
	}
	return result, nil
}

func loadDataset(cfg *runConfig, s *Scenario) (*ir.Dataset, error) {
	if s.Dataset == "" {
		return ir.NewDataset(s.records), nil
	}
	format, err := source.ParseFormat(s.Format)
	if err != nil {
		return nil, err
	}
	ds, err := source.Load(cfg.ctx, s.Dataset, source.Options{
		Format: format,
		Table:  s.Table,
		Logger: cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}

func runStep(eng *engine.Engine, query string) QueryOutcome {
	records, err := eng.Execute(query)
	outcome := QueryOutcome{Query: query, Records: records, Err: err}

	var qe *engine.QueryError
	if errors.As(err, &qe) {
		outcome.ErrorCode = string(qe.Code)
		outcome.ErrorClause = qe.Clause
	} else if err != nil {
		outcome.ErrorCode = "UNKNOWN"
	}
	return outcome
}

// checkExpect compares one outcome against its expect clause.
func checkExpect(result *Result, index int, step QueryStep, outcome QueryOutcome) {
	prefix := fmt.Sprintf("queries[%d] %q", index, step.Query)
	exp := step.Expect

	if exp != nil && exp.Error != "" {
		want := strings.ToUpper(exp.Error)
		switch {
		case outcome.Err == nil:
			result.AddError(fmt.Sprintf("%s: expected %s error, got %d results", prefix, want, len(outcome.Records)))
		case outcome.ErrorCode != want:
			result.AddError(fmt.Sprintf("%s: expected %s error, got %v", prefix, want, outcome.Err))
		}
		return
	}

	if outcome.Err != nil {
		result.AddError(fmt.Sprintf("%s: unexpected error: %v", prefix, outcome.Err))
		return
	}
	if exp == nil {
		return
	}

	if exp.Count != nil && len(outcome.Records) != *exp.Count {
		result.AddError(fmt.Sprintf("%s: expected %d results, got %d", prefix, *exp.Count, len(outcome.Records)))
	}
	if exp.hasResults {
		if msg := diffRecords(exp.results, outcome.Records); msg != "" {
			result.AddError(fmt.Sprintf("%s: %s", prefix, msg))
		}
	}
}

// diffRecords describes the first difference between want and got, or
// returns "" when they match.
func diffRecords(want, got []ir.Record) string {
	if len(want) != len(got) {
		return fmt.Sprintf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			wantJSON, _ := want[i].MarshalJSON()
			gotJSON, _ := got[i].MarshalJSON()
			return fmt.Sprintf("result %d: expected %s, got %s", i, wantJSON, gotJSON)
		}
	}
	return ""
}
