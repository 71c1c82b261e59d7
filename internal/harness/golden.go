package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/jsonsql/internal/ir"
)

// Snapshot captures every query output of a scenario run.
type Snapshot struct {
	Scenario string          `json:"scenario"`
	Queries  []QuerySnapshot `json:"queries"`
}

// QuerySnapshot captures one query output.
type QuerySnapshot struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []ir.Record    `json:"results,omitempty"`
	Error   *ErrorSnapshot `json:"error,omitempty"`
}

// ErrorSnapshot captures the kind of a query error.
type ErrorSnapshot struct {
	Code   string `json:"code"`
	Clause string `json:"clause,omitempty"`
}

// NewSnapshot builds the snapshot of a scenario result.
func NewSnapshot(name string, result *Result) Snapshot {
	snap := Snapshot{Scenario: name, Queries: make([]QuerySnapshot, len(result.Outcomes))}
	for i, o := range result.Outcomes {
		qs := QuerySnapshot{Query: o.Query, Count: len(o.Records), Results: o.Records}
		if o.ErrorCode != "" {
			qs.Error = &ErrorSnapshot{Code: o.ErrorCode, Clause: o.ErrorClause}
		}
		snap.Queries[i] = qs
	}
	return snap
}

// MarshalSnapshot encodes a snapshot as indented JSON. Record fields keep
// their order and HTML characters are not escaped, so the bytes are stable
// across runs.
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...RunOption) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}

	data, err := MarshalSnapshot(NewSnapshot(scenario.Name, result))
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
