package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jsonsql/internal/ir"
	"github.com/roach88/jsonsql/internal/source"
)

// Scenario defines a set of queries to run against one dataset.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dataset is a path to a dataset file, relative to the scenario file.
	Dataset string `yaml:"dataset,omitempty"`

	// Format overrides dataset format detection.
	Format string `yaml:"format,omitempty"`

	// Table names the table to read when Dataset is a SQLite database.
	Table string `yaml:"table,omitempty"`

	// Records is an inline dataset, used instead of Dataset.
	Records yaml.Node `yaml:"records,omitempty"`

	// Queries run in order against the same dataset.
	Queries []QueryStep `yaml:"queries"`

	// records holds the decoded inline dataset.
	records []ir.Record
}

// QueryStep is one query and its expected outcome.
type QueryStep struct {
	Query string `yaml:"query"`

	// Expect specifies the expected outcome.
	// If nil, the query only has to succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a query.
type ExpectClause struct {
	// Results are the exact expected records, in order.
	Results yaml.Node `yaml:"results,omitempty"`

	// Count is the expected number of records.
	Count *int `yaml:"count,omitempty"`

	// Error is the expected error kind: query_syntax, limit_format or
	// condition_syntax.
	Error string `yaml:"error,omitempty"`

	// results holds the decoded expected records.
	results    []ir.Record
	hasResults bool
}

// Error kinds accepted in expect.error.
const (
	ExpectQuerySyntax     = "query_syntax"
	ExpectLimitFormat     = "limit_format"
	ExpectConditionSyntax = "condition_syntax"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML. A relative dataset path is resolved
// against baseDir.
func ParseScenario(data []byte, baseDir string) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "query:" vs "queries:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Dataset != "" && !filepath.IsAbs(scenario.Dataset) && baseDir != "" {
		scenario.Dataset = filepath.Join(baseDir, scenario.Dataset)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and decodes inline records.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	hasRecords := s.Records.Kind != 0
	switch {
	case s.Dataset != "" && hasRecords:
		return fmt.Errorf("dataset and records are mutually exclusive")
	case s.Dataset == "" && !hasRecords:
		return fmt.Errorf("one of dataset or records is required")
	case hasRecords:
		records, err := source.DecodeYAMLRecords(&s.Records)
		if err != nil {
			return fmt.Errorf("records: %w", err)
		}
		s.records = records
	}

	if _, err := source.ParseFormat(s.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}
	for i := range s.Queries {
		if err := validateStep(i, &s.Queries[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *QueryStep) error {
	if strings.TrimSpace(step.Query) == "" {
		return fmt.Errorf("queries[%d]: query is required", index)
	}
	exp := step.Expect
	if exp == nil {
		return nil
	}

	if exp.Results.Kind != 0 {
		results, err := source.DecodeYAMLRecords(&exp.Results)
		if err != nil {
			return fmt.Errorf("queries[%d].expect.results: %w", index, err)
		}
		exp.results = results
		exp.hasResults = true
	}

	switch exp.Error {
	case "":
	case ExpectQuerySyntax, ExpectLimitFormat, ExpectConditionSyntax:
		if exp.hasResults || exp.Count != nil {
			return fmt.Errorf("queries[%d].expect: error cannot be combined with results or count", index)
		}
	default:
		return fmt.Errorf("queries[%d].expect: unknown error kind %q (must be %s, %s or %s)",
			index, exp.Error, ExpectQuerySyntax, ExpectLimitFormat, ExpectConditionSyntax)
	}

	if exp.Count != nil && *exp.Count < 0 {
		return fmt.Errorf("queries[%d].expect: count must be non-negative", index)
	}
	return nil
}
