package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/source"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions

	// QueryIDGenerator allows overriding query ids (for testing).
	// If nil, the engine default (UUIDv7) is used.
	QueryIDGenerator engine.QueryIDGenerator
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <data-file> <sql>",
		Short: "Run a single query",
		Long: `Load a dataset and run one query against it.

Exit codes:
  0 - Query succeeded
  1 - Query failed (syntax, LIMIT or condition error)
  2 - Command error (dataset missing or unreadable, bad configuration)

Examples:
  jsonsql query states.json "SELECT state FROM t WHERE region = 'South'"
  jsonsql query --format json people.yaml "SELECT * FROM t LIMIT 2"
  jsonsql query --table people app.db "SELECT name FROM people WHERE age > 30"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runQuery(opts *QueryOptions, dataPath, query string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	eng, err := openEngine(cmd.Context(), opts.RootOptions, dataPath, opts.QueryIDGenerator)
	if err != nil {
		_ = out.Error(sourceErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load dataset", err)
	}

	records, err := eng.Execute(query)
	if err != nil {
		_ = out.QueryError(err)
		return WrapExitError(ExitFailure, "query failed", err)
	}
	return out.Records(records)
}

// openEngine loads the dataset and builds an engine over it.
func openEngine(ctx context.Context, opts *RootOptions, dataPath string, idGen engine.QueryIDGenerator) (*engine.Engine, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger()

	ds, err := source.Load(ctx, dataPath, source.Options{
		Format: opts.SourceFormat,
		Table:  opts.Table,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	engineOpts := []engine.EngineOption{engine.WithLogger(logger)}
	if idGen != nil {
		engineOpts = append(engineOpts, engine.WithQueryIDGenerator(idGen))
	}
	return engine.New(ds, engineOpts...), nil
}

// sourceErrorCode distinguishes a missing dataset from an unreadable one.
func sourceErrorCode(err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return CodeNotFound
	}
	return CodeSourceLoad
}

// describeRecords is the one-line summary used in verbose output.
func describeRecords(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
