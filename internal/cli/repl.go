package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/engine"
)

// REPLOptions holds flags for the repl command.
type REPLOptions struct {
	*RootOptions

	// QueryIDGenerator allows overriding query ids (for testing).
	// If nil, the engine default (UUIDv7) is used.
	QueryIDGenerator engine.QueryIDGenerator
}

// NewREPLCommand creates the repl command.
func NewREPLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &REPLOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl <data-file>",
		Short: "Query a dataset interactively",
		Long: `Load a dataset once, then read queries from standard input one line at a
time and print each result.

Type "exit" or send EOF to quit. Ctrl-C also exits cleanly. A failed query
prints an error and the loop continues.

Example:
  jsonsql repl states.json
  jsonsql repl --format json --verbose people.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(opts, args[0], cmd)
		},
	}

	return cmd
}

func runREPL(opts *REPLOptions, dataPath string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	w := cmd.OutOrStdout()

	eng, err := openEngine(cmd.Context(), opts.RootOptions, dataPath, opts.QueryIDGenerator)
	if err != nil {
		_ = out.Error(sourceErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load dataset", err)
	}
	opts.logger().Info("dataset ready", "path", dataPath, "records", eng.Dataset().Len())

	// Setup signal handling for a clean exit on Ctrl-C
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			opts.logger().Debug("received signal, exiting", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	lines, readErr := readLines(ctx, cmd)
	for {
		if opts.Format != "json" {
			fmt.Fprint(w, opts.Prompt)
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nExiting program...")
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-readErr; err != nil {
				_ = out.Error(CodeGeneric, "failed to read query: "+err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to read query", err)
			}
			// EOF
			if opts.Format != "json" {
				fmt.Fprintln(w)
			}
			return nil
		}

		query := strings.TrimSpace(line)
		if strings.EqualFold(query, "exit") {
			return nil
		}
		if query == "" {
			continue
		}

		records, err := eng.Execute(query)
		if err != nil {
			if outErr := out.QueryError(err); outErr != nil {
				return outErr
			}
			continue
		}
		if err := out.Records(records); err != nil {
			return err
		}
		out.VerboseLog("%s", describeRecords(len(records)))
	}
}

// maxQueryLineBytes bounds a single input line.
const maxQueryLineBytes = 1 << 20

// readLines scans the command's input on a goroutine so the loop can also
// wait for cancellation. The channel closes at EOF or on a read error; the
// error channel receives exactly one value (nil at EOF) before that.
func readLines(ctx context.Context, cmd *cobra.Command) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			errc <- err
			close(lines)
		}()

		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxQueryLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err = scanner.Err()
	}()
	return lines, errc
}
