package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/config"
	"github.com/roach88/jsonsql/internal/source"
)

// RootOptions holds global flags for all commands.
// Values are resolved through config.Load before any subcommand runs, so
// they reflect the config file and environment as well as the flags.
type RootOptions struct {
	Verbose      bool
	Format       string // "json" | "text"
	Prompt       string
	SourceFormat source.Format
	Table        string

	// Logger is built from Verbose once options are resolved.
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the jsonsql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jsonsql",
		Short: "jsonsql - SQL-like queries over record files",
		Long: `Run SELECT ... FROM ... [WHERE ...] [LIMIT n] queries over a dataset
loaded from a JSON, YAML, CUE or SQLite file.

Configuration is read from flags, JSONSQL_* environment variables, and an
optional jsonsql.yaml in the working directory (or --config).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.String(config.KeyConfig, "", "config file (default ./jsonsql.yaml if present)")
	flags.BoolP(config.KeyVerbose, "v", false, "verbose output")
	flags.String(config.KeyFormat, "text", "output format (json|text)")
	flags.String(config.KeyPrompt, config.DefaultPrompt, "REPL prompt")
	flags.String(config.KeySourceFormat, "", "dataset format (json|yaml|cue|sqlite), detected from extension if empty")
	flags.String(config.KeyTable, "", "table to read from a SQLite dataset")

	// Add subcommands
	cmd.AddCommand(NewREPLCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve loads configuration into the options and sets up logging.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.Verbose = cfg.Verbose
	o.Format = cfg.Format
	o.Prompt = cfg.Prompt
	o.SourceFormat = cfg.SourceFormat
	o.Table = cfg.Table
	o.Logger = newLogger(o.Verbose, cmd.ErrOrStderr())

	if cfg.File != "" {
		o.Logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

// newLogger builds the stderr text logger: Info by default, Debug when
// verbose.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// logger returns the resolved logger, or a discarding one when the command
// runs without the root (as in unit tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// formatter builds an output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
