package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/ir"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query or scenario failure
	ExitCommandError = 2 // Command error (invalid paths, bad config, unreadable dataset, etc.)
)

// Error codes for CLI responses.
const (
	CodeGeneric         = "E001"
	CodeNotFound        = "E005"
	CodeQuerySyntax     = "E201"
	CodeLimitFormat     = "E202"
	CodeConditionSyntax = "E203"
	CodeSourceLoad      = "E301"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode maps an error to its CLI response code.
func ErrorCode(err error) string {
	switch {
	case engine.IsQuerySyntaxError(err):
		return CodeQuerySyntax
	case engine.IsLimitFormatError(err):
		return CodeLimitFormat
	case engine.IsConditionSyntaxError(err):
		return CodeConditionSyntax
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	default:
		return CodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string    `json:"status"`             // "ok" or "error"
	Data    any       `json:"data,omitempty"`     // success payload
	Error   *CLIError `json:"error,omitempty"`    // error details
	QueryID string    `json:"query_id,omitempty"` // optional log correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E201", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Records outputs query results. Text output numbers each record from 1
// and lists one tab-indented field per line, followed by a blank line.
// An empty result prints nothing in text mode.
func (f *OutputFormatter) Records(records []ir.Record) error {
	if f.Format == "json" {
		if records == nil {
			records = []ir.Record{}
		}
		return f.encode(CLIResponse{
			Status: "ok",
			Data:   records,
		})
	}

	_, err := io.WriteString(f.Writer, RenderRecords(records))
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// QueryError outputs a failed query. The query id is attached as details
// so it can be matched against verbose logs.
func (f *OutputFormatter) QueryError(err error) error {
	var details any
	var qe *engine.QueryError
	if errors.As(err, &qe) {
		details = map[string]string{"query_id": qe.QueryID}
	}
	return f.Error(ErrorCode(err), err.Error(), details)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// encode writes one JSON line without HTML escaping.
func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

// RenderRecords formats records the way the REPL prints them:
//
//	Result #1:
//		state: Texas
//
func RenderRecords(records []ir.Record) string {
	var buf bytes.Buffer
	for i, rec := range records {
		fmt.Fprintf(&buf, "Result #%d:\n", i+1)
		for _, field := range rec.Fields() {
			fmt.Fprintf(&buf, "\t%s: %s\n", field.Name, field.Value)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}
