package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/ir"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(CodeQuerySyntax, "bad query", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E201", resp.Error.Code)
	assert.Equal(t, "bad query", resp.Error.Message)
}

func TestOutputFormatter_JSONRecords(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	records := []ir.Record{
		ir.NewRecord(ir.F("z", ir.String("a<b")), ir.F("a", ir.Float(1.5))),
	}
	require.NoError(t, formatter.Records(records))

	// Field order is kept and HTML characters are not escaped.
	assert.Equal(t, `{"status":"ok","data":[{"z":"a<b","a":1.5}]}`+"\n", buf.String())
}

func TestOutputFormatter_JSONEmptyRecords(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Records(nil))
	assert.Equal(t, `{"status":"ok","data":[]}`+"\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("E001", "something failed", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "Error [E001]: something failed\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error("E001", "something failed", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_QueryErrorDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	qerr := &engine.QueryError{Code: engine.ErrCodeConditionSyntax, Message: "bad", Input: "x", QueryID: "q-9"}
	require.NoError(t, formatter.QueryError(qerr))

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, CodeConditionSyntax, resp.Error.Code)
	assert.Equal(t, "q-9", resp.Error.Details["query_id"])
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "text",
				Writer:    buf,
				ErrWriter: errBuf,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Processing %s", "states.json")

			assert.Empty(t, buf.String())
			if tt.wantLog {
				assert.Contains(t, errBuf.String(), "Processing states.json")
			} else {
				assert.Empty(t, errBuf.String())
			}
		})
	}
}

func TestRenderRecords(t *testing.T) {
	records := []ir.Record{
		ir.NewRecord(ir.F("state", ir.String("Texas"))),
		ir.NewRecord(ir.F("state", ir.String("Florida")), ir.F("pop", ir.Int(21538187)), ir.F("share", ir.Float(6))),
	}

	want := "Result #1:\n\tstate: Texas\n\n" +
		"Result #2:\n\tstate: Florida\n\tpop: 21538187\n\tshare: 6.0\n\n"
	assert.Equal(t, want, RenderRecords(records))
	assert.Empty(t, RenderRecords(nil))
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"query syntax", &engine.QueryError{Code: engine.ErrCodeQuerySyntax}, CodeQuerySyntax},
		{"limit", &engine.QueryError{Code: engine.ErrCodeLimitFormat}, CodeLimitFormat},
		{"condition", fmt.Errorf("wrapped: %w", &engine.QueryError{Code: engine.ErrCodeConditionSyntax}), CodeConditionSyntax},
		{"not found", fmt.Errorf("open: %w", fs.ErrNotExist), CodeNotFound},
		{"other", errors.New("boom"), CodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrap: %w", WrapExitError(ExitFailure, "x", errors.New("y")))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
