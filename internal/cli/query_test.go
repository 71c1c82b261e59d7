package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/engine"
)

func executeQuery(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewQueryCommand(&RootOptions{Format: format})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryCommand_Text(t *testing.T) {
	out, err := executeQuery(t, "text", "testdata/states.json", "SELECT state FROM table WHERE region = 'South'")
	require.NoError(t, err)
	assert.Equal(t, "Result #1:\n\tstate: Texas\n\nResult #2:\n\tstate: Florida\n\n", out)
}

func TestQueryCommand_JSON(t *testing.T) {
	out, err := executeQuery(t, "json", "testdata/states.json", "SELECT state, population FROM table WHERE population > 30000000")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "California", resp.Data[0]["state"])
	assert.Equal(t, float64(39538223), resp.Data[0]["population"])
}

func TestQueryCommand_NoResults(t *testing.T) {
	out, err := executeQuery(t, "text", "testdata/states.json", "SELECT state FROM table WHERE region = 'south'")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestQueryCommand_QueryErrors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"syntax", "SELECT state", CodeQuerySyntax},
		{"limit", "SELECT * FROM t LIMIT -5", CodeLimitFormat},
		{"condition", "SELECT * FROM t WHERE region LIKE 'S%'", CodeConditionSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeQuery(t, "text", "testdata/states.json", tt.query)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestQueryCommand_MissingDataset(t *testing.T) {
	out, err := executeQuery(t, "json", filepath.Join(t.TempDir(), "nope.json"), "SELECT * FROM t")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeNotFound, resp.Error.Code)
}

func TestQueryCommand_UnreadableDataset(t *testing.T) {
	out, err := executeQuery(t, "text", "testdata/golden/repl_session.golden", "SELECT * FROM t")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+CodeSourceLoad+"]")
}

func TestQueryCommand_MissingArgs(t *testing.T) {
	_, err := executeQuery(t, "text", "testdata/states.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg")
}

func TestRunQuery_FixedQueryIDInErrorDetails(t *testing.T) {
	out := &bytes.Buffer{}
	root := &RootOptions{Format: "json"}
	cmd := NewQueryCommand(root)
	cmd.SetOut(out)

	opts := &QueryOptions{RootOptions: root, QueryIDGenerator: engine.NewFixedGenerator("q-test")}
	err := runQuery(opts, "testdata/states.json", "SELECT * FROM t LIMIT nope", cmd)
	require.Error(t, err)

	assert.Equal(t,
		`{"status":"error","error":{"code":"E202","message":"LIMIT_FORMAT: LIMIT must be a non-negative integer in LIMIT clause: \"nope\"","details":{"query_id":"q-test"}}}`+"\n",
		out.String())
}
