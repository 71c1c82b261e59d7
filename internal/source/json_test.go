package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/ir"
)

func TestDecodeJSON_FlatObjects(t *testing.T) {
	data := []byte(`[
		{"state": "California", "region": "West", "pop": 39538223},
		{"state": "Texas", "region": "South", "pop": 29145505, "share": 8.7, "coastal": true}
	]`)

	records, err := DecodeJSON(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"state", "region", "pop"}, records[0].Keys())
	pop, _ := records[0].Get("pop")
	assert.Equal(t, ir.Int(39538223), pop)

	share, _ := records[1].Get("share")
	assert.Equal(t, ir.Float(8.7), share)
	coastal, _ := records[1].Get("coastal")
	assert.Equal(t, ir.Bool(true), coastal)
}

func TestDecodeJSON_NumberTyping(t *testing.T) {
	records, err := DecodeJSON([]byte(`[{"a": 1, "b": 1.0, "c": -3, "d": 1e3, "e": 9223372036854775808}]`))
	require.NoError(t, err)

	tests := []struct {
		field string
		want  ir.Value
	}{
		{"a", ir.Int(1)},
		{"b", ir.Float(1)},
		{"c", ir.Int(-3)},
		{"d", ir.Float(1000)},
		{"e", ir.Float(9223372036854775808)},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := records[0].Get(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSON_NullIsAbsent(t *testing.T) {
	records, err := DecodeJSON([]byte(`[{"a": null, "b": "x"}]`))
	require.NoError(t, err)
	assert.False(t, records[0].Has("a"))
	assert.Equal(t, []string{"b"}, records[0].Keys())
}

func TestDecodeJSON_StringsKeepNumericText(t *testing.T) {
	records, err := DecodeJSON([]byte(`[{"age": "25"}]`))
	require.NoError(t, err)
	v, _ := records[0].Get("age")
	assert.Equal(t, ir.String("25"), v)
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"not json", `{`, "parse json"},
		{"top-level object", `{"a": 1}`, "must be an array"},
		{"element not object", `[1]`, "record 0: expected object"},
		{"nested object", `[{"a": 1}, {"b": {"c": 1}}]`, `record 1 field "b"`},
		{"nested array", `[{"a": [1]}]`, "nested array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeJSON_EmptyArray(t *testing.T) {
	records, err := DecodeJSON([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}
