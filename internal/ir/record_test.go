package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPreservesInsertionOrder(t *testing.T) {
	r := NewRecord(
		F("state", String("Texas")),
		F("population", Int(30000000)),
		F("region", String("South")),
	)

	assert.Equal(t, []string{"state", "population", "region"}, r.Keys())
	assert.Equal(t, 3, r.Len())

	// Overwriting keeps position
	r.Set("state", String("Florida"))
	assert.Equal(t, []string{"state", "population", "region"}, r.Keys())
	v, ok := r.Get("state")
	require.True(t, ok)
	assert.Equal(t, String("Florida"), v)
}

func TestRecordZeroValue(t *testing.T) {
	var r Record
	_, ok := r.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	r.Set("a", Int(1))
	assert.True(t, r.Has("a"))
}

func TestRecordProject(t *testing.T) {
	r := NewRecord(F("a", Int(1)), F("b", Int(2)), F("c", Int(3)))

	p := r.Project([]string{"c", "missing", "a", "c"})
	assert.Equal(t, []string{"c", "a"}, p.Keys())

	// Source record is untouched
	assert.Equal(t, 3, r.Len())
}

func TestRecordClone(t *testing.T) {
	r := NewRecord(F("a", Int(1)))
	c := r.Clone()
	c.Set("a", Int(2))
	c.Set("b", Int(3))

	v, _ := r.Get("a")
	assert.Equal(t, Int(1), v)
	assert.False(t, r.Has("b"))
}

func TestRecordEqual(t *testing.T) {
	a := NewRecord(F("x", Int(1)), F("y", String("s")))
	b := NewRecord(F("y", String("s")), F("x", Int(1)))
	assert.True(t, a.Equal(b), "field order must not matter")

	c := NewRecord(F("x", Float(1)), F("y", String("s")))
	assert.False(t, a.Equal(c), "kinds must match")

	d := NewRecord(F("x", Int(1)))
	assert.False(t, a.Equal(d))
}

func TestDatasetAssignsStableIndexes(t *testing.T) {
	same := NewRecord(F("k", Int(1)))
	ds := NewDataset([]Record{same, same, NewRecord(F("k", Int(2)))})

	require.Equal(t, 3, ds.Len())
	for i, row := range ds.Rows() {
		assert.Equal(t, i, row.Index)
	}

	row, ok := ds.Row(1)
	require.True(t, ok)
	assert.True(t, row.Record.Equal(same))

	_, ok = ds.Row(3)
	assert.False(t, ok)
	_, ok = ds.Row(-1)
	assert.False(t, ok)
}

func TestDatasetIsolatedFromCaller(t *testing.T) {
	r := NewRecord(F("k", Int(1)))
	ds := NewDataset([]Record{r})
	r.Set("k", Int(99))

	v, _ := ds.Rows()[0].Record.Get("k")
	assert.Equal(t, Int(1), v)
}
