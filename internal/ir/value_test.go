package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueSealed(t *testing.T) {
	// Verify all types implement Value (compile-time check via assignment)
	var _ Value = String("test")
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = Bool(true)
}

func TestValueKind(t *testing.T) {
	assert.Equal(t, KindString, String("a").Kind())
	assert.Equal(t, KindInt, Int(1).Kind())
	assert.Equal(t, KindFloat, Float(1).Kind())
	assert.Equal(t, KindBool, Bool(false).Kind())
	assert.Equal(t, "float", KindFloat.String())
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{String("California"), "California"},
		{Int(-39538219), "-39538219"},
		{Float(3.25), "3.25"},
		{Float(100), "100.0"},
		{Float(-0.5), "-0.5"},
		{Bool(true), "true"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestEqualStrictTyping(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same strings", String("South"), String("South"), true},
		{"case differs", String("South"), String("south"), false},
		{"int vs int", Int(7), Int(7), true},
		{"int vs float numeric", Int(100), Float(100.0), true},
		{"int vs float differs", Int(100), Float(100.5), false},
		{"string vs int", String("100"), Int(100), false},
		{"bool vs int", Bool(true), Int(1), false},
		{"bool vs string", Bool(true), String("true"), false},
		{"bools", Bool(false), Bool(false), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestCompareNumeric(t *testing.T) {
	assert.Equal(t, -1, CompareNumeric(Int(1), Int(2)))
	assert.Equal(t, 1, CompareNumeric(Int(3), Int(2)))
	assert.Equal(t, 0, CompareNumeric(Int(2), Float(2)))
	assert.Equal(t, -1, CompareNumeric(Float(1.5), Int(2)))
	assert.Equal(t, 1, CompareNumeric(Float(2.5), Float(2.25)))

	// Large ints compare exactly, not through float64
	assert.Equal(t, -1, CompareNumeric(Int(math.MaxInt64-1), Int(math.MaxInt64)))

	// NaN is unordered against everything
	assert.Equal(t, 2, CompareNumeric(Float(math.NaN()), Int(0)))
	assert.Equal(t, 2, CompareNumeric(Int(0), Float(math.NaN())))
}

func TestCompareNumericMixedIsExact(t *testing.T) {
	const big = 9007199254740993 // 2^53 + 1, not representable as float64

	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"int above rounded float", Int(big), Float(9007199254740992.0), 1},
		{"rounded float below int", Float(9007199254740992.0), Int(big), -1},
		{"exact integral float", Int(1 << 53), Float(1 << 53), 0},
		{"fraction above", Int(2), Float(2.5), -1},
		{"negative fraction", Int(-1), Float(-1.5), 1},
		{"float beyond int64", Int(math.MaxInt64), Float(math.Pow(2, 63)), -1},
		{"float below int64", Int(math.MinInt64), Float(-math.Pow(2, 64)), 1},
		{"min int64 exact", Int(math.MinInt64), Float(-math.Pow(2, 63)), 0},
		{"positive infinity", Int(math.MaxInt64), Float(math.Inf(1)), -1},
		{"negative infinity", Float(math.Inf(-1)), Int(math.MinInt64), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareNumeric(tt.a, tt.b))
		})
	}

	assert.False(t, Equal(Int(big), Float(9007199254740992.0)))
}

func TestCompareNumericPanicsOnNonNumeric(t *testing.T) {
	assert.Panics(t, func() {
		CompareNumeric(String("1"), Int(1))
	})
}
