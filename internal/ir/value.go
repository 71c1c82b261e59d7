package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a sealed interface representing a scalar field value.
// Only String, Int, Float, and Bool implement this.
type Value interface {
	irValue() // Sealed - only these types implement it

	// Kind reports which variant of the union the value holds.
	Kind() Kind

	// String renders the value for display.
	String() string
}

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// String represents a string value.
type String string

func (String) irValue()         {}
func (String) Kind() Kind       { return KindString }
func (s String) String() string { return string(s) }

// Int represents an integer value.
type Int int64

func (Int) irValue()         {}
func (Int) Kind() Kind       { return KindInt }
func (n Int) String() string { return strconv.FormatInt(int64(n), 10) }

// Float represents a floating-point value.
// Integral floats render with a trailing ".0" so they stay visually distinct from Int.
type Float float64

func (Float) irValue()   {}
func (Float) Kind() Kind { return KindFloat }
func (f Float) String() string {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Bool represents a boolean value.
type Bool bool

func (Bool) irValue()         {}
func (Bool) Kind() Kind       { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// IsNumeric reports whether v is an Int or a Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	default:
		return false
	}
}

// Equal compares two values with strict typing: values of different kinds
// are never equal, except Int and Float which compare numerically.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		return CompareNumeric(a, b) == 0
	}
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	default:
		return false
	}
}

// CompareNumeric orders two numeric values, returning -1, 0 or 1.
// Comparisons are exact: Ints beyond 2^53 are not rounded through float64
// when compared against a Float.
// NaN compares as unordered and yields 2 so that no ordering test succeeds.
// It panics if either argument is not numeric.
func CompareNumeric(a, b Value) int {
	ai, aInt := a.(Int)
	bi, bInt := b.(Int)
	switch {
	case aInt && bInt:
		return compareInts(int64(ai), int64(bi))
	case aInt:
		return compareIntFloat(int64(ai), toFloat(b))
	case bInt:
		if c := compareIntFloat(int64(bi), toFloat(a)); c != 2 {
			return -c
		}
		return 2
	}

	af, bf := toFloat(a), toFloat(b)
	switch {
	case math.IsNaN(af) || math.IsNaN(bf):
		return 2
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// twoTo63 is 2^63, the first float64 above every int64.
const twoTo63 = float64(1 << 63)

// compareIntFloat orders i against f without converting i to float64.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 2
	case f >= twoTo63:
		return -1
	case f < -twoTo63:
		return 1
	}

	whole := math.Trunc(f)
	if c := compareInts(i, int64(whole)); c != 0 {
		return c
	}
	switch {
	case f > whole:
		return -1
	case f < whole:
		return 1
	default:
		return 0
	}
}

func toFloat(v Value) float64 {
	switch n := v.(type) {
	case Int:
		return float64(n)
	case Float:
		return float64(n)
	default:
		panic(fmt.Sprintf("ir: non-numeric value %T in numeric comparison", v))
	}
}
