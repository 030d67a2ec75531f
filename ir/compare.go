package ir

import (
	"cmp"
	"math"
	"strings"
)

// Equal reports whether a and b have the same kind and content.  Floats
// compare the way their literals do: -0 differs from 0 and NaN equals NaN.
func Equal(a, b *Value) bool {
	return Compare(a, b) == 0
}

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Values of different kinds order by kind.
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	}
	switch a.Kind {
	case StringKind:
		return strings.Compare(a.String, b.String)
	case IntKind:
		return cmp.Compare(a.Int, b.Int)
	case FloatKind:
		return compareFloats(a.Float, b.Float)
	case BoolKind:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case SequenceKind, TupleKind:
		return compareLists(a.Values, b.Values)
	case MappingKind:
		if c := compareLists(a.Fields, b.Fields); c != 0 {
			return c
		}
		return compareLists(a.Values, b.Values)
	}
	return 0
}

func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	if a == b {
		as, bs := math.Signbit(a), math.Signbit(b)
		switch {
		case as == bs:
			return 0
		case as:
			return -1
		default:
			return 1
		}
	}
	return cmp.Compare(a, b)
}

func compareLists(a, b []*Value) int {
	n := min(len(a), len(b))
	for i := range n {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
