package subtest

import (
	"reflect"

	ierrors "github.com/halyph/subtest/internal/errors"
)

// Op is one of the six relational operators, as a first-class value.
type Op int

const (
	EQ Op = iota
	NE
	LT
	LE
	GE
	GT
)

// String renders the operator the way it appears in a failure expansion.
func (o Op) String() string {
	switch o {
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GE:
		return ">="
	case GT:
		return ">"
	default:
		return "?"
	}
}

// Apply performs the direct relational comparison between two captured
// operands, the way the user's own operator would (operator resolution is
// the caller's responsibility; Apply only dispatches on runtime kind).
// Numeric operands are compared by value regardless of concrete type
// (int vs float64 compare equal at equal magnitude); anything else falls
// back to reflect.DeepEqual for EQ/NE. Ordering on non-numeric,
// non-string operands is a programmer error.
func Apply(op Op, a, b any) bool {
	switch op {
	case EQ:
		return equalValues(a, b)
	case NE:
		return !equalValues(a, b)
	case LT, LE, GE, GT:
		c, ok := compareOrdered(a, b)
		if !ok {
			ierrors.Programmer("cannot order operands of type %T and %T", a, b)
		}
		switch op {
		case LT:
			return c < 0
		case LE:
			return c <= 0
		case GE:
			return c >= 0
		default: // GT
			return c > 0
		}
	default:
		ierrors.Internal("unknown op %d", int(op))
		return false
	}
}

func equalValues(a, b any) bool {
	if af, aok := toFloat64(a); aok {
		if bf, bok := toFloat64(b); bok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

// compareOrdered returns -1/0/1 for a<b/a==b/a>b, and false if a and b
// cannot be ordered against each other.
func compareOrdered(a, b any) (int, bool) {
	if af, aok := toFloat64(a); aok {
		if bf, bok := toFloat64(b); bok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1, true
			case as > bs:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}

// toFloat64 coerces any of Go's numeric kinds to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
