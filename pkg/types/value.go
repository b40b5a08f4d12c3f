package types

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
)

// String returns the kind name used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "(unknown)"
	}
}

// Value is a runtime value. Only the payload field matching Kind is meaningful.
// Location is where the value was produced: the literal, or the operator that
// computed it.
type Value struct {
	Kind     ValueKind
	Str      string
	Num      float64
	Bool     bool
	Location Location
}

// StringValue creates a string value.
func StringValue(s string, loc Location) Value {
	return Value{Kind: KindString, Str: s, Location: loc}
}

// NumberValue creates a number value.
func NumberValue(n float64, loc Location) Value {
	return Value{Kind: KindNumber, Num: n, Location: loc}
}

// BoolValue creates a boolean value.
func BoolValue(b bool, loc Location) Value {
	return Value{Kind: KindBool, Bool: b, Location: loc}
}

// NilValue creates nil.
func NilValue(loc Location) Value {
	return Value{Kind: KindNil, Location: loc}
}

// IsNil reports whether v is nil.
func (v Value) IsNil() bool {
	return v.Kind == KindNil
}

// Truthy reports whether v counts as true in a condition.
// Only false and nil are falsy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

// Equal compares two values. Values of different kinds are never equal.
// Locations are ignored.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindNumber:
		return v.Num == other.Num
	case KindString:
		return v.Str == other.Str
	default:
		return false
	}
}

// String renders the value the way print shows it.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return FormatNumber(v.Num)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "nil"
	}
}

// Describe renders the value for diagnostics, e.g. `string "abc"`.
func (v Value) Describe() string {
	switch v.Kind {
	case KindString:
		return fmt.Sprintf("string %q", v.Str)
	case KindNumber:
		return "number " + FormatNumber(v.Num)
	case KindBool:
		return "boolean " + strconv.FormatBool(v.Bool)
	default:
		return "nil"
	}
}

// WithLocation returns a copy of v located at loc.
func (v Value) WithLocation(loc Location) Value {
	v.Location = loc
	return v
}

// FormatNumber renders n in the shortest decimal form that parses back to n,
// never using an exponent: 2, 2.25, 0.1.
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
