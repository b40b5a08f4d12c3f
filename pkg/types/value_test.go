package types

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	var loc Location
	tests := []struct {
		value Value
		want  bool
	}{
		{NilValue(loc), false},
		{BoolValue(false, loc), false},
		{BoolValue(true, loc), true},
		{NumberValue(0, loc), true},
		{NumberValue(math.NaN(), loc), true},
		{StringValue("", loc), true},
		{StringValue("false", loc), true},
	}
	for _, tt := range tests {
		if got := tt.value.Truthy(); got != tt.want {
			t.Errorf("%s.Truthy() = %v, want %v", tt.value.Describe(), got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := NewLocation(1, 1)
	b := NewLocation(5, 9)
	tests := []struct {
		x, y Value
		want bool
	}{
		{NilValue(a), NilValue(b), true},
		{NumberValue(1, a), NumberValue(1, b), true},
		{NumberValue(1, a), NumberValue(2, a), false},
		{NumberValue(math.NaN(), a), NumberValue(math.NaN(), a), false},
		{StringValue("1", a), NumberValue(1, a), false},
		{StringValue("ab", a), StringValue("ab", b), true},
		{BoolValue(false, a), NilValue(a), false},
		{BoolValue(true, a), BoolValue(true, b), true},
	}
	for _, tt := range tests {
		if got := tt.x.Equal(tt.y); got != tt.want {
			t.Errorf("%s == %s: got %v, want %v", tt.x.Describe(), tt.y.Describe(), got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	var loc Location
	tests := []struct {
		value    Value
		str      string
		describe string
	}{
		{StringValue(`a "b"`, loc), `a "b"`, `string "a \"b\""`},
		{NumberValue(7, loc), "7", "number 7"},
		{NumberValue(-0.5, loc), "-0.5", "number -0.5"},
		{BoolValue(true, loc), "true", "boolean true"},
		{NilValue(loc), "nil", "nil"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.value.Describe(); got != tt.describe {
			t.Errorf("Describe() = %q, want %q", got, tt.describe)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{2, "2"},
		{2.25, "2.25"},
		{0.1, "0.1"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1e21, "1000000000000000000000"},
		{1e-7, "0.0000001"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestValueKindString(t *testing.T) {
	kinds := map[ValueKind]string{
		KindNil:       "nil",
		KindBool:      "boolean",
		KindNumber:    "number",
		KindString:    "string",
		ValueKind(99): "(unknown)",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}

func TestWithLocation(t *testing.T) {
	v := NumberValue(1, NewLocation(1, 1))
	moved := v.WithLocation(NewLocation(2, 3))
	if moved.Location != NewLocation(2, 3) || v.Location != NewLocation(1, 1) {
		t.Errorf("WithLocation changed the wrong value: %v %v", v.Location, moved.Location)
	}
}

func TestLocation(t *testing.T) {
	if s := NewLocation(3, 14).String(); s != "3:14" {
		t.Errorf("String() = %q", s)
	}
	if !(Location{}).IsZero() || NewLocation(1, 1).IsZero() {
		t.Error("IsZero")
	}
	if !NewLocation(1, 9).Before(NewLocation(2, 1)) || !NewLocation(2, 1).Before(NewLocation(2, 2)) {
		t.Error("Before should order by line, then column")
	}
	if NewLocation(2, 2).Before(NewLocation(2, 2)) {
		t.Error("Before is strict")
	}
}
