package de

import "testing"

func TestBaseVisitorRefusesEverything(t *testing.T) {
	b := BaseVisitor{Exp: "a widget"}
	if b.Expecting() != "a widget" {
		t.Errorf("Expecting = %q", b.Expecting())
	}
	tests := []struct {
		name string
		call func() (any, error)
		want string
	}{
		{"null", b.VisitNull, "invalid type: null, expected a widget"},
		{"bool", func() (any, error) { return b.VisitBool(true) }, "invalid type: boolean `true`, expected a widget"},
		{"int", func() (any, error) { return b.VisitInt64(-2) }, "invalid type: integer `-2`, expected a widget"},
		{"uint", func() (any, error) { return b.VisitUint64(2) }, "invalid type: integer `2`, expected a widget"},
		{"float", func() (any, error) { return b.VisitFloat64(0.5) }, "invalid type: floating point `0.5`, expected a widget"},
		{"string", func() (any, error) { return b.VisitString("s") }, `invalid type: string "s", expected a widget`},
		{"bytes", func() (any, error) { return b.VisitBytes(nil) }, "invalid type: byte array, expected a widget"},
		{"seq", func() (any, error) { return b.VisitSeq(nil) }, "invalid type: sequence, expected a widget"},
		{"map", func() (any, error) { return b.VisitMap(nil) }, "invalid type: map, expected a widget"},
		{"enum", func() (any, error) { return b.VisitEnum(nil) }, "invalid type: enum, expected a widget"},
	}
	for _, tt := range tests {
		out, err := tt.call()
		if out != nil {
			t.Errorf("%s: out = %v, want nil", tt.name, out)
		}
		if err == nil || err.Error() != tt.want {
			t.Errorf("%s: err = %v, want %q", tt.name, err, tt.want)
		}
	}
}

func TestDefaultExpectation(t *testing.T) {
	var b BaseVisitor
	if b.Expecting() != "a value" {
		t.Errorf("Expecting = %q", b.Expecting())
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&InvalidTypeError{Unexpected: "map", Expected: "a string"}, "invalid type: map, expected a string"},
		{&InvalidValueError{Unexpected: "map", Expected: "map with a single key"}, "invalid value: map, expected map with a single key"},
		{&InvalidLengthError{Len: 3, Expected: "a pair"}, "invalid length 3, expected a pair"},
		{&MissingValueError{}, "value is missing"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
