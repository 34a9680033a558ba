package oracle

import (
	"testing"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

func TestSatisfiesUint8IntegerSemantics(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{jsonsrc.Number("0"), true},
		{jsonsrc.Number("255"), true},
		{jsonsrc.Number("3.0"), true},
		{jsonsrc.Number("-1"), false},
		{jsonsrc.Number("256"), false},
		{jsonsrc.Number("3.5"), false},
		{"3", false},
		{true, false},
		{nil, false},
		{[]any{}, false},
		{&jsonsrc.Object{}, false},
	}
	for _, c := range cases {
		if got := Satisfies(ast.Uint8, c.value); got != c.want {
			t.Errorf("Satisfies(uint8, %#v) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestSatisfiesBooleanAndString(t *testing.T) {
	if !Satisfies(ast.Boolean, true) {
		t.Error("true should satisfy boolean")
	}
	if Satisfies(ast.Boolean, "true") {
		t.Error("string \"true\" should not satisfy boolean")
	}
	if !Satisfies(ast.String, "x") {
		t.Error("string should satisfy string")
	}
}

func TestIsTimestampValid(t *testing.T) {
	valid := []string{
		"2020-01-02T03:04:05Z",
		"2020-01-02T03:04:05.123Z",
		"2020-01-02T03:04:60Z",
		"2020-01-02T03:04:05+09:00",
	}
	for _, s := range valid {
		if !IsTimestamp(s) {
			t.Errorf("IsTimestamp(%q) = false, want true", s)
		}
	}
}

func TestIsTimestampInvalid(t *testing.T) {
	invalid := []string{
		"not a date",
		"2020-01-02",
		"2020-13-02T03:04:05Z",
		"2020-01-02T03:04:05",
	}
	for _, s := range invalid {
		if IsTimestamp(s) {
			t.Errorf("IsTimestamp(%q) = true, want false", s)
		}
	}
}

func TestSatisfiesFloatRejectsNonNumber(t *testing.T) {
	if Satisfies(ast.Float64, "1.0") {
		t.Error("string should not satisfy float64")
	}
	if !Satisfies(ast.Float64, jsonsrc.Number("1.0")) {
		t.Error("number should satisfy float64")
	}
}
