package jsonlogic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonlogic-go/jsonlogic/internal/value"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name     string
		input    value.Value
		expected string
	}{
		{"Null", value.Null(), "null"},
		{"True", value.True(), "true"},
		{"False", value.False(), "false"},
		{"Integral number", value.Num(3), "3"},
		{"Fractional number", value.Num(3.5), "3.5"},
		{"String", value.Str("abc"), "abc"},
		{"Array with null elided", value.Arr(1, nil, 3), "1,,3"},
		{"Object", value.NewObj(), "[object Object]"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, toString(test.input))
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    value.Value
		expected float64
		ok       bool
	}{
		{"Null", value.Null(), 0, true},
		{"True", value.True(), 1, true},
		{"False", value.False(), 0, true},
		{"Number", value.Num(42), 42, true},
		{"Empty string", value.Str(""), 0, true},
		{"Numeric string", value.Str(" 42 "), 42, true},
		{"Non-numeric string", value.Str("abc"), 0, false},
		{"Single-element array", value.Arr(Num1()), 1, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			n, ok := toNumber(test.input)
			require.Equal(t, test.ok, ok)
			if ok {
				require.Equal(t, test.expected, n)
			}
		})
	}
}

func Num1() value.Value { return value.Num(1) }

func TestParseFloatJS(t *testing.T) {
	tests := []struct {
		name     string
		input    value.Value
		expected float64
		ok       bool
	}{
		{"Plain integer", value.Str("3"), 3, true},
		{"Leading whitespace", value.Str("  3.5abc"), 3.5, true},
		{"Trailing garbage stripped", value.Str("10px"), 10, true},
		{"Exponent", value.Str("1e2"), 100, true},
		{"Bare trailing exponent stripped", value.Str("1e"), 1, true},
		{"No digits", value.Str("abc"), 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, ok := parseFloatJS(test.input)
			require.Equal(t, test.ok, ok)
			if ok {
				require.Equal(t, test.expected, f)
			}
		})
	}
}

func TestAbstractEq(t *testing.T) {
	tests := []struct {
		name     string
		a, b     value.Value
		expected bool
	}{
		{"1 == \"1\"", value.Num(1), value.Str("1"), true},
		{"0 == false", value.Num(0), value.False(), true},
		{"null == null", value.Null(), value.Null(), true},
		{"null != 0", value.Null(), value.Num(0), false},
		{"[1] == \"1\"", value.Arr(1), value.Str("1"), true},
		{"objects never equal", value.NewObj(), value.NewObj(), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, abstractEq(test.a, test.b))
		})
	}
}

func TestStrictEq(t *testing.T) {
	require.True(t, strictEq(value.Num(1), value.Num(1)))
	require.False(t, strictEq(value.Num(1), value.Str("1")))
	require.False(t, strictEq(value.Arr(1), value.Arr(1)))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		input    value.Value
		expected bool
	}{
		{"Null", value.Null(), false},
		{"False", value.False(), false},
		{"True", value.True(), true},
		{"Zero", value.Num(0), false},
		{"Nonzero", value.Num(1), true},
		{"Empty string", value.Str(""), false},
		{"Nonempty string", value.Str("a"), true},
		{"Empty array", value.Arr(), false},
		{"Nonempty array", value.Arr(1), true},
		{"Empty object", value.NewObj(), true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, truthy(test.input))
		})
	}
}

func TestAbstractCompare(t *testing.T) {
	require.True(t, abstractLt(value.Num(1), value.Num(2)))
	require.True(t, abstractLt(value.Str("a"), value.Str("b")))
	require.False(t, abstractLt(value.Str("abc"), value.Num(1)))
	require.True(t, abstractGte(value.Num(2), value.Num(2)))
}

func TestParseFloatFold(t *testing.T) {
	sum, err := parseFloatFold([]value.Value{value.Num(1), value.Num(2), value.Num(3)}, 0, "+",
		func(acc, next float64) float64 { return acc + next })
	require.NoError(t, err)
	require.Equal(t, value.Num(6), sum)

	_, err = parseFloatFold([]value.Value{value.Str("abc")}, 0, "+",
		func(acc, next float64) float64 { return acc + next })
	require.Error(t, err)
}
