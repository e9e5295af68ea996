package jsonlogic

import (
	"strings"

	"github.com/jsonlogic-go/jsonlogic/internal/value"
)

// registerStringOperators wires cat and substr.
func registerStringOperators() {
	registerEager("cat", npAny(), func(args []JsValue) (JsValue, error) {
		var sb strings.Builder
		for _, a := range args {
			sb.WriteString(toString(a))
		}
		return value.Str(sb.String()), nil
	})

	registerEager("substr", npVariadic(2, 4), func(args []JsValue) (JsValue, error) {
		return opSubstr(args)
	})
}

// opSubstr implements spec.md §4.6: indices are by Unicode scalar
// (rune), not byte; negative start counts from the end; an omitted
// extent runs to the end; a non-negative extent takes that many
// characters; a negative extent stops that many characters before the
// end. All offsets clamp into [0, len(runes)] rather than erroring.
func opSubstr(args []value.Value) (JsValue, error) {
	s, ok := args[0].(value.StrValue)
	if !ok {
		return nil, &InvalidArgumentError{Value: args[0], Operation: "substr", Reason: "first argument must be a string"}
	}
	start, ok := toInt(args[1])
	if !ok {
		return nil, &InvalidArgumentError{Value: args[1], Operation: "substr", Reason: "start index must be an integer"}
	}

	runes := []rune(string(s))
	n := len(runes)

	from := clampIndex(start, n)

	to := n
	if len(args) == 3 {
		extent, ok := toInt(args[2])
		if !ok {
			return nil, &InvalidArgumentError{Value: args[2], Operation: "substr", Reason: "extent must be an integer"}
		}
		if extent >= 0 {
			to = clampIndex(from+extent, n)
		} else {
			to = clampIndex(n+extent, n)
		}
	}

	if to < from {
		to = from
	}
	return value.Str(string(runes[from:to])), nil
}

// clampIndex resolves a possibly-negative index (counting from the
// end when negative) into [0, n].
func clampIndex(i, n int) int {
	if i < 0 {
		i = n + i
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// toInt accepts a Number that is integral (no fractional part) and
// returns it as an int.
func toInt(v value.Value) (int, bool) {
	num, ok := v.(value.NumValue)
	if !ok {
		return 0, false
	}
	f := float64(num)
	if f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
