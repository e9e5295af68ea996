package jsonlogic

import "github.com/jsonlogic-go/jsonlogic/internal/value"

// registerArithmeticOperators wires +, -, *, /, %, min, max onto the
// coercion kernel. Per spec.md Design Note (ii), n-ary "+" and "*" use
// parseFloatFold (parse_float semantics, erroring on non-numeric
// input) rather than abstractPlus (which would silently concatenate
// strings) — abstractPlus is kept in coercion.go only as a documented
// primitive, not wired to any table entry.
func registerArithmeticOperators() {
	registerEager("+", npAny(), func(args []JsValue) (JsValue, error) {
		vals := make([]value.Value, len(args))
		copy(vals, args)
		return parseFloatFold(vals, 0, "+", func(acc, next float64) float64 { return acc + next })
	})

	registerEager("-", npVariadic(1, 3), func(args []JsValue) (JsValue, error) {
		if len(args) == 1 {
			n, ok := toNumber(args[0])
			if !ok {
				return nil, &InvalidArgumentError{Value: args[0], Operation: "-", Reason: "argument is not numeric"}
			}
			return value.Num(-n), nil
		}
		return abstractMinus(args[0], args[1])
	})

	registerEager("*", npAtLeast(1), func(args []JsValue) (JsValue, error) {
		vals := make([]value.Value, len(args))
		copy(vals, args)
		return parseFloatFold(vals, 1, "*", func(acc, next float64) float64 { return acc * next })
	})

	registerEager("/", npExactly(2), func(args []JsValue) (JsValue, error) {
		return abstractDiv(args[0], args[1])
	})

	registerEager("%", npExactly(2), func(args []JsValue) (JsValue, error) {
		return abstractMod(args[0], args[1])
	})

	registerEager("min", npAtLeast(1), func(args []JsValue) (JsValue, error) {
		vals := make([]value.Value, len(args))
		copy(vals, args)
		return abstractMin(vals)
	})

	registerEager("max", npAtLeast(1), func(args []JsValue) (JsValue, error) {
		vals := make([]value.Value, len(args))
		copy(vals, args)
		return abstractMax(vals)
	})
}
