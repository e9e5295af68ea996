package jsonlogic

import "github.com/jsonlogic-go/jsonlogic/internal/value"

// registerComparisonOperators wires ==, !=, ===, !==, !, !!, and the
// chained relational operators <, <=, >, >= onto the coercion
// kernel's abstractEq/strictEq/abstractLt family (coercion.go).
func registerComparisonOperators() {
	registerEager("==", npExactly(2), func(args []JsValue) (JsValue, error) {
		return value.Bool(abstractEq(args[0], args[1])), nil
	})
	registerEager("!=", npExactly(2), func(args []JsValue) (JsValue, error) {
		return value.Bool(!abstractEq(args[0], args[1])), nil
	})
	registerEager("===", npExactly(2), func(args []JsValue) (JsValue, error) {
		return value.Bool(strictEq(args[0], args[1])), nil
	})
	registerEager("!==", npExactly(2), func(args []JsValue) (JsValue, error) {
		return value.Bool(!strictEq(args[0], args[1])), nil
	})
	registerEager("!", npExactly(1), func(args []JsValue) (JsValue, error) {
		return value.Bool(!truthy(args[0])), nil
	})
	registerEager("!!", npExactly(1), func(args []JsValue) (JsValue, error) {
		return value.Bool(truthy(args[0])), nil
	})

	registerEager("<", npVariadic(2, 4), chainedCompare(abstractLt))
	registerEager("<=", npVariadic(2, 4), chainedCompare(abstractLte))
	registerEager(">", npVariadic(2, 4), chainedCompare(abstractGt))
	registerEager(">=", npVariadic(2, 4), chainedCompare(abstractGte))
}

// chainedCompare builds an eagerOperatorFn for a relational operator
// that accepts either 2 or 3 arguments (spec.md §4.6): with 3
// arguments a,b,c it returns cmp(a,b) && cmp(b,c); with 2 it's just
// cmp(a,b).
func chainedCompare(cmp func(a, b value.Value) bool) eagerOperatorFn {
	return func(args []JsValue) (JsValue, error) {
		if len(args) == 3 {
			return value.Bool(cmp(args[0], args[1]) && cmp(args[1], args[2])), nil
		}
		return value.Bool(cmp(args[0], args[1])), nil
	}
}
