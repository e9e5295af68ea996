package jsonlogic

import "github.com/jsonlogic-go/jsonlogic/internal/value"

// registerLogicOperators wires if/?: and the short-circuiting or/and.
// All three are lazy: unreached branches are never parsed or
// evaluated, so an error inside one never surfaces (spec.md §7,
// "Short-circuit purity").
func registerLogicOperators() {
	registerLazy("if", npAny(), opIf)
	registerLazy("?:", npAny(), opIf)
	registerLazy("or", npAtLeast(1), opOr)
	registerLazy("and", npAtLeast(1), opAnd)
}

// opIf implements spec.md §4.5: args are [c1, t1, c2, t2, ..., cN, tN,
// default?]. Zero args -> null. One arg -> evaluate and return it (not
// treated as a condition). Otherwise evaluate conditions in order,
// returning the first branch whose condition is truthy; a trailing odd
// argument is the default returned when nothing matched.
func opIf(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	switch len(rawArgs) {
	case 0:
		return value.Null(), nil
	case 1:
		return e.evalRaw(rawArgs[0], data)
	}
	i := 0
	for i+1 < len(rawArgs) {
		cond, err := e.evalRaw(rawArgs[i], data)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return e.evalRaw(rawArgs[i+1], data)
		}
		i += 2
	}
	if i < len(rawArgs) {
		return e.evalRaw(rawArgs[i], data)
	}
	return value.Null(), nil
}

// opOr evaluates left to right and returns the first truthy value as
// evaluated (no coercion to Bool); if none is truthy, returns the last
// evaluated value.
func opOr(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	var last JsValue = value.Null()
	for _, raw := range rawArgs {
		v, err := e.evalRaw(raw, data)
		if err != nil {
			return nil, err
		}
		last = v
		if truthy(v) {
			return v, nil
		}
	}
	return last, nil
}

// opAnd is symmetric: returns the first falsey value, else the last.
func opAnd(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	var last JsValue = value.Null()
	for _, raw := range rawArgs {
		v, err := e.evalRaw(raw, data)
		if err != nil {
			return nil, err
		}
		last = v
		if !truthy(v) {
			return v, nil
		}
	}
	return last, nil
}
