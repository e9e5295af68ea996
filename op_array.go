package jsonlogic

import "github.com/jsonlogic-go/jsonlogic/internal/value"

// registerArrayOperators wires merge, in (eager) and map, filter,
// reduce, all, some, none (lazy: each decides itself, per element,
// whether/when to evaluate its expression argument, which is what
// lets all/some/none short-circuit and lets map/filter/reduce
// bind a fresh inner-scope data value per element).
func registerArrayOperators() {
	registerEager("merge", npAny(), opMerge)
	registerEager("in", npExactly(2), opIn)

	registerLazy("map", npExactly(2), opMap)
	registerLazy("filter", npExactly(2), opFilter)
	registerLazy("reduce", npExactly(3), opReduce)
	registerLazy("all", npExactly(2), opAll)
	registerLazy("some", npExactly(2), opSome)
	registerLazy("none", npExactly(2), opNone)
}

// opMerge splices each array argument's elements into the result and
// pushes every non-array argument as a single element: one level of
// flattening only (spec.md §4.6).
func opMerge(args []value.Value) (JsValue, error) {
	out := value.ArrValue{}
	for _, a := range args {
		if arr, ok := a.(value.ArrValue); ok {
			out = append(out, arr...)
		} else {
			out = append(out, a)
		}
	}
	return out, nil
}

// opIn checks array membership by deep structural equality, or string
// containment when the haystack is a string; a null haystack is
// false, and an object haystack is an error (spec.md §9 Design Note
// (iv): unspecified by the reference tests, treated as an error here).
func opIn(args []value.Value) (JsValue, error) {
	needle, haystack := args[0], args[1]

	if value.IsNull(haystack) {
		return value.False(), nil
	}
	if arr, ok := haystack.(value.ArrValue); ok {
		for _, el := range arr {
			if deepEqual(needle, el) {
				return value.True(), nil
			}
		}
		return value.False(), nil
	}
	if hs, ok := haystack.(value.StrValue); ok {
		ns, ok := needle.(value.StrValue)
		if !ok {
			return nil, &InvalidArgumentError{Value: needle, Operation: "in", Reason: "needle must be a string when haystack is a string"}
		}
		return value.Bool(contains(string(hs), string(ns))), nil
	}
	return nil, &InvalidArgumentError{Value: haystack, Operation: "in", Reason: "haystack must be an array, string, or null"}
}

func contains(hs, ns string) bool {
	if ns == "" {
		return true
	}
	for i := 0; i+len(ns) <= len(hs); i++ {
		if hs[i:i+len(ns)] == ns {
			return true
		}
	}
	return false
}

// arrayOrEmpty is the source coercion map/filter/reduce use: array
// stays itself, null becomes an empty array, anything else is an
// error.
func arrayOrEmpty(v value.Value, op string) (value.ArrValue, error) {
	if value.IsNull(v) {
		return value.ArrValue{}, nil
	}
	arr, ok := v.(value.ArrValue)
	if !ok {
		return nil, &InvalidDataError{Value: v, Reason: op + " source must be an array or null"}
	}
	return arr, nil
}

// iterSource is the source coercion all/some/none use: array stays
// itself, string becomes a sequence of single-character strings, null
// becomes empty, anything else is an error.
func iterSource(v value.Value, op string) ([]value.Value, error) {
	if value.IsNull(v) {
		return nil, nil
	}
	if arr, ok := v.(value.ArrValue); ok {
		return []value.Value(arr), nil
	}
	if s, ok := v.(value.StrValue); ok {
		runes := []rune(string(s))
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.Str(string(r))
		}
		return out, nil
	}
	return nil, &InvalidDataError{Value: v, Reason: op + " source must be an array, string, or null"}
}

func opMap(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	source, err := e.evalRaw(rawArgs[0], data)
	if err != nil {
		return nil, err
	}
	arr, err := arrayOrEmpty(source, "map")
	if err != nil {
		return nil, err
	}
	expr, err := Parse(rawArgs[1])
	if err != nil {
		return nil, err
	}
	out := make(value.ArrValue, len(arr))
	for i, elem := range arr {
		v, err := e.Evaluate(expr, elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func opFilter(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	source, err := e.evalRaw(rawArgs[0], data)
	if err != nil {
		return nil, err
	}
	arr, err := arrayOrEmpty(source, "filter")
	if err != nil {
		return nil, err
	}
	pred, err := Parse(rawArgs[1])
	if err != nil {
		return nil, err
	}
	out := value.ArrValue{}
	for _, elem := range arr {
		keep, err := e.Evaluate(pred, elem)
		if err != nil {
			return nil, err
		}
		if truthy(keep) {
			out = append(out, elem)
		}
	}
	return out, nil
}

func opReduce(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	source, err := e.evalRaw(rawArgs[0], data)
	if err != nil {
		return nil, err
	}
	arr, err := arrayOrEmpty(source, "reduce")
	if err != nil {
		return nil, err
	}
	acc, err := e.evalRaw(rawArgs[2], data)
	if err != nil {
		return nil, err
	}
	expr, err := Parse(rawArgs[1])
	if err != nil {
		return nil, err
	}
	for _, elem := range arr {
		scope := value.NewObj()
		scope.Set("current", elem)
		scope.Set("accumulator", acc)
		acc, err = e.Evaluate(expr, scope)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func opAll(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	source, err := e.evalRaw(rawArgs[0], data)
	if err != nil {
		return nil, err
	}
	items, err := iterSource(source, "all")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return value.False(), nil
	}
	pred, err := Parse(rawArgs[1])
	if err != nil {
		return nil, err
	}
	for _, elem := range items {
		v, err := e.Evaluate(pred, elem)
		if err != nil {
			return nil, err
		}
		if !truthy(v) {
			return value.False(), nil
		}
	}
	return value.True(), nil
}

func opSome(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	source, err := e.evalRaw(rawArgs[0], data)
	if err != nil {
		return nil, err
	}
	items, err := iterSource(source, "some")
	if err != nil {
		return nil, err
	}
	pred, err := Parse(rawArgs[1])
	if err != nil {
		return nil, err
	}
	for _, elem := range items {
		v, err := e.Evaluate(pred, elem)
		if err != nil {
			return nil, err
		}
		if truthy(v) {
			return value.True(), nil
		}
	}
	return value.False(), nil
}

func opNone(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error) {
	result, err := opSome(e, rawArgs, data)
	if err != nil {
		return nil, err
	}
	return value.Bool(!truthy(result)), nil
}
