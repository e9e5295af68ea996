package jsonlogic

import (
	"math"
	"strconv"
	"strings"

	"github.com/jsonlogic-go/jsonlogic/internal/value"
)

// registerDataOperators wires var, missing, missing_some: the
// dotted-path data-access sublanguage (spec.md §4.7).
func registerDataOperators() {
	registerData("var", npVariadic(0, 3), opVar)
	registerData("missing", npAny(), opMissing)
	registerData("missing_some", npExactly(2), opMissingSome)
}

// opVar implements spec.md §4.7. No arguments, a null key, or an
// empty-string key all return data unchanged. A string key with no dot
// indexes once; a string key with one or more dots folds left over
// each segment. A number key indexes arrays/strings directly, or is
// converted to its decimal string form to key an object. Any failed
// step yields the default argument (default null); a non-integer
// number key used on an array or string is an InvalidVariableKeyError
// instead, and a key that is not null, a string, or a number is an
// InvalidVariableError.
//
// The default is evaluated lazily, only on an actual miss, exactly as
// original_source/src/op/data.rs::var does it
// (`Parsed::from_value(args[1])?.evaluate(&data)?` inside the
// not-found branch) — not eagerly up front. A present key must never
// pay for, or surface an error or side effect from, an unreached
// default expression.
func opVar(e *evaluator, data JsValue, args []Parsed) (JsValue, error) {
	if len(args) == 0 {
		return data, nil
	}
	key, err := e.Evaluate(args[0], data)
	if err != nil {
		return nil, err
	}

	v, found, err := locateVar(data, key)
	if err != nil {
		return nil, err
	}
	if found {
		return v, nil
	}
	if len(args) == 2 {
		return e.Evaluate(args[1], data)
	}
	return value.Null(), nil
}

// locateVar performs the dotted-path/numeric-key lookup itself, with
// no default handling: null/missing-default callers (missing,
// missing_some, and opVar's own not-found branch) all funnel through
// here.
func locateVar(data JsValue, key JsValue) (JsValue, bool, error) {
	if value.IsNull(key) {
		return data, true, nil
	}

	if s, ok := key.(value.StrValue); ok {
		if string(s) == "" {
			return data, true, nil
		}
		cur := data
		for _, seg := range strings.Split(string(s), ".") {
			next, found, err := lookupSegment(cur, seg)
			if err != nil {
				return nil, false, err
			}
			if !found {
				return nil, false, nil
			}
			cur = next
		}
		return cur, true, nil
	}

	if n, ok := key.(value.NumValue); ok {
		return lookupNumericKey(data, float64(n))
	}

	return nil, false, &InvalidVariableError{Value: key, Reason: "key must be null, a string, or a number"}
}

// varLookup resolves a single already-evaluated key against data with
// no default (null on miss) — the shape missing/missing_some need to
// probe presence.
func varLookup(data JsValue, key JsValue) (JsValue, error) {
	v, found, err := locateVar(data, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return value.Null(), nil
	}
	return v, nil
}

// lookupSegment resolves one dotted-path segment against cur: object
// keys look the segment up as a string directly; array/string
// segments must parse as an integer (with negative indices counting
// from the end) or the step fails. Any other current type fails the
// step.
func lookupSegment(cur value.Value, seg string) (value.Value, bool, error) {
	switch t := cur.(type) {
	case value.ObjValue:
		v, ok := t.Get(seg)
		return v, ok, nil
	case value.ArrValue:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, false, nil
		}
		v, ok := indexArr(t, idx)
		return v, ok, nil
	case value.StrValue:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, false, nil
		}
		v, ok := indexStr(string(t), idx)
		return v, ok, nil
	default:
		return nil, false, nil
	}
}

// lookupNumericKey handles a bare (non-dotted) numeric var key:
// arrays/strings are indexed directly; objects are keyed by the
// number's decimal string form.
func lookupNumericKey(cur value.Value, n float64) (value.Value, bool, error) {
	switch t := cur.(type) {
	case value.ObjValue:
		v, ok := t.Get(value.NumValue(n).String())
		return v, ok, nil
	case value.ArrValue:
		idx, ok := integralIndex(n)
		if !ok {
			return nil, false, &InvalidVariableKeyError{Value: value.Num(n), Reason: "array index must be an integer"}
		}
		v, ok := indexArr(t, idx)
		return v, ok, nil
	case value.StrValue:
		idx, ok := integralIndex(n)
		if !ok {
			return nil, false, &InvalidVariableKeyError{Value: value.Num(n), Reason: "string index must be an integer"}
		}
		v, ok := indexStr(string(t), idx)
		return v, ok, nil
	default:
		return nil, false, nil
	}
}

func integralIndex(n float64) (int, bool) {
	if n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}

// indexArr/indexStr support negative indices counting from the end
// uniformly for arrays and strings (spec.md §9 Design Note (i)):
// out-of-range, in either direction, is simply "not found".
func indexArr(arr value.ArrValue, idx int) (value.Value, bool) {
	n := len(arr)
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, false
	}
	return arr[idx], true
}

func indexStr(s string, idx int) (value.Value, bool) {
	runes := []rune(s)
	n := len(runes)
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, false
	}
	return value.Str(string(runes[idx])), true
}

// opMissing lists the keys, among those given, whose var lookup (no
// default) is absent. As a compatibility quirk matching
// original_source/src/op/data.rs::missing (`match args[0] {
// Value::Array(vals) => ...}`), whenever the *first* evaluated
// argument is itself an array, that array is unwrapped and used as the
// whole key list — regardless of how many other arguments were given —
// so missing(["a","b"]) and missing([["a","b"]]) behave identically.
// Null keys are skipped.
func opMissing(e *evaluator, data JsValue, args []Parsed) (JsValue, error) {
	evaluated, err := e.evalEach(args, data)
	if err != nil {
		return nil, err
	}

	keys := evaluated
	if len(evaluated) > 0 {
		if arr, ok := evaluated[0].(value.ArrValue); ok {
			keys = []JsValue(arr)
		}
	}

	out := value.ArrValue{}
	for _, k := range keys {
		if value.IsNull(k) {
			continue
		}
		v, err := varLookup(data, k)
		if err != nil {
			return nil, err
		}
		if value.IsNull(v) {
			out = append(out, k)
		}
	}
	return out, nil
}

// opMissingSome counts how many of keys are present in data; if at
// least threshold are present it returns an empty array, otherwise the
// missing ones, in input order and deduplicated.
func opMissingSome(e *evaluator, data JsValue, args []Parsed) (JsValue, error) {
	evaluated, err := e.evalEach(args, data)
	if err != nil {
		return nil, err
	}

	thresholdNum, ok := evaluated[0].(value.NumValue)
	threshold, isInt := integralIndex(float64(thresholdNum))
	if !ok || !isInt || threshold < 0 {
		return nil, &InvalidArgumentError{Value: evaluated[0], Operation: "missing_some", Reason: "threshold must be a non-negative integer"}
	}
	keysArr, ok := evaluated[1].(value.ArrValue)
	if !ok {
		return nil, &InvalidArgumentError{Value: evaluated[1], Operation: "missing_some", Reason: "keys must be an array"}
	}

	missingKeys := value.ArrValue{}
	seen := map[string]bool{}
	present := 0
	for _, k := range keysArr {
		v, err := varLookup(data, k)
		if err != nil {
			return nil, err
		}
		if value.IsNull(v) {
			ks := toString(k)
			if !seen[ks] {
				seen[ks] = true
				missingKeys = append(missingKeys, k)
			}
		} else {
			present++
		}
	}
	if present >= threshold {
		return value.ArrValue{}, nil
	}
	return missingKeys, nil
}
