package jsonlogic

import (
	"math"
	"strconv"
	"strings"

	"github.com/jsonlogic-go/jsonlogic/internal/value"
)

// This file is the JS coercion kernel: pure functions on value.Value
// implementing the subset of ECMA-262 abstract operations JsonLogic
// relies on. They are the sole source of truth for coercion and are
// tested independently of the parser/evaluator, mirroring how the
// teacher keeps internal/condition's comparison helpers
// (jsCompare, valueCompare) separate from parsing.

// toString is JS-compatible stringification.
func toString(v value.Value) string {
	if v == nil || value.IsNull(v) {
		return "null"
	}
	switch t := v.(type) {
	case value.BoolValue:
		return t.String()
	case value.NumValue:
		return t.String()
	case value.StrValue:
		return string(t)
	case value.ArrValue:
		return t.String()
	case value.ObjValue:
		return "[object Object]"
	default:
		return ""
	}
}

// toPrimitiveNumber returns (f, true) when v has a primitive numeric
// representation without going through toString first: Null is 0,
// Bool is 0/1, Number is itself. String/Array/Object have no such
// primitive and must fall back to str_to_number(to_string(v)).
func toPrimitiveNumber(v value.Value) (float64, bool) {
	if v == nil || value.IsNull(v) {
		return 0, true
	}
	switch t := v.(type) {
	case value.BoolValue:
		if t {
			return 1, true
		}
		return 0, true
	case value.NumValue:
		return float64(t), true
	default:
		return 0, false
	}
}

// strToNumber parses s the way the JS Number(string) constructor
// does: trimmed empty string is 0, otherwise the trimmed string must
// parse in full as a double.
func strToNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toNumber is ECMA ToNumber restricted to JSON types.
func toNumber(v value.Value) (float64, bool) {
	if f, ok := toPrimitiveNumber(v); ok {
		return f, true
	}
	return strToNumber(toString(v))
}

// parseFloatJS implements JS parseFloat semantics on to_string(v):
// trim leading whitespace, then take the longest prefix made of an
// optional sign, digits with at most one decimal point, and an
// optional exponent (e/E, optional sign, at least one digit); an e/E
// with no exponent digits after it is left out. The prefix is parsed
// as a double; a prefix with no digits yields false.
func parseFloatJS(v value.Value) (float64, bool) {
	s := strings.TrimLeft(toString(v), " \t\n\r\f\v")

	i := 0
	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	seenDigit := false
	seenDot := false
	for i < n {
		c := s[i]
		if c >= '0' && c <= '9' {
			seenDigit = true
			i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		break
	}
	if !seenDigit {
		return 0, false
	}

	// Optional exponent part: e/E [+-]? digits+. If no digit follows,
	// the "e"/"E" is not part of the number (a trailing bare e/E is
	// stripped, per spec.md's parse_float description).
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// abstractEq implements ECMA-262 7.2.14 restricted to JSON types.
func abstractEq(a, b value.Value) bool {
	at, bt := a.Type(), b.Type()

	if at == bt {
		return sameTypeEq(a, b)
	}
	// Bool -> Number then recurse, either side.
	if at == value.BoolType {
		return abstractEq(a.Cast(value.NumType), b)
	}
	if bt == value.BoolType {
		return abstractEq(a, b.Cast(value.NumType))
	}
	// Number <-> String via str_to_number.
	if at == value.NumType && bt == value.StrType {
		n, ok := strToNumber(string(b.(value.StrValue)))
		return ok && float64(a.(value.NumValue)) == n
	}
	if at == value.StrType && bt == value.NumType {
		n, ok := strToNumber(string(a.(value.StrValue)))
		return ok && n == float64(b.(value.NumValue))
	}
	// Number/String vs Object/Array compares against to_string(other).
	if (at == value.NumType || at == value.StrType) && (bt == value.ArrType || bt == value.ObjType) {
		return abstractEq(a, value.Str(toString(b)))
	}
	if (bt == value.NumType || bt == value.StrType) && (at == value.ArrType || at == value.ObjType) {
		return abstractEq(value.Str(toString(a)), b)
	}
	return false
}

func sameTypeEq(a, b value.Value) bool {
	switch at := a.(type) {
	case value.NullValue:
		return true
	case value.BoolValue:
		bb := b.(value.BoolValue)
		return at == bb
	case value.NumValue:
		bn := b.(value.NumValue)
		return at == bn
	case value.StrValue:
		bs := b.(value.StrValue)
		return at == bs
	case value.ArrValue:
		ba := b.(value.ArrValue)
		return deepEqualArr(at, ba)
	case value.ObjValue:
		// Objects never equal any other object (spec.md §4.1).
		return false
	default:
		return false
	}
}

func deepEqualArr(a, b value.ArrValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !deepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// deepEqual is strict structural JSON equality, used by the "in"
// operator's array-containment check and, through deepEqualArr, by
// abstractEq's same-type array comparison.
func deepEqual(a, b value.Value) bool {
	if value.IsNull(a) && value.IsNull(b) {
		return true
	}
	if a == nil || b == nil {
		return value.IsNull(a) && value.IsNull(b)
	}
	if a.Type() != b.Type() {
		return false
	}
	switch at := a.(type) {
	case value.NullValue:
		return true
	case value.BoolValue:
		return at == b.(value.BoolValue)
	case value.NumValue:
		return at == b.(value.NumValue)
	case value.StrValue:
		return at == b.(value.StrValue)
	case value.ArrValue:
		return deepEqualArr(at, b.(value.ArrValue))
	case value.ObjValue:
		bo := b.(value.ObjValue)
		if at.Len() != bo.Len() {
			return false
		}
		eq := true
		at.Each(func(k string, v value.Value) bool {
			bv, ok := bo.Get(k)
			if !ok || !deepEqual(v, bv) {
				eq = false
				return false
			}
			return true
		})
		return eq
	default:
		return false
	}
}

// strictEq is same-type, same-value comparison. Two distinct
// Object/Array values are never strictly equal (JsonLogic doesn't
// give us an identity/pointer concept the way the reference
// implementation's ptr::eq does, so this engine treats Array/Object
// as never strictly equal to anything but themselves by reference,
// which in a value-typed Go engine means: never, since a value.Value
// arriving here is always a distinct decode of the JSON text).
func strictEq(a, b value.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case value.ArrType, value.ObjType:
		return false
	default:
		return sameTypeEq(a, b)
	}
}

// toPrimitiveForCompare applies ToPrimitive(number hint) for
// abstract relational comparison: strings stay strings (so two
// strings can compare lexicographically), everything else is coerced
// through toNumber.
func toPrimitiveForCompare(v value.Value) (value.Value, bool) {
	if s, ok := v.(value.StrValue); ok {
		return s, true
	}
	n, ok := toNumber(v)
	if !ok {
		return nil, false
	}
	return value.Num(n), true
}

// abstractLt/Gt/Lte/Gte implement ECMA abstract relational comparison
// restricted to JSON types: ToPrimitive(number hint) both sides; two
// strings compare lexicographically; otherwise any remaining string is
// coerced via str_to_number; coercion failure behaves like JS's NaN
// comparison rule and yields false.
func abstractLt(a, b value.Value) bool {
	return abstractCompare(a, b, func(x, y float64) bool { return x < y }, func(x, y string) bool { return x < y })
}

func abstractGt(a, b value.Value) bool {
	return abstractCompare(a, b, func(x, y float64) bool { return x > y }, func(x, y string) bool { return x > y })
}

func abstractLte(a, b value.Value) bool {
	return abstractCompare(a, b, func(x, y float64) bool { return x <= y }, func(x, y string) bool { return x <= y })
}

func abstractGte(a, b value.Value) bool {
	return abstractCompare(a, b, func(x, y float64) bool { return x >= y }, func(x, y string) bool { return x >= y })
}

func abstractCompare(a, b value.Value, numCmp func(float64, float64) bool, strCmp func(string, string) bool) bool {
	pa, okA := toPrimitiveForCompare(a)
	pb, okB := toPrimitiveForCompare(b)
	if !okA || !okB {
		return false
	}
	sa, aIsStr := pa.(value.StrValue)
	sb, bIsStr := pb.(value.StrValue)
	if aIsStr && bIsStr {
		return strCmp(string(sa), string(sb))
	}
	na, okA := toNumber(pa)
	nb, okB := toNumber(pb)
	if !okA || !okB || math.IsNaN(na) || math.IsNaN(nb) {
		return false
	}
	return numCmp(na, nb)
}

// abstractPlus: if both sides have number primitives, add as doubles;
// otherwise concatenate to_string of each side. Not wired to any
// operator table entry: n-ary "+" uses parseFloatAdd instead (see
// DESIGN.md and spec.md Design Note (ii)); kept because the coercion
// kernel documents it as part of ECMA's abstract + regardless of
// whether the operator table currently uses it.
func abstractPlus(a, b value.Value) value.Value {
	na, okA := toPrimitiveNumber(a)
	nb, okB := toPrimitiveNumber(b)
	if okA && okB {
		return value.Num(na + nb)
	}
	return value.Str(toString(a) + toString(b))
}

// parseFloatFold folds parse_float over a sequence with an
// accumulator, short-circuiting on the first non-numeric item. Used
// to implement the authoritative n-ary "+" and "*".
func parseFloatFold(args []value.Value, identity float64, op string, combine func(acc, next float64) float64) (value.Value, error) {
	acc := identity
	for _, a := range args {
		f, ok := parseFloatJS(a)
		if !ok {
			return nil, &InvalidArgumentError{Value: a, Operation: op, Reason: "argument is not numeric"}
		}
		acc = combine(acc, f)
	}
	return value.Num(acc), nil
}

func abstractMinus(a, b value.Value) (value.Value, error) {
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if !okA || !okB {
		return nil, &InvalidArgumentError{Value: a, Operation: "-", Reason: "operand is not numeric"}
	}
	return value.Num(na - nb), nil
}

func abstractDiv(a, b value.Value) (value.Value, error) {
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if !okA || !okB {
		return nil, &InvalidArgumentError{Value: a, Operation: "/", Reason: "operand is not numeric"}
	}
	return value.Num(na / nb), nil
}

func abstractMod(a, b value.Value) (value.Value, error) {
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if !okA || !okB {
		return nil, &InvalidArgumentError{Value: a, Operation: "%", Reason: "operand is not numeric"}
	}
	return value.Num(math.Mod(na, nb)), nil
}

// abstractMin/Max fold to_number over inputs; the identities are +inf
// and -inf respectively, so an empty input returns the identity
// (callers enforcing "at least one argument" reject empty before this
// runs, per spec.md's arity table).
func abstractMin(args []value.Value) (value.Value, error) {
	acc := math.Inf(1)
	for _, a := range args {
		n, ok := toNumber(a)
		if !ok {
			return nil, &InvalidArgumentError{Value: a, Operation: "min", Reason: "argument is not numeric"}
		}
		if n < acc {
			acc = n
		}
	}
	return value.Num(acc), nil
}

func abstractMax(args []value.Value) (value.Value, error) {
	acc := math.Inf(-1)
	for _, a := range args {
		n, ok := toNumber(a)
		if !ok {
			return nil, &InvalidArgumentError{Value: a, Operation: "max", Reason: "argument is not numeric"}
		}
		if n > acc {
			acc = n
		}
	}
	return value.Num(acc), nil
}

// truthy is JsonLogic truthiness: Null/false/0/""/[] are falsey, every
// object (including {}) is truthy, non-empty strings/arrays and
// non-zero numbers are truthy. This differs from JS truthiness, where
// empty arrays and objects are both truthy.
func truthy(v value.Value) bool {
	if v == nil || value.IsNull(v) {
		return false
	}
	switch t := v.(type) {
	case value.BoolValue:
		return bool(t)
	case value.NumValue:
		return float64(t) != 0
	case value.StrValue:
		return string(t) != ""
	case value.ArrValue:
		return len(t) != 0
	case value.ObjValue:
		return true
	default:
		return false
	}
}
