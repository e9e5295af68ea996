package jsonlogic

import "fmt"

// NumParams is an operator's arity constraint, checked at parse time.
// Modeled directly on the original engine's NumParams enum: a closed
// set of shapes rather than a raw (min, max) pair, so a table entry
// reads the same way the table in spec.md §4.2 does.
type NumParams struct {
	kind numParamsKind
	n    int
	lo   int
	hi   int // exclusive
}

type numParamsKind int

const (
	numParamsNone numParamsKind = iota
	numParamsAny
	numParamsUnary
	numParamsExactly
	numParamsAtLeast
	numParamsVariadic
)

func npNone() NumParams           { return NumParams{kind: numParamsNone} }
func npAny() NumParams            { return NumParams{kind: numParamsAny} }
func npUnary() NumParams          { return NumParams{kind: numParamsUnary} }
func npExactly(n int) NumParams   { return NumParams{kind: numParamsExactly, n: n} }
func npAtLeast(n int) NumParams   { return NumParams{kind: numParamsAtLeast, n: n} }
func npVariadic(lo, hi int) NumParams {
	return NumParams{kind: numParamsVariadic, lo: lo, hi: hi}
}

func (p NumParams) isValidLen(n int) bool {
	switch p.kind {
	case numParamsNone:
		return n == 0
	case numParamsAny:
		return true
	case numParamsUnary:
		return n == 1
	case numParamsExactly:
		return n == p.n
	case numParamsAtLeast:
		return n >= p.n
	case numParamsVariadic:
		return n >= p.lo && n < p.hi
	default:
		return false
	}
}

// canAcceptUnary reports whether a single non-array scalar argument
// may stand in for a one-element argument list (spec.md §3 invariant
// 4 / §4.3).
func (p NumParams) canAcceptUnary() bool {
	switch p.kind {
	case numParamsNone:
		return false
	case numParamsAny:
		return true
	case numParamsUnary:
		return true
	case numParamsExactly:
		return p.n == 1
	case numParamsAtLeast:
		return p.n <= 1
	case numParamsVariadic:
		return p.lo <= 1 && 1 < p.hi
	default:
		return false
	}
}

func (p NumParams) String() string {
	switch p.kind {
	case numParamsNone:
		return "0"
	case numParamsAny:
		return "any"
	case numParamsUnary:
		return "1"
	case numParamsExactly:
		return fmt.Sprintf("exactly %d", p.n)
	case numParamsAtLeast:
		return fmt.Sprintf("at least %d", p.n)
	case numParamsVariadic:
		return fmt.Sprintf("%d..%d", p.lo, p.hi-1)
	default:
		return "?"
	}
}

// eagerOperatorFn receives already-evaluated argument values.
type eagerOperatorFn func(args []JsValue) (JsValue, error)

// lazyOperatorFn receives the raw (unparsed) argument JSON values
// plus the outer data value, and decides itself when/whether to parse
// and evaluate each one, left to right.
type lazyOperatorFn func(e *evaluator, rawArgs []JsValue, data JsValue) (JsValue, error)

// dataOperatorFn receives the evaluator, the top-level data value, and
// its arguments still unevaluated. Most data operators (missing,
// missing_some) evaluate every argument immediately, the same as an
// eager operator would; var is the exception, evaluating its default
// argument only when a lookup actually misses, so the table shape
// gives every data operator the choice rather than forcing it.
type dataOperatorFn func(e *evaluator, data JsValue, args []Parsed) (JsValue, error)

type eagerOperator struct {
	symbol string
	fn     eagerOperatorFn
	arity  NumParams
}

type lazyOperator struct {
	symbol string
	fn     lazyOperatorFn
	arity  NumParams
}

type dataOperator struct {
	symbol string
	fn     dataOperatorFn
	arity  NumParams
}

// Three closed, compile-time tables keyed by operator symbol. No
// runtime registration: adding an operator is one table entry plus
// one function, per spec.md Design Notes.
var eagerOperators = map[string]eagerOperator{}
var lazyOperators = map[string]lazyOperator{}
var dataOperators = map[string]dataOperator{}

func registerEager(symbol string, arity NumParams, fn eagerOperatorFn) {
	if _, dup := lazyOperators[symbol]; dup {
		panic("jsonlogic: duplicate operator symbol across tables: " + symbol)
	}
	if _, dup := dataOperators[symbol]; dup {
		panic("jsonlogic: duplicate operator symbol across tables: " + symbol)
	}
	eagerOperators[symbol] = eagerOperator{symbol: symbol, fn: fn, arity: arity}
}

func registerLazy(symbol string, arity NumParams, fn lazyOperatorFn) {
	if _, dup := eagerOperators[symbol]; dup {
		panic("jsonlogic: duplicate operator symbol across tables: " + symbol)
	}
	if _, dup := dataOperators[symbol]; dup {
		panic("jsonlogic: duplicate operator symbol across tables: " + symbol)
	}
	lazyOperators[symbol] = lazyOperator{symbol: symbol, fn: fn, arity: arity}
}

func registerData(symbol string, arity NumParams, fn dataOperatorFn) {
	if _, dup := eagerOperators[symbol]; dup {
		panic("jsonlogic: duplicate operator symbol across tables: " + symbol)
	}
	if _, dup := lazyOperators[symbol]; dup {
		panic("jsonlogic: duplicate operator symbol across tables: " + symbol)
	}
	dataOperators[symbol] = dataOperator{symbol: symbol, fn: fn, arity: arity}
}

func init() {
	registerComparisonOperators()
	registerArithmeticOperators()
	registerArrayOperators()
	registerStringOperators()
	registerLogicOperators()
	registerDataOperators()
	registerImpureOperators()
}
