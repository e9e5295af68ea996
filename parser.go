package jsonlogic

import "github.com/jsonlogic-go/jsonlogic/internal/value"

// Parsed is the tagged union the parser produces: Raw | Operation |
// LazyOperation | DataOperation (spec.md §3). Go has no sum types, so
// this is modeled as an interface with a private marker method, the
// same "closed tag dispatch, not virtual calls" idiom the teacher
// uses for internal/condition.Condition (one interface, a handful of
// concrete structs, a type switch at the point of use) — except here
// the dispatch lives in the evaluator, not in per-type Eval methods,
// because LazyOperation needs access to the evaluator itself to
// decide what to parse and when.
type Parsed interface {
	parsedNode()
}

// Raw is any value that is not a recognised operation; it evaluates
// to itself unchanged.
type Raw struct {
	Value JsValue
}

func (Raw) parsedNode() {}

// Operation is an eager operator call: arguments are parsed
// recursively at parse time and evaluated eagerly, left to right, at
// evaluation time, before the operator function runs.
type Operation struct {
	Op   string
	Args []Parsed
}

func (Operation) parsedNode() {}

// LazyOperation is a short-circuiting or iteration operator.
// Arguments are kept as raw JSON; the operator function decides when,
// and whether, to parse and evaluate each one.
type LazyOperation struct {
	Op   string
	Args []JsValue
}

func (LazyOperation) parsedNode() {}

// DataOperation is an operator that reads the top-level data value
// and evaluates its own parsed arguments (var, missing, missing_some);
// var evaluates its default argument only when the lookup misses.
type DataOperation struct {
	Op   string
	Args []Parsed
}

func (DataOperation) parsedNode() {}

// Parse classifies v and recursively parses its children where
// evaluation is eager. Parsing never evaluates and never reads a data
// value — data only enters at Evaluate time.
func Parse(v JsValue) (Parsed, error) {
	obj, isObj := v.(value.ObjValue)
	if !isObj || obj.Len() != 1 {
		// Invariant 2: zero-key or multi-key objects are always Raw,
		// even if a key coincides with an operator symbol.
		return Raw{Value: v}, nil
	}

	var key string
	var argVal JsValue
	obj.Each(func(k string, val JsValue) bool {
		key, argVal = k, val
		return false
	})

	// Classification order: data table, then lazy, then eager, then Raw.
	if op, ok := dataOperators[key]; ok {
		args, err := parseArgs(key, op.arity, argVal)
		if err != nil {
			return nil, err
		}
		parsedArgs, err := parseEach(args)
		if err != nil {
			return nil, err
		}
		return DataOperation{Op: key, Args: parsedArgs}, nil
	}
	if op, ok := lazyOperators[key]; ok {
		args, err := parseArgs(key, op.arity, argVal)
		if err != nil {
			return nil, err
		}
		return LazyOperation{Op: key, Args: args}, nil
	}
	if op, ok := eagerOperators[key]; ok {
		args, err := parseArgs(key, op.arity, argVal)
		if err != nil {
			return nil, err
		}
		parsedArgs, err := parseEach(args)
		if err != nil {
			return nil, err
		}
		return Operation{Op: key, Args: parsedArgs}, nil
	}
	return Raw{Value: v}, nil
}

// parseArgs normalises the operation's value into an argument list
// and checks arity: if the value is not an array and the operator
// accepts unary, it's wrapped as a one-element list; if it's not an
// array and unary isn't accepted, parsing fails with
// InvalidOperationError.
func parseArgs(key string, arity NumParams, argVal JsValue) ([]JsValue, error) {
	arr, isArr := argVal.(value.ArrValue)
	var args []JsValue
	if isArr {
		args = []JsValue(arr)
	} else {
		if !arity.canAcceptUnary() {
			return nil, &InvalidOperationError{
				Key:    key,
				Reason: "argument value is not an array and operator does not accept a unary scalar",
			}
		}
		args = []JsValue{argVal}
	}
	if !arity.isValidLen(len(args)) {
		return nil, &WrongArgumentCountError{Expected: arity, Actual: len(args)}
	}
	return args, nil
}

func parseEach(args []JsValue) ([]Parsed, error) {
	out := make([]Parsed, len(args))
	for i, a := range args {
		p, err := Parse(a)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
