package jsonlogic

// evaluator carries the per-call state threaded through a single
// Evaluate invocation: the effective options and the current
// recursion depth, used to reject pathologically nested rule trees
// before they exhaust the goroutine stack.
type evaluator struct {
	opts  EvalOptions
	depth int
}

func newEvaluator(opts EvalOptions) *evaluator {
	return &evaluator{opts: opts}
}

// Evaluate walks a Parsed tree against a data value, dispatching each
// node to the eager, lazy or data operator table it was classified
// into at parse time.
func (e *evaluator) Evaluate(parsed Parsed, data JsValue) (JsValue, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.opts.MaxDepth > 0 && e.depth > e.opts.MaxDepth {
		return nil, &UnexpectedError{Message: "maximum evaluation depth exceeded"}
	}

	switch node := parsed.(type) {
	case Raw:
		return node.Value, nil

	case Operation:
		op, ok := eagerOperators[node.Op]
		if !ok {
			return nil, &UnexpectedError{Message: "no eager operator registered for " + node.Op}
		}
		args, err := e.evalEach(node.Args, data)
		if err != nil {
			return nil, err
		}
		if l := e.opts.log(); l != nil {
			l.Handle(&LogMessage{Debug, LogOperatorDispatch, LogData{"op": node.Op}})
		}
		return op.fn(args)

	case LazyOperation:
		op, ok := lazyOperators[node.Op]
		if !ok {
			return nil, &UnexpectedError{Message: "no lazy operator registered for " + node.Op}
		}
		if l := e.opts.log(); l != nil {
			l.Handle(&LogMessage{Debug, LogOperatorDispatch, LogData{"op": node.Op}})
		}
		return op.fn(e, node.Args, data)

	case DataOperation:
		op, ok := dataOperators[node.Op]
		if !ok {
			return nil, &UnexpectedError{Message: "no data operator registered for " + node.Op}
		}
		return op.fn(e, data, node.Args)

	default:
		return nil, &UnexpectedError{Message: "unrecognised parsed node type"}
	}
}

// evalEach evaluates a list of already-parsed child nodes left to
// right against the same data value, stopping at the first error.
func (e *evaluator) evalEach(args []Parsed, data JsValue) ([]JsValue, error) {
	out := make([]JsValue, len(args))
	for i, a := range args {
		v, err := e.Evaluate(a, data)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalRaw parses and then evaluates one raw argument JSON value
// against data. Lazy operators (if, or, and, map, filter, reduce, ...)
// use this to decide themselves, one argument at a time, whether a
// given branch needs to be evaluated at all.
func (e *evaluator) evalRaw(raw JsValue, data JsValue) (JsValue, error) {
	parsed, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(parsed, data)
}

// Apply parses rule and evaluates it against data in one step, using
// default options.
func Apply(rule, data JsValue) (JsValue, error) {
	return ApplyWithOptions(rule, data)
}

// ApplyWithOptions is Apply with caller-supplied EvalOption overrides
// (a different MaxDepth, a call-scoped Logger, and so on).
func ApplyWithOptions(rule, data JsValue, opts ...EvalOption) (JsValue, error) {
	parsed, err := Parse(rule)
	if err != nil {
		return nil, err
	}
	return Evaluate(parsed, data, opts...)
}

// Evaluate walks an already-parsed rule tree against data. Parsing a
// rule once with Parse and calling Evaluate repeatedly against
// different data values avoids re-classifying the rule's shape on
// every call.
func Evaluate(parsed Parsed, data JsValue, opts ...EvalOption) (JsValue, error) {
	e := newEvaluator(newEvalOptions(opts...))
	return e.Evaluate(parsed, data)
}
