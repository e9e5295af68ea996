package jsonlogic

// defaultMaxDepth bounds recursive Evaluate calls so a pathologically
// nested rule document fails with an error instead of overflowing the
// goroutine stack.
const defaultMaxDepth = 1000

// EvalOptions configures a single Evaluate/Apply call. Options built
// for ApplyWithOptions/Evaluate start from MaxDepth = defaultMaxDepth
// and a nil Logger. A nil Logger falls back to the package-level
// logger installed via SetLogger; a MaxDepth of zero or less disables
// the depth limit.
//
// Modeled on the teacher's functional-options idiom (client_option.go's
// ClientOption func(*Client) error) rather than its older builder
// pattern (context.go's Options/defaults/clone): options here compose
// by running a slice of EvalOption functions over a struct, which
// reads better at a two-or-three-option call site than a struct
// literal with named fields would.
type EvalOptions struct {
	MaxDepth int
	Logger   Logger
}

// EvalOption mutates an EvalOptions during construction.
type EvalOption func(*EvalOptions)

// WithMaxDepth overrides the recursion depth limit for one Evaluate
// call.
func WithMaxDepth(n int) EvalOption {
	return func(o *EvalOptions) {
		o.MaxDepth = n
	}
}

// WithLogger overrides the logger for one Evaluate call, independent
// of the package-level logger installed via SetLogger.
func WithLogger(l Logger) EvalOption {
	return func(o *EvalOptions) {
		o.Logger = l
	}
}

// newEvalOptions builds an EvalOptions from a list of EvalOption
// functions, applying defaults for anything left unset.
func newEvalOptions(opts ...EvalOption) EvalOptions {
	o := EvalOptions{MaxDepth: defaultMaxDepth}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o EvalOptions) log() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger
}
