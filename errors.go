package jsonlogic

import (
	"fmt"

	"github.com/jsonlogic-go/jsonlogic/internal/value"
)

// Error taxonomy. Each member is a distinct struct implementing error
// so callers can discriminate with errors.As; none of them panic
// across a package boundary: parsing returns a (Parsed, error) pair
// and evaluation a (value.Value, error) pair, the way the teacher's
// JSON builders in json.go return (T, error) rather than throwing.

// InvalidOperationError reports an argument shape that is wrong for
// the named operator, independent of the values involved (e.g. a
// non-array argument list for an operator that doesn't accept the
// unary-scalar shortcut).
type InvalidOperationError struct {
	Key    string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %q: %s", e.Key, e.Reason)
}

// WrongArgumentCountError reports an arity violation caught at parse
// time.
type WrongArgumentCountError struct {
	Expected NumParams
	Actual   int
}

func (e *WrongArgumentCountError) Error() string {
	return fmt.Sprintf("wrong argument count: expected %s, got %d", e.Expected, e.Actual)
}

// InvalidArgumentError reports a runtime type or value an operator
// rejects (substr on a non-string, "+" on a non-numeric string, and
// so on).
type InvalidArgumentError struct {
	Value     value.Value
	Operation string
	Reason    string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument for %q: %s", e.Operation, e.Reason)
}

// InvalidVariableError reports an unusable "var"/"missing"/
// "missing_some" key (e.g. a key that is neither null, a string, nor
// a number).
type InvalidVariableError struct {
	Value  value.Value
	Reason string
}

func (e *InvalidVariableError) Error() string {
	return fmt.Sprintf("invalid variable: %s", e.Reason)
}

// InvalidVariableKeyError reports an unusable path segment within a
// "var" lookup (e.g. a non-integer index into an array).
type InvalidVariableKeyError struct {
	Value  value.Value
	Reason string
}

func (e *InvalidVariableKeyError) Error() string {
	return fmt.Sprintf("invalid variable key: %s", e.Reason)
}

// InvalidDataError reports a data shape incompatible with the
// operation being performed against it (e.g. "all"/"some"/"none" over
// a source that is neither array, string, nor null).
type InvalidDataError struct {
	Value  value.Value
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data: %s", e.Reason)
}

// UnexpectedError reports an internal invariant violation that should
// never occur for well-formed inputs.
type UnexpectedError struct {
	Message string
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %s", e.Message)
}
