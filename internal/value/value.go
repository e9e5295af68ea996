// Package value implements the tagged-union JSON value representation
// used throughout the engine: Null, Bool, Number, String, Array and
// (order-preserving) Object. Every concrete type satisfies Value and
// knows how to Cast itself to any other ValueType following the same
// coercion rules as the JS runtimes JsonLogic was originally written
// against.
package value

import (
	"fmt"
	"reflect"
)

// Value is the common interface implemented by every JSON value
// variant. Calculations are expected to follow JS casting rules so
// that rule documents authored against reference JsonLogic
// implementations evaluate identically here.
type Value interface {
	fmt.Stringer
	// Just to simplify type switches.
	Type() ValueType
	// Cast to other types, similar to JS.
	Cast(ValueType) Value
}

type ValueType int

const (
	NullType ValueType = iota
	BoolType
	NumType
	StrType
	ArrType
	ObjType
)

func (t ValueType) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "boolean"
	case NumType:
		return "number"
	case StrType:
		return "string"
	case ArrType:
		return "array"
	case ObjType:
		return "object"
	default:
		return "<unknown>"
	}
}

// New converts an arbitrary Go value into a Value. Used when building
// fixtures and test data; the engine's JSON ingestion path uses
// FromJSON (see json.go) instead, since it must preserve object key
// order, which a plain map[string]any cannot.
func New(a any) Value {
	if a == nil {
		return Null()
	}
	switch v := a.(type) {
	case Value:
		return v
	case map[string]any:
		return Obj(v)
	case []any:
		arr := make(ArrValue, len(v))
		for i, e := range v {
			arr[i] = New(e)
		}
		return arr
	default:
		return fromAny(a)
	}
}

func fromAny(a any) Value {
	ref := reflect.ValueOf(a)
	switch {
	case ref.CanFloat():
		return Num(ref.Float())
	case ref.CanInt():
		return Num(ref.Int())
	case ref.CanUint():
		return Num(ref.Uint())
	case ref.Kind() == reflect.Bool:
		return Bool(ref.Bool())
	case ref.Kind() == reflect.String:
		return Str(ref.String())
	default:
		return Null()
	}
}
