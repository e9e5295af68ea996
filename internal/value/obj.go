package value

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ObjValue is a JSON object with insertion order preserved, backed by
// an OrderedMap rather than a plain Go map. Order matters here in a
// way it doesn't for growthbook's condition matching: round-tripping a
// rule or data document through the engine unchanged depends on key
// order being exactly what the input JSON had.
type ObjValue struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewObj returns an empty, ready-to-use ObjValue.
func NewObj() ObjValue {
	return ObjValue{m: orderedmap.New[string, Value]()}
}

// Obj builds an ObjValue from a plain map. Go map iteration order is
// random, so the resulting key order is arbitrary; prefer FromJSON
// (json.go) when order matters, which it does for anything touching a
// rule or data document.
func Obj(args map[string]any) ObjValue {
	o := NewObj()
	for k, v := range args {
		o.Set(k, New(v))
	}
	return o
}

func (o ObjValue) Type() ValueType {
	return ObjType
}

func IsObj(v Value) bool {
	return v.Type() == ObjType
}

func (o ObjValue) Cast(t ValueType) Value {
	switch t {
	case BoolType:
		return True()
	case StrType:
		return Str("[object Object]")
	default:
		return Null()
	}
}

// Set inserts or updates a key, preserving its original position on
// update and appending on insert.
func (o ObjValue) Set(k string, v Value) {
	o.m.Set(k, v)
}

// Get returns the value for k and whether it was present.
func (o ObjValue) Get(k string) (Value, bool) {
	if o.m == nil {
		return nil, false
	}
	return o.m.Get(k)
}

// Delete removes k, if present.
func (o ObjValue) Delete(k string) {
	if o.m != nil {
		o.m.Delete(k)
	}
}

// Len returns the number of keys.
func (o ObjValue) Len() int {
	if o.m == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the object's keys in insertion order.
func (o ObjValue) Keys() []string {
	if o.m == nil {
		return nil
	}
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every key/value pair in insertion order, stopping
// early if fn returns false.
func (o ObjValue) Each(fn func(key string, val Value) bool) {
	if o.m == nil {
		return
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

func (o ObjValue) String() string {
	var sb strings.Builder
	sb.WriteString("[object Object]")
	return sb.String()
}
