package jsonlogic

import "github.com/jsonlogic-go/jsonlogic/internal/value"

// JsValue is the tagged-union JSON value type used throughout the
// engine: Null | Bool | Number | String | Array | Object, with object
// key order preserved. It is an alias for internal/value.Value so
// that package jsonlogic's public surface (Apply, Parse, Evaluate)
// speaks in terms of a single, simple type rather than forcing
// callers to import an internal package.
type JsValue = value.Value

// FromJSON decodes a JSON document into a JsValue, preserving object
// key order.
func FromJSON(data []byte) (JsValue, error) {
	return value.FromJSON(data)
}

// ParseJSONValue decodes a JSON string into a JsValue. Named
// ParseJSONValue (not ParseJSON) to avoid colliding with Parse, the
// rule-to-Parsed-tree entry point.
func ParseJSONValue(s string) (JsValue, error) {
	return value.ParseJSON(s)
}

// ToJSON encodes a JsValue back to JSON, preserving object key order.
func ToJSON(v JsValue) ([]byte, error) {
	return value.ToJSON(v)
}
