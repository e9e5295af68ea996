package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// FromJSON decodes a single JSON document into a Value tree, keeping
// object key order exactly as encountered in the input. encoding/json
// would happily decode an object into a map[string]any, but Go map
// iteration order is randomized, which would silently break any rule
// or data document that round-trips through the engine unchanged
// (spec requires raw passthrough to be order-preserving). Decoding is
// therefore done by hand over a token stream rather than through
// json.Unmarshal into a generic any.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseJSON is a convenience wrapper over FromJSON for string input.
func ParseJSON(s string) (Value, error) {
	return FromJSON([]byte(s))
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("value: unexpected delimiter %q", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("value: invalid number %q: %w", t, err)
		}
		return Num(f), nil
	case string:
		return Str(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("value: unexpected token %#v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObj()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("value: object key is not a string: %#v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := ArrValue{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// ToJSON encodes a Value tree back to JSON, preserving ObjValue key
// order.
func ToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w io.Writer, v Value) error {
	if v == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	switch t := v.(type) {
	case NullValue:
		_, err := io.WriteString(w, "null")
		return err
	case BoolValue:
		if t {
			_, err := io.WriteString(w, "true")
			return err
		}
		_, err := io.WriteString(w, "false")
		return err
	case NumValue:
		enc, err := json.Marshal(float64(t))
		if err != nil {
			return err
		}
		_, err = w.Write(enc)
		return err
	case StrValue:
		enc, err := json.Marshal(string(t))
		if err != nil {
			return err
		}
		_, err = w.Write(enc)
		return err
	case ArrValue:
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		for i, e := range t {
			if i > 0 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if err := writeJSON(w, e); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]")
		return err
	case ObjValue:
		if _, err := io.WriteString(w, "{"); err != nil {
			return err
		}
		first := true
		var outerErr error
		t.Each(func(key string, val Value) bool {
			if !first {
				if _, err := io.WriteString(w, ","); err != nil {
					outerErr = err
					return false
				}
			}
			first = false
			keyJSON, err := json.Marshal(key)
			if err != nil {
				outerErr = err
				return false
			}
			if _, err := w.Write(keyJSON); err != nil {
				outerErr = err
				return false
			}
			if _, err := io.WriteString(w, ":"); err != nil {
				outerErr = err
				return false
			}
			if err := writeJSON(w, val); err != nil {
				outerErr = err
				return false
			}
			return true
		})
		if outerErr != nil {
			return outerErr
		}
		_, err := io.WriteString(w, "}")
		return err
	default:
		return fmt.Errorf("value: unknown Value type %T", v)
	}
}
