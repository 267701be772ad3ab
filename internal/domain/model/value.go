package model

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMap
	KindSlice
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindSlice:
		return "slice"
	default:
		return "unknown"
	}
}

// Value is a schema-agnostic API payload: a tagged union over the JSON data
// model (string, number, bool, null, object, array). The cache stores Values
// without caring about their shape; callers decode to concrete types at the
// boundary.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  map[string]Value
	arr  []Value
}

// Null returns the null Value. The zero Value is also null.
func Null() Value { return Value{} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Map returns an object Value. The map is held by reference, not copied.
func Map(m map[string]Value) Value { return Value{kind: KindMap, obj: m} }

// Slice returns an array Value. The slice is held by reference, not copied.
func Slice(s []Value) Value { return Value{kind: KindSlice, arr: s} }

// Kind reports the concrete type held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v, or false if v is not a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the number held by v, or false if v is not a number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the bool held by v, or false if v is not a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsMap returns the object held by v, or false if v is not an object.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.obj, true
}

// AsSlice returns the array held by v, or false if v is not an array.
func (v Value) AsSlice() ([]Value, bool) {
	if v.kind != KindSlice {
		return nil, false
	}
	return v.arr, true
}

// Get looks up a key in an object Value.
// Returns false if v is not an object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	val, ok := v.obj[key]
	return val, ok
}

// Index returns the i-th element of an array Value.
// Returns false if v is not an array or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSlice || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// MarshalJSON encodes v using the standard JSON data model.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toAny())
}

// UnmarshalJSON decodes any JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseValue decodes a JSON document into a Value.
func ParseValue(data []byte) (Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}, fmt.Errorf("parse value: %w", err)
	}
	return v, nil
}

func (v Value) toAny() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindMap:
		m := make(map[string]any, len(v.obj))
		for k, val := range v.obj {
			m[k] = val.toAny()
		}
		return m
	case KindSlice:
		s := make([]any, len(v.arr))
		for i, val := range v.arr {
			s[i] = val.toAny()
		}
		return s
	default:
		return nil
	}
}

func fromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, val := range t {
			parsed, err := fromAny(val)
			if err != nil {
				return Value{}, err
			}
			m[k] = parsed
		}
		return Map(m), nil
	case []any:
		s := make([]Value, len(t))
		for i, val := range t {
			parsed, err := fromAny(val)
			if err != nil {
				return Value{}, err
			}
			s[i] = parsed
		}
		return Slice(s), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Equal reports deep equality of two Values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindMap:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, val := range v.obj {
			o, ok := other.obj[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	case KindSlice:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i, val := range v.arr {
			if !val.Equal(other.arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
