package svcconfig

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind enumerates the JSON value kinds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON value. Numbers retain their original textual
// form so integer-vs-float distinctions and out-of-range values can be
// re-validated by each parser with its own semantics. The zero Value is
// JSON null.
type Value struct {
	kind Kind
	str  string // string value, or number text
	b    bool
	arr  []Value
	obj  *Object
}

// Object is an ordered string-keyed mapping. Keys are unique; insertion
// order is preserved and observable through Keys.
type Object struct {
	keys   []string
	fields map[string]Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a JSON number value from its textual form.
func Number(text string) Value { return Value{kind: KindNumber, str: text} }

// String returns a JSON string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns a JSON array value.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue wraps an Object as a Value.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Set binds key to v, replacing an existing binding without changing its
// position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns the value bound to key. The second result distinguishes a
// missing key from an explicit null value.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is an explicit JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsObject returns the object form; ok is false on kind mismatch. Type
// mismatches never panic here; callers decide whether a mismatch is an
// error or an expected absence.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsArray returns the array form; ok is false on kind mismatch.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsString returns the string form; ok is false on kind mismatch.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the number's original text; ok is false on kind mismatch.
func (v Value) AsNumber() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean form; ok is false on kind mismatch.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Int64 parses the number text as a base-10 integer. Numbers written with a
// fraction or exponent are rejected, mirroring the strictness required for
// integral config fields.
func (v Value) Int64() (int64, bool) {
	text, ok := v.AsNumber()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float64 parses the number text as a float.
func (v Value) Float64() (float64, bool) {
	text, ok := v.AsNumber()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// MarshalJSON renders the value back to JSON, preserving number text and
// object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	if err := v.appendJSON(&b); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func (v Value) appendJSON(b *strings.Builder) error {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		b.WriteString(v.str)
	case KindString:
		quoted, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		b.Write(quoted)
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := item.appendJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, key := range v.obj.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			quoted, err := json.Marshal(key)
			if err != nil {
				return err
			}
			b.Write(quoted)
			b.WriteByte(':')
			field, _ := v.obj.Get(key)
			if err := field.appendJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	}
	return nil
}
