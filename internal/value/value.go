// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

// Package value implements the tagged dynamic value used as the payload
// of a forwarded record: a closed set of bool/int/uint/float/string/
// array/object variants, constructible from host-native Go types.
package value

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
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

// Value is a tagged union over the variants a forwarded record's
// payload can carry. The zero Value is KindBool(false).
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	arr  []Value
	obj  *Map
}

// Bool constructs a Value holding a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs a Value holding a signed 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Uint constructs a Value holding an unsigned 64-bit integer.
func Uint(u uint64) Value { return Value{kind: KindUint, u: u} }

// Float constructs a Value holding a 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str constructs a Value holding a UTF-8 string.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Array constructs a Value holding an ordered sequence of Values.
func Array(vs []Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KindArray, arr: cp}
}

// Object constructs a Value wrapping a Map.
func Object(m *Map) Value { return Value{kind: KindObject, obj: m} }

// Widening constructors from host-native numeric/string types. All are
// total and lossless; no narrowing conversion is defined.
func FromInt32(v int32) Value   { return Int(int64(v)) }
func FromInt64(v int64) Value   { return Int(v) }
func FromUint32(v uint32) Value { return Uint(uint64(v)) }
func FromUint64(v uint64) Value { return Uint(v) }
func FromFloat32(v float32) Value { return Float(float64(v)) }
func FromFloat64(v float64) Value { return Float(v) }
func FromString(v string) Value   { return Str(v) }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload and whether v is KindBool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the signed integer payload and whether v is KindInt.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsUint returns the unsigned integer payload and whether v is KindUint.
func (v Value) AsUint() (uint64, bool) { return v.u, v.kind == KindUint }

// AsFloat returns the float payload and whether v is KindFloat.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string payload and whether v is KindString.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the array payload and whether v is KindArray.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the object payload and whether v is KindObject.
func (v Value) AsObject() (*Map, bool) { return v.obj, v.kind == KindObject }

// Equal reports whether v and other are structurally identical.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindUint:
		return v.u == other.u
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	default:
		return false
	}
}

// String renders v in a canonical, debug-friendly form.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("Bool(%v)", v.b)
	case KindInt:
		return fmt.Sprintf("Int(%d)", v.i)
	case KindUint:
		return fmt.Sprintf("UInt(%d)", v.u)
	case KindFloat:
		return fmt.Sprintf("Float(%v)", v.f)
	case KindString:
		return fmt.Sprintf("Str(%q)", v.s)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "Array[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		return "Object" + v.obj.String()
	default:
		return "Invalid"
	}
}

// FromGo converts a host-native Go value into a Value. Supported inputs:
// bool, the signed/unsigned/float numeric kinds, string, []any,
// map[string]any, *Map, and Value itself. Any other type is an error —
// no narrowing or reflection-based guessing is performed.
func FromGo(in any) (Value, error) {
	switch x := in.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Uint(uint64(x)), nil
	case uint8:
		return Uint(uint64(x)), nil
	case uint16:
		return Uint(uint64(x)), nil
	case uint32:
		return Uint(uint64(x)), nil
	case uint64:
		return Uint(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Str(x), nil
	case *Map:
		return Object(x), nil
	case []any:
		vs := make([]Value, len(x))
		for i, e := range x {
			cv, err := FromGo(e)
			if err != nil {
				return Value{}, fmt.Errorf("value: array element %d: %w", i, err)
			}
			vs[i] = cv
		}
		return Array(vs), nil
	case map[string]any:
		m, err := FromGoMap(x)
		if err != nil {
			return Value{}, err
		}
		return Object(m), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported host type %T", in)
	}
}

// FromGoMap bulk-constructs a Map from a host mapping, converting every
// value with FromGo.
func FromGoMap(in map[string]any) (*Map, error) {
	m := NewMap()
	for k, v := range in {
		cv, err := FromGo(v)
		if err != nil {
			return nil, fmt.Errorf("value: key %q: %w", k, err)
		}
		m.Set(k, cv)
	}
	return m, nil
}

// Map is a mapping from string keys to Values. Keys are unique and
// insertion order is not kept: Keys, Each, String and the wire encoder
// all visit entries in sorted key order, and nothing in the protocol
// depends on insertion order.
type Map struct {
	entries map[string]Value
}

// NewMap constructs an empty Map.
func NewMap() *Map {
	return &Map{entries: make(map[string]Value)}
}

// Set inserts or overwrites the value at key.
func (m *Map) Set(key string, v Value) {
	m.entries[key] = v
}

// Get looks up key, reporting whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Delete removes key, a no-op if absent.
func (m *Map) Delete(key string) {
	delete(m.entries, key)
}

// Len reports the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the map's keys in sorted order, for deterministic
// iteration and formatting. A nil Map has no keys.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every entry in sorted-key order, stopping early if
// fn returns false.
func (m *Map) Each(fn func(key string, v Value) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.entries[k]) {
			return
		}
	}
}

// Equal reports whether m and other hold the same keys and values. A
// nil Map is treated as empty.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m == nil {
		return true
	}
	for k, v := range m.entries {
		ov, ok := other.entries[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String renders m in a canonical, sorted-key debug form.
func (m *Map) String() string {
	if m == nil || len(m.entries) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(m.entries))
	for _, k := range m.Keys() {
		parts = append(parts, fmt.Sprintf("%q: %s", k, m.entries[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
