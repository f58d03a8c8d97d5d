// Copyright 2024 The Superyaml Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value implements a JSON-shaped value sum type: null, boolean,
// integer, float, string, ordered sequence, and an insertion-order-preserving
// mapping. Numbers are backed by github.com/cockroachdb/apd/v3, the same
// decimal library internal/core/adt uses for its own numeric kind, so that
// range checks and arithmetic never suffer float64 representation surprises.
package value

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Kind discriminates the Value variant.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Float:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// numCtx is the shared arithmetic context for all decimal operations.
var numCtx = func() apd.Context {
	c := apd.BaseContext
	c.Precision = 34
	return c
}()

// Map is an insertion-order-preserving string-keyed mapping, so that
// decode-then-encode round-trips preserve key order.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{values: map[string]Value{}}
}

// Set inserts or updates key. New keys are appended to the insertion order.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value bound to key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []string { return m.keys }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Value is the JSON-shaped sum type. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	num  apd.Decimal
	str  string
	arr  []Value
	obj  *Map
}

// NewNull returns the null Value.
func NewNull() Value { return Value{kind: Null} }

// NewBool wraps b.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewInt wraps an integer n.
func NewInt(n int64) Value {
	v := Value{kind: Int}
	v.num.SetInt64(n)
	return v
}

// NewFloat wraps a float64 f.
func NewFloat(f float64) Value {
	v := Value{kind: Float}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err == nil {
		v.num = *d
	}
	return v
}

// NewDecimal wraps a pre-computed decimal as an Int or Float Value
// depending on isInt.
func NewDecimal(d apd.Decimal, isInt bool) Value {
	v := Value{num: d}
	if isInt {
		v.kind = Int
	} else {
		v.kind = Float
	}
	return v
}

// NewString wraps s.
func NewString(s string) Value { return Value{kind: String, str: s} }

// NewArray wraps an ordered sequence of elements.
func NewArray(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: Array, arr: elems}
}

// NewObject wraps an ordered mapping.
func NewObject(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: Object, obj: m}
}

// Kind returns the Value's discriminant.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload; only meaningful when Kind() == Bool.
func (v Value) Bool() bool { return v.b }

// Decimal returns the numeric payload; only meaningful when Kind() is Int
// or Float.
func (v Value) Decimal() apd.Decimal { return v.num }

// Int64 returns the numeric payload as an int64. It does not truncate: a
// payload with a fractional part, or one outside the int64 range, yields an
// error.
func (v Value) Int64() (int64, error) {
	return v.num.Int64()
}

// Float64 returns the numeric payload as a float64.
func (v Value) Float64() (float64, error) {
	f, err := v.num.Float64()
	return f, err
}

// Str returns the string payload; only meaningful when Kind() == String.
func (v Value) Str() string { return v.str }

// Elems returns the array payload; only meaningful when Kind() == Array.
func (v Value) Elems() []Value { return v.arr }

// Map returns the object payload; only meaningful when Kind() == Object.
func (v Value) Map() *Map { return v.obj }

// IsTruthy is used only where the language is explicitly boolean-strict;
// the evaluator never coerces, so this is reserved for
// internal diagnostic use (e.g. pretty-printing) rather than evaluation.
func (v Value) IsTruthy() bool {
	switch v.kind {
	case Bool:
		return v.b
	case Null:
		return false
	default:
		return true
	}
}

// Equal implements the expression language's equality rule: numeric pairwise,
// strings lexicographic identity, unlike primitive kinds compare false,
// compound values compare structurally.
func Equal(a, b Value) bool {
	if isNumeric(a.kind) && isNumeric(b.kind) {
		return a.num.Cmp(&b.num) == 0
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case String:
		return a.str == b.str
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.Keys() {
			av, _ := a.obj.Get(k)
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumeric(k Kind) bool { return k == Int || k == Float }

// Less implements the lexicographic/numeric ordering used for <, <=, >, >=.
func Less(a, b Value) (bool, error) {
	switch {
	case isNumeric(a.kind) && isNumeric(b.kind):
		return a.num.Cmp(&b.num) < 0, nil
	case a.kind == String && b.kind == String:
		return a.str < b.str, nil
	default:
		return false, fmt.Errorf("cannot compare %s and %s", a.kind, b.kind)
	}
}

// CanonicalString renders v the way interpolation substitution does: numbers
// in canonical JSON form, strings unquoted, booleans as true/false, null as
// the literal null.
func CanonicalString(v Value) string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Int:
		n, err := v.num.Int64()
		if err == nil {
			return strconv.FormatInt(n, 10)
		}
		return v.num.Text('f')
	case Float:
		f, err := v.num.Float64()
		if err == nil {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return v.num.Text('f')
	case String:
		return v.str
	default:
		return v.num.Text('f')
	}
}
