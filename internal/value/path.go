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

package value

import "strconv"

// Path identifies a leaf within a Value tree as an ordered list of steps,
// rendered as "$.a.b[3].c".
type Path struct {
	steps []step
}

type step struct {
	field string
	index int
	isIdx bool
}

// Root is the empty path, "$".
func Root() Path { return Path{} }

// Field returns a new Path extending p with a field access.
func (p Path) Field(name string) Path {
	steps := append(append([]step{}, p.steps...), step{field: name})
	return Path{steps: steps}
}

// Index returns a new Path extending p with an array index access.
func (p Path) Index(i int) Path {
	steps := append(append([]step{}, p.steps...), step{index: i, isIdx: true})
	return Path{steps: steps}
}

// String renders the path as "$.a.b[3].c".
func (p Path) String() string {
	b := []byte{'$'}
	for _, s := range p.steps {
		if s.isIdx {
			b = append(b, '[')
			b = strconv.AppendInt(b, int64(s.index), 10)
			b = append(b, ']')
		} else {
			b = append(b, '.')
			b = append(b, s.field...)
		}
	}
	return string(b)
}

// Get walks root along p and returns the addressed Value.
func Get(root Value, p Path) (Value, bool) {
	cur := root
	for _, s := range p.steps {
		if s.isIdx {
			if cur.kind != Array || s.index < 0 || s.index >= len(cur.arr) {
				return Value{}, false
			}
			cur = cur.arr[s.index]
		} else {
			if cur.kind != Object {
				return Value{}, false
			}
			v, ok := cur.obj.Get(s.field)
			if !ok {
				return Value{}, false
			}
			cur = v
		}
	}
	return cur, true
}

// Set walks root along p and replaces the addressed leaf with v, rebuilding
// each ancestor container on the way back up (Go maps and slices held by
// value are not addressable in place, so mutation proceeds leaf-first and
// each level re-stores its updated child). Returns the new root and whether
// p resolved to an existing leaf.
func Set(root Value, p Path, v Value) (Value, bool) {
	if len(p.steps) == 0 {
		return v, true
	}
	return setAt(root, p.steps, v)
}

func setAt(cur Value, steps []step, v Value) (Value, bool) {
	s := steps[0]
	rest := steps[1:]
	if s.isIdx {
		if cur.kind != Array || s.index < 0 || s.index >= len(cur.arr) {
			return cur, false
		}
		elems := append([]Value{}, cur.arr...)
		if len(rest) == 0 {
			elems[s.index] = v
		} else {
			updated, ok := setAt(elems[s.index], rest, v)
			if !ok {
				return cur, false
			}
			elems[s.index] = updated
		}
		return NewArray(elems), true
	}
	if cur.kind != Object {
		return cur, false
	}
	existing, ok := cur.obj.Get(s.field)
	if !ok {
		return cur, false
	}
	m := NewMap()
	for _, k := range cur.obj.Keys() {
		val, _ := cur.obj.Get(k)
		m.Set(k, val)
	}
	if len(rest) == 0 {
		m.Set(s.field, v)
	} else {
		updated, ok := setAt(existing, rest, v)
		if !ok {
			return cur, false
		}
		m.Set(s.field, updated)
	}
	return NewObject(m), true
}
