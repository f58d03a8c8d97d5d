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

// Leaf pairs a path with the Value found there.
type Leaf struct {
	Path  Path
	Value Value
}

// Leaves returns every leaf (non-Array, non-Object) node in root along with
// its path, in a stable depth-first, insertion-order traversal. The resolver
// uses this to enumerate candidate expression-bearing strings each pass.
func Leaves(root Value) []Leaf {
	var out []Leaf
	walk(root, Root(), &out)
	return out
}

func walk(v Value, p Path, out *[]Leaf) {
	switch v.kind {
	case Array:
		for i, e := range v.arr {
			walk(e, p.Index(i), out)
		}
	case Object:
		for _, k := range v.obj.Keys() {
			child, _ := v.obj.Get(k)
			walk(child, p.Field(k), out)
		}
	default:
		*out = append(*out, Leaf{Path: p, Value: v})
	}
}
