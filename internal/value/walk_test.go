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

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestLeavesVisitsInInsertionOrder(t *testing.T) {
	inner := NewMap()
	inner.Set("b", NewInt(2))
	inner.Set("a", NewInt(1))
	root := NewMap()
	root.Set("items", NewArray([]Value{NewString("x"), NewString("y")}))
	root.Set("nested", NewObject(inner))

	leaves := Leaves(NewObject(root))
	qt.Assert(t, qt.HasLen(leaves, 4))
	qt.Assert(t, qt.Equals(leaves[0].Path.String(), "$.items[0]"))
	qt.Assert(t, qt.Equals(leaves[1].Path.String(), "$.items[1]"))
	qt.Assert(t, qt.Equals(leaves[2].Path.String(), "$.nested.b"))
	qt.Assert(t, qt.Equals(leaves[3].Path.String(), "$.nested.a"))
}

func TestLeavesOnScalarRoot(t *testing.T) {
	leaves := Leaves(NewInt(42))
	qt.Assert(t, qt.HasLen(leaves, 1))
	qt.Assert(t, qt.Equals(leaves[0].Path.String(), "$"))
}
