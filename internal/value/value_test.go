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

func TestEqualNumericCrossKind(t *testing.T) {
	qt.Assert(t, qt.IsTrue(Equal(NewInt(3), NewFloat(3.0))))
	qt.Assert(t, qt.IsFalse(Equal(NewInt(3), NewFloat(3.1))))
}

func TestEqualStructural(t *testing.T) {
	m1 := NewMap()
	m1.Set("a", NewInt(1))
	m1.Set("b", NewArray([]Value{NewString("x")}))
	m2 := NewMap()
	m2.Set("a", NewInt(1))
	m2.Set("b", NewArray([]Value{NewString("x")}))
	qt.Assert(t, qt.IsTrue(Equal(NewObject(m1), NewObject(m2))))
}

func TestEqualMismatchedKindsAreFalse(t *testing.T) {
	qt.Assert(t, qt.IsFalse(Equal(NewString("1"), NewInt(1))))
	qt.Assert(t, qt.IsFalse(Equal(NewBool(true), NewNull())))
}

func TestLessNumericAndString(t *testing.T) {
	lt, err := Less(NewInt(1), NewInt(2))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(lt))

	lt, err = Less(NewString("a"), NewString("b"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(lt))
}

func TestLessIncomparableKinds(t *testing.T) {
	_, err := Less(NewString("a"), NewInt(1))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("z", NewInt(1))
	m.Set("a", NewInt(2))
	m.Set("m", NewInt(3))
	qt.Assert(t, qt.DeepEquals(m.Keys(), []string{"z", "a", "m"}))
	m.Set("a", NewInt(9))
	qt.Assert(t, qt.DeepEquals(m.Keys(), []string{"z", "a", "m"}))
	v, _ := m.Get("a")
	n, _ := v.Int64()
	qt.Assert(t, qt.Equals(n, int64(9)))
}

func TestCanonicalString(t *testing.T) {
	qt.Assert(t, qt.Equals(CanonicalString(NewInt(42)), "42"))
	qt.Assert(t, qt.Equals(CanonicalString(NewBool(true)), "true"))
	qt.Assert(t, qt.Equals(CanonicalString(NewNull()), "null"))
	qt.Assert(t, qt.Equals(CanonicalString(NewString("hi")), "hi"))
}

func TestPathStringAndGetSet(t *testing.T) {
	p := Root().Field("a").Index(2).Field("c")
	qt.Assert(t, qt.Equals(p.String(), "$.a[2].c"))

	inner := NewMap()
	inner.Set("c", NewInt(1))
	arr := []Value{NewInt(0), NewInt(0), NewObject(inner)}
	root := NewMap()
	root.Set("a", NewArray(arr))
	rootVal := NewObject(root)

	got, ok := Get(rootVal, p)
	qt.Assert(t, qt.IsTrue(ok))
	n, _ := got.Int64()
	qt.Assert(t, qt.Equals(n, int64(1)))

	updated, ok := Set(rootVal, p, NewInt(99))
	qt.Assert(t, qt.IsTrue(ok))
	got2, _ := Get(updated, p)
	n2, _ := got2.Int64()
	qt.Assert(t, qt.Equals(n2, int64(99)))

	// original tree is untouched (Set rebuilds rather than mutates).
	got3, _ := Get(rootVal, p)
	n3, _ := got3.Int64()
	qt.Assert(t, qt.Equals(n3, int64(1)))
}

func TestGetMissingPath(t *testing.T) {
	root := NewObject(NewMap())
	_, ok := Get(root, Root().Field("missing"))
	qt.Assert(t, qt.IsFalse(ok))
}
