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

func TestAddKeepsIntWhenBothOperandsAreInt(t *testing.T) {
	v, err := Add(NewInt(2), NewInt(3))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), Int))
	n, _ := v.Int64()
	qt.Assert(t, qt.Equals(n, int64(5)))
}

func TestAddPromotesToFloat(t *testing.T) {
	v, err := Add(NewInt(2), NewFloat(0.5))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), Float))
	f, _ := v.Float64()
	qt.Assert(t, qt.Equals(f, 2.5))
}

func TestDivExactStaysInt(t *testing.T) {
	v, err := Div(NewInt(10), NewInt(2))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), Int))
	n, _ := v.Int64()
	qt.Assert(t, qt.Equals(n, int64(5)))
}

func TestDivInexactPromotesToFloat(t *testing.T) {
	v, err := Div(NewInt(10), NewInt(3))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), Float))
}

func TestDivByZero(t *testing.T) {
	_, err := Div(NewInt(1), NewInt(0))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestModIntTruncating(t *testing.T) {
	v, err := Mod(NewInt(7), NewInt(3))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), Int))
	n, _ := v.Int64()
	qt.Assert(t, qt.Equals(n, int64(1)))
}

func TestModZeroDivisor(t *testing.T) {
	_, err := Mod(NewInt(1), NewInt(0))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestNeg(t *testing.T) {
	v, err := Neg(NewInt(5))
	qt.Assert(t, qt.IsNil(err))
	n, _ := v.Int64()
	qt.Assert(t, qt.Equals(n, int64(-5)))
}

func TestArithRejectsNonNumeric(t *testing.T) {
	_, err := Add(NewString("a"), NewInt(1))
	qt.Assert(t, qt.IsNotNil(err))
}
