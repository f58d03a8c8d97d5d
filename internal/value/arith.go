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
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// numOp applies a Context arithmetic method to two Values, promoting to
// Float unless both operands are Int — the rule applied to +, - and *.
func numOp(op func(d, x, y *apd.Decimal) (apd.Condition, error), a, b Value) (Value, error) {
	if a.kind != Int && a.kind != Float {
		return Value{}, fmt.Errorf("expected number, got %s", a.kind)
	}
	if b.kind != Int && b.kind != Float {
		return Value{}, fmt.Errorf("expected number, got %s", b.kind)
	}
	var d apd.Decimal
	if _, err := op(&d, &a.num, &b.num); err != nil {
		return Value{}, err
	}
	isInt := a.kind == Int && b.kind == Int
	return NewDecimal(d, isInt), nil
}

// Add implements +.
func Add(a, b Value) (Value, error) {
	return numOp(func(d, x, y *apd.Decimal) (apd.Condition, error) { return numCtx.Add(d, x, y) }, a, b)
}

// Sub implements -.
func Sub(a, b Value) (Value, error) {
	return numOp(func(d, x, y *apd.Decimal) (apd.Condition, error) { return numCtx.Sub(d, x, y) }, a, b)
}

// Mul implements *.
func Mul(a, b Value) (Value, error) {
	return numOp(func(d, x, y *apd.Decimal) (apd.Condition, error) { return numCtx.Mul(d, x, y) }, a, b)
}

// Div implements /. Integer-over-integer stays Int only when the division
// is exact; otherwise (or when either operand is Float) the result
// promotes to Float.
func Div(a, b Value) (Value, error) {
	if isZero(b) {
		return Value{}, fmt.Errorf("division by zero")
	}
	if a.kind == Int && b.kind == Int {
		var rem apd.Decimal
		if _, err := numCtx.Rem(&rem, &a.num, &b.num); err != nil {
			return Value{}, err
		}
		if rem.IsZero() {
			var q apd.Decimal
			if _, err := numCtx.QuoInteger(&q, &a.num, &b.num); err != nil {
				return Value{}, err
			}
			return NewDecimal(q, true), nil
		}
	}
	var d apd.Decimal
	if _, err := numCtx.Quo(&d, &a.num, &b.num); err != nil {
		return Value{}, err
	}
	return NewDecimal(d, false), nil
}

// Mod implements %. Integer operands use truncating remainder; any Float
// operand uses the IEEE remainder.
func Mod(a, b Value) (Value, error) {
	if isZero(b) {
		return Value{}, fmt.Errorf("modulo by zero")
	}
	if a.kind == Int && b.kind == Int {
		var rem apd.Decimal
		if _, err := numCtx.Rem(&rem, &a.num, &b.num); err != nil {
			return Value{}, err
		}
		return NewDecimal(rem, true), nil
	}
	af, err := a.num.Float64()
	if err != nil {
		return Value{}, err
	}
	bf, err := b.num.Float64()
	if err != nil {
		return Value{}, err
	}
	return NewFloat(math.Remainder(af, bf)), nil
}

// Neg implements unary -.
func Neg(a Value) (Value, error) {
	if a.kind != Int && a.kind != Float {
		return Value{}, fmt.Errorf("expected number, got %s", a.kind)
	}
	var d apd.Decimal
	d.Neg(&a.num)
	return NewDecimal(d, a.kind == Int), nil
}

func isZero(v Value) bool {
	return v.num.IsZero()
}
