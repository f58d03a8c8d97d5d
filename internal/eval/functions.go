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

package eval

import (
	"math"
	"strings"

	"superyaml.dev/go/internal/ast"
	"superyaml.dev/go/internal/value"
)

type builtin struct {
	// minArgs/maxArgs bound arity; maxArgs < 0 means variadic (no upper
	// bound). Every builtin declares its arity explicitly.
	minArgs, maxArgs int
	call             func(name string, args []value.Value) (value.Value, error)
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"max":      {1, -1, reduceNumeric(func(a, b float64) bool { return a > b })},
		"min":      {1, -1, reduceNumeric(func(a, b float64) bool { return a < b })},
		"abs":      {1, 1, fn1Numeric(math.Abs)},
		"round":    {1, 1, fn1Numeric(math.Round)},
		"floor":    {1, 1, fn1Numeric(math.Floor)},
		"ceil":     {1, 1, fn1Numeric(math.Ceil)},
		"len":      {1, 1, fnLen},
		"coalesce": {1, -1, fnCoalesce},
		"contains": {2, 2, fnContains},
	}
}

func evalCall(n *ast.Call, ctx *Context) (value.Value, error) {
	b, ok := builtins[n.Name]
	if !ok {
		return value.Value{}, fatalf("unknown function '%s'", n.Name)
	}
	if len(n.Args) < b.minArgs || (b.maxArgs >= 0 && len(n.Args) > b.maxArgs) {
		if b.minArgs == b.maxArgs {
			return value.Value{}, fatalf("%s expects %d arguments", n.Name, b.minArgs)
		}
		return value.Value{}, fatalf("%s expects at least %d arguments", n.Name, b.minArgs)
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Evaluate(a, ctx)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return b.call(n.Name, args)
}

func fn1Numeric(f func(float64) float64) func(string, []value.Value) (value.Value, error) {
	return func(name string, args []value.Value) (value.Value, error) {
		v := args[0]
		if v.Kind() != value.Int && v.Kind() != value.Float {
			return value.Value{}, fatalf("%s expects a numeric argument", name)
		}
		x, _ := v.Float64()
		r := f(x)
		if v.Kind() == value.Int && r == math.Trunc(r) {
			return value.NewInt(int64(r)), nil
		}
		return value.NewFloat(r), nil
	}
}

func reduceNumeric(better func(a, b float64) bool) func(string, []value.Value) (value.Value, error) {
	return func(name string, args []value.Value) (value.Value, error) {
		best := args[0]
		if best.Kind() != value.Int && best.Kind() != value.Float {
			return value.Value{}, fatalf("%s expects numeric arguments", name)
		}
		bestF, _ := best.Float64()
		allInt := best.Kind() == value.Int
		for _, v := range args[1:] {
			if v.Kind() != value.Int && v.Kind() != value.Float {
				return value.Value{}, fatalf("%s expects numeric arguments", name)
			}
			f, _ := v.Float64()
			if v.Kind() != value.Int {
				allInt = false
			}
			if better(f, bestF) {
				best, bestF = v, f
			}
		}
		if allInt {
			n, _ := best.Int64()
			return value.NewInt(n), nil
		}
		return value.NewFloat(bestF), nil
	}
}

func fnLen(name string, args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind() {
	case value.String:
		return value.NewInt(int64(len([]rune(v.Str())))), nil
	case value.Array:
		return value.NewInt(int64(len(v.Elems()))), nil
	case value.Object:
		return value.NewInt(int64(v.Map().Len())), nil
	default:
		return value.Value{}, fatalf("len expects a string, array or object argument")
	}
}

func fnCoalesce(name string, args []value.Value) (value.Value, error) {
	for _, v := range args {
		if v.Kind() != value.Null {
			return v, nil
		}
	}
	return value.NewNull(), nil
}

func fnContains(name string, args []value.Value) (value.Value, error) {
	haystack, needle := args[0], args[1]
	switch haystack.Kind() {
	case value.String:
		if needle.Kind() != value.String {
			return value.Value{}, fatalf("contains expects a string needle for a string haystack")
		}
		return value.NewBool(strings.Contains(haystack.Str(), needle.Str())), nil
	case value.Array:
		for _, e := range haystack.Elems() {
			if value.Equal(e, needle) {
				return value.NewBool(true), nil
			}
		}
		return value.NewBool(false), nil
	default:
		return value.Value{}, fatalf("contains expects a string or array haystack")
	}
}
