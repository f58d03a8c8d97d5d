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

// Package eval implements the expression evaluator: it walks an
// ast.Expr against a Context bundling the data root, env map, imports, the
// current candidate value (for constraint expressions) and the set of
// still-unresolved paths, producing a value.Value or a typed EvalError.
package eval

import (
	"fmt"
	"strconv"

	"superyaml.dev/go/internal/ast"
	"superyaml.dev/go/internal/token"
	"superyaml.dev/go/internal/value"
)

// Context carries everything Evaluate needs to resolve names: the document's
// data tree, its imported values, its environment bindings, and the set of
// paths currently masked as unresolved.
type Context struct {
	Data             value.Value
	Imports          map[string]value.Value
	Env              map[string]value.Value
	UnresolvedPaths  map[string]bool
	CurrentValue     *value.Value
	CurrentScope     *value.Value
}

// EvalError is the evaluator's dual-channel error contract with the
// resolver: Fatal aborts the resolver outright, Unresolved is a recoverable
// signal meaning "try again once more data is available".
type EvalError struct {
	Fatal  bool
	Msg    string
	Path   string // set only when Fatal is false
}

func (e *EvalError) Error() string { return e.Msg }

func fatalf(format string, args ...interface{}) *EvalError {
	return &EvalError{Fatal: true, Msg: fmt.Sprintf(format, args...)}
}

func unresolved(path string) *EvalError {
	return &EvalError{Fatal: false, Path: path, Msg: "Unresolved(" + path + ")"}
}

// IsUnresolved reports whether err is the recoverable Unresolved variant,
// and returns the blocking path.
func IsUnresolved(err error) (string, bool) {
	if e, ok := err.(*EvalError); ok && !e.Fatal {
		return e.Path, true
	}
	return "", false
}

// Evaluate evaluates expr against ctx.
func Evaluate(expr ast.Expr, ctx *Context) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return evalLiteral(n)
	case *ast.Ident:
		return evalIdent(n, ctx)
	case *ast.Member:
		return evalMember(n, ctx)
	case *ast.Call:
		return evalCall(n, ctx)
	case *ast.Unary:
		return evalUnary(n, ctx)
	case *ast.Binary:
		return evalBinary(n, ctx)
	default:
		return value.Value{}, fatalf("unsupported expression node %T", expr)
	}
}

func evalLiteral(n *ast.Literal) (value.Value, error) {
	switch n.Kind {
	case token.INT:
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return value.Value{}, fatalf("invalid integer literal %q", n.Value)
		}
		return value.NewInt(i), nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return value.Value{}, fatalf("invalid float literal %q", n.Value)
		}
		return value.NewFloat(f), nil
	case token.STRING:
		return value.NewString(n.Value), nil
	case token.TRUE:
		return value.NewBool(true), nil
	case token.FALSE:
		return value.NewBool(false), nil
	case token.NULL:
		return value.NewNull(), nil
	default:
		return value.Value{}, fatalf("unsupported literal")
	}
}

func evalIdent(n *ast.Ident, ctx *Context) (value.Value, error) {
	if n.Name == "value" {
		if ctx.CurrentValue != nil {
			return *ctx.CurrentValue, nil
		}
		return value.Value{}, fatalf("'value' is only bound during constraint evaluation")
	}
	if n.Name == "env" {
		return value.Value{}, fatalf("'env' must be followed by '.NAME'")
	}
	scope := ctx.Data
	if ctx.CurrentScope != nil {
		scope = *ctx.CurrentScope
	}
	return lookupField(scope, n.Name, value.Root().Field(n.Name), ctx)
}

func lookupField(scope value.Value, name string, path value.Path, ctx *Context) (value.Value, error) {
	if ctx.UnresolvedPaths[path.String()] {
		return value.Value{}, unresolved(path.String())
	}
	if scope.Kind() != value.Object {
		return value.Value{}, fatalf("unknown reference '%s'", name)
	}
	v, ok := scope.Map().Get(name)
	if !ok {
		return value.Value{}, fatalf("unknown reference '%s'", name)
	}
	return v, nil
}

// dataPath computes the static JSON-path of a pure Ident/Member chain
// rooted at a data identifier (not 'value' or 'env'), so that nested member
// access — e.g. `a.b` where a.b itself is still an unresolved expression —
// is masked the same way a bare top-level identifier is.
func dataPath(expr ast.Expr) (value.Path, bool) {
	switch n := expr.(type) {
	case *ast.Ident:
		if n.Name == "value" || n.Name == "env" {
			return value.Path{}, false
		}
		return value.Root().Field(n.Name), true
	case *ast.Member:
		base, ok := dataPath(n.X)
		if !ok {
			return value.Path{}, false
		}
		return base.Field(n.Name), true
	default:
		return value.Path{}, false
	}
}

func evalMember(n *ast.Member, ctx *Context) (value.Value, error) {
	if ident, ok := n.X.(*ast.Ident); ok && ident.Name == "env" {
		v, ok := ctx.Env[n.Name]
		if !ok {
			return value.Value{}, fatalf("unknown env binding '%s'", n.Name)
		}
		return v, nil
	}
	if path, ok := dataPath(n); ok && ctx.CurrentScope == nil {
		if ctx.UnresolvedPaths[path.String()] {
			return value.Value{}, unresolved(path.String())
		}
	}
	x, err := Evaluate(n.X, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if x.Kind() != value.Object {
		if n.Name == "length" && x.Kind() == value.Array {
			return value.Value{}, fatalf("member access '.length' is not supported; use len(...)")
		}
		return value.Value{}, fatalf("unknown member '%s'", n.Name)
	}
	v, ok := x.Map().Get(n.Name)
	if !ok {
		return value.Value{}, fatalf("unknown member '%s'", n.Name)
	}
	return v, nil
}

func evalUnary(n *ast.Unary, ctx *Context) (value.Value, error) {
	x, err := Evaluate(n.X, ctx)
	if err != nil {
		return value.Value{}, err
	}
	switch n.Op {
	case ast.Neg:
		if x.Kind() != value.Int && x.Kind() != value.Float {
			return value.Value{}, fatalf("unary '-' expects a number")
		}
		r, err := value.Neg(x)
		if err != nil {
			return value.Value{}, fatalf("%s", err)
		}
		return r, nil
	case ast.Not:
		if x.Kind() != value.Bool {
			return value.Value{}, fatalf("unary '!' expects a boolean")
		}
		return value.NewBool(!x.Bool()), nil
	default:
		return value.Value{}, fatalf("unsupported unary operator")
	}
}

func evalBinary(n *ast.Binary, ctx *Context) (value.Value, error) {
	switch n.Op {
	case ast.And:
		x, err := Evaluate(n.X, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if x.Kind() != value.Bool {
			return value.Value{}, fatalf("'&&' expects boolean operands")
		}
		if !x.Bool() {
			return value.NewBool(false), nil
		}
		y, err := Evaluate(n.Y, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if y.Kind() != value.Bool {
			return value.Value{}, fatalf("'&&' expects boolean operands")
		}
		return y, nil
	case ast.Or:
		x, err := Evaluate(n.X, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if x.Kind() != value.Bool {
			return value.Value{}, fatalf("'||' expects boolean operands")
		}
		if x.Bool() {
			return value.NewBool(true), nil
		}
		y, err := Evaluate(n.Y, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if y.Kind() != value.Bool {
			return value.Value{}, fatalf("'||' expects boolean operands")
		}
		return y, nil
	}

	x, err := Evaluate(n.X, ctx)
	if err != nil {
		return value.Value{}, err
	}
	y, err := Evaluate(n.Y, ctx)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case ast.Eq:
		return value.NewBool(value.Equal(x, y)), nil
	case ast.Ne:
		return value.NewBool(!value.Equal(x, y)), nil
	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		return evalCompare(n.Op, x, y)
	case ast.Add:
		return evalArith(value.Add, "+", x, y)
	case ast.Sub:
		return evalArith(value.Sub, "-", x, y)
	case ast.Mul:
		return evalArith(value.Mul, "*", x, y)
	case ast.Div:
		return evalArith(value.Div, "/", x, y)
	case ast.Mod:
		return evalArith(value.Mod, "%", x, y)
	default:
		return value.Value{}, fatalf("unsupported binary operator")
	}
}

func evalArith(op func(a, b value.Value) (value.Value, error), sym string, x, y value.Value) (value.Value, error) {
	if !isNumber(x) || !isNumber(y) {
		return value.Value{}, fatalf("operator '%s' expects numeric operands", sym)
	}
	r, err := op(x, y)
	if err != nil {
		return value.Value{}, fatalf("%s", err)
	}
	return r, nil
}

func evalCompare(op ast.BinaryOp, x, y value.Value) (value.Value, error) {
	lt, err := value.Less(x, y)
	if err != nil {
		return value.Value{}, fatalf("%s", err)
	}
	eq := value.Equal(x, y)
	switch op {
	case ast.Lt:
		return value.NewBool(lt), nil
	case ast.Le:
		return value.NewBool(lt || eq), nil
	case ast.Gt:
		return value.NewBool(!lt && !eq), nil
	case ast.Ge:
		return value.NewBool(!lt || eq), nil
	default:
		return value.Value{}, fatalf("unsupported comparison")
	}
}

func isNumber(v value.Value) bool {
	return v.Kind() == value.Int || v.Kind() == value.Float
}
