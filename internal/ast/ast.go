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

// Package ast defines the expression-language abstract syntax tree: literals,
// identifiers, member access, calls, unary and binary operators.
package ast

import "superyaml.dev/go/internal/token"

// Expr is implemented by every AST node.
type Expr interface {
	exprNode()
}

// Literal is a constant value appearing directly in source: a number,
// string, boolean or null.
type Literal struct {
	Kind  token.Token // INT, FLOAT, STRING, TRUE, FALSE or NULL
	Value string      // raw lexeme, unescaped/parsed by the caller
}

// Ident is a bare identifier reference (price, env, value).
type Ident struct {
	Name string
}

// Member is a postfix `.name` access on expr.
type Member struct {
	X    Expr
	Name string
}

// Call is a postfix function call `name(args...)`. Per the grammar only
// identifiers are callable — there are no first-class function values.
type Call struct {
	Name string
	Args []Expr
}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

// Unary is a prefix unary expression.
type Unary struct {
	Op UnaryOp
	X  Expr
}

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
)

// Binary is an infix binary expression.
type Binary struct {
	Op   BinaryOp
	X, Y Expr
}

func (*Literal) exprNode() {}
func (*Ident) exprNode()   {}
func (*Member) exprNode()  {}
func (*Call) exprNode()    {}
func (*Unary) exprNode()   {}
func (*Binary) exprNode()  {}
