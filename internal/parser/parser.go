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

// Package parser implements a recursive-descent, precedence-climbing parser
// for the expression language, built from a small parseBinaryExpr /
// parseUnaryExpr / parsePrimaryExpr chain.
package parser

import (
	"fmt"

	"superyaml.dev/go/internal/ast"
	"superyaml.dev/go/internal/scanner"
	"superyaml.dev/go/internal/token"
)

// MaxTokens caps the token stream length accepted by Parse, rejecting
// obvious bombs while leaving headroom for realistic constraint
// expressions.
const MaxTokens = 4096

// ParseError reports a syntax error encountered while parsing an
// expression. It is always returned as a plain error (not an
// errors.Error) because expr-syntax parsing has no JSON-path of its own —
// callers (schema, resolve) attach the path when they wrap it.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string { return e.Msg }

// Parse parses source into an expression AST, or returns a *ParseError.
// Parse never panics.
func Parse(source string) (expr ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	p := &parser{}
	p.sc.Init([]byte(source))
	p.next()
	e := p.parseExpr()
	if p.tok != token.EOF {
		p.errorf("unexpected token after expression")
	}
	return e, nil
}

type parser struct {
	sc scanner.Scanner

	tok    token.Token
	lit    string
	offset int

	count int
}

func (p *parser) errorf(format string, args ...interface{}) {
	panic(&ParseError{Offset: p.offset, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) next() {
	p.count++
	if p.count > MaxTokens {
		p.errorf("expression exceeds max token count")
	}
	p.tok, p.lit, p.offset = p.sc.Scan()
	if p.tok == token.ILLEGAL {
		if msg := p.sc.Err(); msg != "" {
			p.errorf("%s", msg)
		}
		p.errorf("unknown character")
	}
}

func (p *parser) expect(tok token.Token) {
	if p.tok != tok {
		p.errorf("expected %s, found %s", tok, p.tok)
	}
	p.next()
}

// parseExpr parses the full `or`-precedence expression, the grammar root.
func (p *parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(1)
}

// parseBinaryExpr implements precedence climbing starting at minimum
// precedence prec1.
func (p *parser) parseBinaryExpr(prec1 int) ast.Expr {
	x := p.parseUnaryExpr()
	for {
		prec := p.tok.Precedence()
		if prec < prec1 || prec == 0 {
			return x
		}
		op := binaryOp(p.tok)
		p.next()
		y := p.parseBinaryExpr(prec + 1)
		x = &ast.Binary{Op: op, X: x, Y: y}
	}
}

func binaryOp(tok token.Token) ast.BinaryOp {
	switch tok {
	case token.ADD:
		return ast.Add
	case token.SUB:
		return ast.Sub
	case token.MUL:
		return ast.Mul
	case token.QUO:
		return ast.Div
	case token.REM:
		return ast.Mod
	case token.EQL:
		return ast.Eq
	case token.NEQ:
		return ast.Ne
	case token.LSS:
		return ast.Lt
	case token.LEQ:
		return ast.Le
	case token.GTR:
		return ast.Gt
	case token.GEQ:
		return ast.Ge
	case token.LAND:
		return ast.And
	case token.LOR:
		return ast.Or
	}
	panic(fmt.Sprintf("not a binary operator: %s", tok))
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.tok {
	case token.SUB:
		p.next()
		return &ast.Unary{Op: ast.Neg, X: p.parseUnaryExpr()}
	case token.NOT:
		p.next()
		return &ast.Unary{Op: ast.Not, X: p.parseUnaryExpr()}
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr handles the `.ident` / `(args,…)` chain at the grammar's
// highest-precedence level.
func (p *parser) parsePostfixExpr() ast.Expr {
	x := p.parsePrimaryExpr()
	for {
		switch p.tok {
		case token.PERIOD:
			p.next()
			if p.tok != token.IDENT {
				p.errorf("expected identifier after '.'")
			}
			name := p.lit
			p.next()
			x = &ast.Member{X: x, Name: name}
		case token.LPAREN:
			ident, ok := x.(*ast.Ident)
			if !ok {
				p.errorf("only identifiers may be called")
			}
			args := p.parseArgs()
			x = &ast.Call{Name: ident.Name, Args: args}
		default:
			return x
		}
	}
}

func (p *parser) parseArgs() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN {
		args = append(args, p.parseExpr())
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.INT:
		lit := p.lit
		p.next()
		return &ast.Literal{Kind: token.INT, Value: lit}
	case token.FLOAT:
		lit := p.lit
		p.next()
		return &ast.Literal{Kind: token.FLOAT, Value: lit}
	case token.STRING:
		lit := p.lit
		p.next()
		return &ast.Literal{Kind: token.STRING, Value: lit}
	case token.TRUE, token.FALSE, token.NULL:
		tok := p.tok
		p.next()
		return &ast.Literal{Kind: tok}
	case token.IDENT:
		name := p.lit
		p.next()
		return &ast.Ident{Name: name}
	case token.LPAREN:
		p.next()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x
	default:
		p.errorf("unexpected token %s", p.tok)
		return nil
	}
}
