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

// Package errors defines the typed error taxonomy of the compiler: the
// resolver, validator, env resolver, import loader and code generators
// report failures as an errors.Error carrying a Kind and, where applicable,
// the JSON-path of the offending leaf. The expression parser and evaluator
// return their own error types (*parser.ParseError, *eval.EvalError), which
// their callers wrap into an errors.Error.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies an Error into its reported error-taxonomy category.
type Kind int

const (
	// Parse reports a syntax error in an expression.
	Parse Kind = iota
	// Env reports a missing required environment binding.
	Env
	// Resolution reports a dependency cycle or unknown reference during
	// expression resolution.
	Resolution
	// Type reports a kind mismatch during validation or evaluation.
	Type
	// Range reports a minimum/maximum violation.
	Range
	// Enum reports a value outside a declared enumeration.
	Enum
	// Required reports a missing required property.
	Required
	// Constraint reports a failed or faulted user constraint expression.
	Constraint
	// Import reports a cyclic or unreadable import.
	Import
	// Codegen reports a code-generation invariant violation, such as a
	// missing field_number.
	Codegen
	// Document reports a malformed outer document (bad section markers).
	Document
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "ParseError"
	case Env:
		return "EnvError"
	case Resolution:
		return "ResolutionError"
	case Type:
		return "TypeError"
	case Range:
		return "RangeError"
	case Enum:
		return "EnumError"
	case Required:
		return "RequiredError"
	case Constraint:
		return "ConstraintError"
	case Import:
		return "ImportError"
	case Codegen:
		return "CodegenError"
	case Document:
		return "DocumentError"
	default:
		return "Error"
	}
}

// Error is the concrete error type produced by every component. Path is the
// JSON-path of the offending leaf (e.g. "$.a.b[3].c") and is empty when the
// error has no associated leaf (e.g. a malformed document).
type Error struct {
	Kind Kind
	Path string
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Msg)
}

// New constructs an Error of the given kind with no associated path.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// At constructs an Error of the given kind at the given JSON-path.
func At(kind Kind, path, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// List accumulates positioned Errors across a single compile pass so every
// failure can be reported together instead of stopping at the first one.
// Unlike the evaluator's internal Fatal/Unresolved split (package eval), a
// List is purely a reporting aggregate — it carries no recovery semantics.
type List []*Error

// Add appends err to the list, flattening nested Lists.
func (l *List) Add(err error) {
	if err == nil {
		return
	}
	if nested, ok := err.(List); ok {
		*l = append(*l, nested...)
		return
	}
	if e, ok := err.(*Error); ok {
		*l = append(*l, e)
		return
	}
	*l = append(*l, &Error{Msg: err.Error()})
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
