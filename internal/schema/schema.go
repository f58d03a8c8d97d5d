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

// Package schema implements the schema registry and validator:
// type namespace assembly (local types plus qualified imports), typedef
// chain resolution, and value validation including range, enum,
// required-ness, custom constraints and structural shape.
package schema

import (
	"superyaml.dev/go/internal/ast"
	"superyaml.dev/go/internal/value"
)

// Kind discriminates a schema node's variant.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindInteger
	KindNumber
	KindString
	KindBoolean
	KindEnum
	KindNamedRef
	KindTypedefAlias
)

// Deprecation carries the structured since+message form of a
// `deprecated` marker, as an alternative to a bare version string.
type Deprecation struct {
	Version string
	Message string
}

// Property is one entry of an object schema's ordered `properties` map.
type Property struct {
	Name string
	Type *Schema
}

// Schema is the tagged schema-type structure every declared type compiles to.
type Schema struct {
	Kind Kind

	// Shared optional attributes.
	Optional    bool
	FieldNumber int
	HasField    bool // whether FieldNumber was explicitly set
	Since       string
	Deprecated  *Deprecation
	Removed     string
	Minimum     *value.Value
	Maximum     *value.Value
	Enum        []value.Value
	Constraints []string // one or more expression source strings
	AsString    string   // "{{major}}.{{minor}}.{{patch}}" style template

	// object
	Properties []Property
	Required   []string
	Values     *Schema // open-record element type, nil if closed

	// array
	Items    *Schema
	MinItems *int
	MaxItems *int

	// named-ref / typedef-alias
	Ref    string  // qualified name this node refers to
	Target *Schema // typedef-alias target, decoded from `base`; Resolve follows it
}

// ConstraintExprs parses every Constraints source string into an AST. The
// result is not cached: each call parses the sources again.
func (s *Schema) ConstraintExprs() ([]ast.Expr, error) {
	return parseConstraints(s.Constraints)
}

// RequiredSet returns s.Required as a lookup set.
func (s *Schema) RequiredSet() map[string]bool {
	set := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		set[r] = true
	}
	return set
}

// PropertyNamed returns the named property's schema, if declared.
func (s *Schema) PropertyNamed(name string) (*Schema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Type, true
		}
	}
	return nil, false
}
