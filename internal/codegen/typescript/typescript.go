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

// Package typescript emits TypeScript interface/type declarations from a
// resolved schema registry, walking the registry's flattened type graph
// field-by-field to emit one declaration per type.
package typescript

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"superyaml.dev/go/internal/schema"
	"superyaml.dev/go/internal/value"
)

// Generate renders every type in registry as a TypeScript declaration,
// ordered by name for deterministic output.
func Generate(registry *schema.Registry) (string, error) {
	flattened := registry.Flattened()
	names := make([]string, 0, len(flattened))
	for name := range flattened {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		decl, err := renderDecl(name, flattened[name], registry)
		if err != nil {
			return "", err
		}
		b.WriteString(decl)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func renderDecl(name string, s *schema.Schema, registry *schema.Registry) (string, error) {
	resolved, err := registry.Resolve(s)
	if err != nil {
		return "", err
	}
	var decl string
	if resolved.Kind == schema.KindObject {
		decl, err = renderInterface(name, resolved, registry)
	} else {
		var t string
		t, err = typeExpr(resolved, registry)
		decl = fmt.Sprintf("export type %s = %s;\n", name, t)
	}
	if err != nil {
		return "", err
	}
	if resolved.AsString != "" {
		decl += renderStringifier(name, resolved)
	}
	return decl, nil
}

// renderStringifier emits a `<name>ToString` helper, with the type name's
// first letter lowercased (Semver -> semverToString), from an as_string
// template ("{{major}}.{{minor}}.{{patch}}"), substituting each
// `{{ident}}` placeholder with a property access on the function's
// single parameter.
func renderStringifier(name string, s *schema.Schema) string {
	param := lowerFirst(name)
	return fmt.Sprintf("export function %sToString(%s: %s): string {\n  return `%s`;\n}\n",
		param, param, name, expandTemplate(s.AsString, param))
}

func expandTemplate(tmpl, param string) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		if strings.HasPrefix(tmpl[i:], "{{") {
			if end := strings.Index(tmpl[i+2:], "}}"); end >= 0 {
				ident := strings.TrimSpace(tmpl[i+2 : i+2+end])
				fmt.Fprintf(&b, "${%s.%s}", param, ident)
				i += 2 + end + 2
				continue
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func renderInterface(name string, s *schema.Schema, registry *schema.Registry) (string, error) {
	required := s.RequiredSet()
	var b strings.Builder
	fmt.Fprintf(&b, "export interface %s {\n", name)
	for _, prop := range s.Properties {
		t, err := typeExpr(prop.Type, registry)
		if err != nil {
			return "", err
		}
		optional := ""
		if !required[prop.Name] {
			optional = "?"
		}
		fmt.Fprintf(&b, "  %s%s: %s;\n", prop.Name, optional, t)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// typeExpr renders s as an inline TypeScript type expression: a named
// reference stays a name, everything else is expanded structurally.
func typeExpr(s *schema.Schema, registry *schema.Registry) (string, error) {
	switch s.Kind {
	case schema.KindNamedRef:
		return schema.FlattenRefName(s.Ref), nil
	case schema.KindTypedefAlias:
		resolved, err := registry.Resolve(s)
		if err != nil {
			return "", err
		}
		return typeExpr(resolved, registry)
	case schema.KindInteger, schema.KindNumber:
		return "number", nil
	case schema.KindString:
		return "string", nil
	case schema.KindBoolean:
		return "boolean", nil
	case schema.KindEnum:
		return enumUnion(s), nil
	case schema.KindArray:
		if s.Items == nil {
			return "unknown[]", nil
		}
		item, err := typeExpr(s.Items, registry)
		if err != nil {
			return "", err
		}
		return item + "[]", nil
	case schema.KindObject:
		return renderInlineObject(s, registry)
	default:
		return "unknown", nil
	}
}

func renderInlineObject(s *schema.Schema, registry *schema.Registry) (string, error) {
	required := s.RequiredSet()
	var b strings.Builder
	b.WriteString("{ ")
	for i, prop := range s.Properties {
		t, err := typeExpr(prop.Type, registry)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("; ")
		}
		optional := ""
		if !required[prop.Name] {
			optional = "?"
		}
		fmt.Fprintf(&b, "%s%s: %s", prop.Name, optional, t)
	}
	b.WriteString(" }")
	return b.String(), nil
}

func enumUnion(s *schema.Schema) string {
	parts := make([]string, len(s.Enum))
	for i, e := range s.Enum {
		if e.Kind() == value.String {
			parts[i] = fmt.Sprintf("%q", e.Str())
		} else {
			parts[i] = value.CanonicalString(e)
		}
	}
	return strings.Join(parts, " | ")
}
