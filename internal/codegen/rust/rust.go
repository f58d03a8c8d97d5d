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

// Package rust emits Rust struct/enum declarations with serde derive
// attributes from a resolved schema registry, the same field-by-field walk
// as the typescript emitter but rendering Rust syntax.
package rust

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"superyaml.dev/go/internal/schema"
	"superyaml.dev/go/internal/value"
)

const derive = "#[derive(Debug, Clone, serde::Serialize, serde::Deserialize)]\n"

// Generate renders every type in registry as a Rust declaration, ordered by
// name for deterministic output.
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
	switch resolved.Kind {
	case schema.KindObject:
		return renderStruct(name, resolved, registry)
	case schema.KindEnum:
		return renderEnum(name, resolved), nil
	default:
		t, err := typeExpr(resolved, registry)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("pub type %s = %s;\n", name, t), nil
	}
}

func renderStruct(name string, s *schema.Schema, registry *schema.Registry) (string, error) {
	required := s.RequiredSet()
	var b strings.Builder
	b.WriteString(derive)
	fmt.Fprintf(&b, "pub struct %s {\n", name)
	for _, prop := range s.Properties {
		t, err := typeExpr(prop.Type, registry)
		if err != nil {
			return "", err
		}
		if !required[prop.Name] {
			t = "Option<" + t + ">"
		}
		fmt.Fprintf(&b, "    pub %s: %s,\n", prop.Name, t)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func renderEnum(name string, s *schema.Schema) string {
	var b strings.Builder
	b.WriteString(derive)
	fmt.Fprintf(&b, "pub enum %s {\n", name)
	for _, e := range s.Enum {
		label := variantName(e)
		if e.Kind() == value.String && label != e.Str() {
			fmt.Fprintf(&b, "    #[serde(rename = %q)]\n", e.Str())
		}
		fmt.Fprintf(&b, "    %s,\n", label)
	}
	b.WriteString("}\n")
	return b.String()
}

// variantName produces a valid PascalCase Rust enum variant name from an
// enum member value.
func variantName(v value.Value) string {
	raw := value.CanonicalString(v)
	var b strings.Builder
	upperNext := true
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				b.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				b.WriteRune(r)
			}
		default:
			upperNext = true
		}
	}
	if b.Len() == 0 {
		return "Unknown"
	}
	return b.String()
}

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
	case schema.KindInteger:
		return "i64", nil
	case schema.KindNumber:
		return "f64", nil
	case schema.KindString:
		return "String", nil
	case schema.KindBoolean:
		return "bool", nil
	case schema.KindEnum:
		return "String", nil
	case schema.KindArray:
		if s.Items == nil {
			return "Vec<serde_json::Value>", nil
		}
		item, err := typeExpr(s.Items, registry)
		if err != nil {
			return "", err
		}
		return "Vec<" + item + ">", nil
	case schema.KindObject:
		return "serde_json::Value", nil
	default:
		return "serde_json::Value", nil
	}
}
