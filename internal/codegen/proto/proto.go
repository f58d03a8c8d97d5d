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

// Package proto emits .proto message/enum definitions from a resolved
// schema registry, building the tree out of github.com/emicklei/proto's own
// AST node types rather than via raw string concatenation. Every live
// property must declare a field_number; removed properties are reserved
// instead of emitted, deprecated properties carry a [deprecated = true]
// option, and optional scalar properties carry the optional qualifier.
package proto

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	protoast "github.com/emicklei/proto"

	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/schema"
	"superyaml.dev/go/internal/value"
)

// Generate renders registry's object- and enum-kind types as a single .proto
// file, ordered by name for deterministic output.
func Generate(registry *schema.Registry) (string, error) {
	flattened := registry.Flattened()
	names := make([]string, 0, len(flattened))
	for name := range flattened {
		names = append(names, name)
	}
	sort.Strings(names)

	file := &protoast.Proto{
		Elements: []protoast.Visitee{
			&protoast.Syntax{Value: "proto3"},
		},
	}

	for _, name := range names {
		resolved, err := registry.Resolve(flattened[name])
		if err != nil {
			return "", err
		}
		switch resolved.Kind {
		case schema.KindObject:
			msg, err := buildMessage(name, resolved, registry)
			if err != nil {
				return "", err
			}
			file.Elements = append(file.Elements, msg)
		case schema.KindEnum:
			file.Elements = append(file.Elements, buildEnum(name, resolved))
		}
	}

	var b strings.Builder
	for _, el := range file.Elements {
		writeElement(&b, el, 0)
	}
	return b.String(), nil
}

func buildMessage(name string, s *schema.Schema, registry *schema.Registry) (*protoast.Message, error) {
	msg := &protoast.Message{Name: name}

	var reservedNumbers []int
	var reservedNames []string

	for _, prop := range s.Properties {
		if prop.Type.Removed != "" {
			if prop.Type.HasField {
				reservedNumbers = append(reservedNumbers, prop.Type.FieldNumber)
			}
			reservedNames = append(reservedNames, prop.Name)
		}
	}

	for _, prop := range s.Properties {
		if prop.Type.Removed != "" {
			continue
		}
		if !prop.Type.HasField {
			return nil, serrors.New(serrors.Codegen, "missing field_number for property %q", prop.Name)
		}
		seq := prop.Type.FieldNumber

		t, repeated, err := fieldType(prop.Type, registry)
		if err != nil {
			return nil, err
		}
		field := &protoast.Field{
			Name:     prop.Name,
			Type:     t,
			Sequence: seq,
		}
		if prop.Type.Deprecated != nil {
			field.Options = append(field.Options, &protoast.Option{
				Name:     "deprecated",
				Constant: protoast.Literal{Source: "true"},
			})
		}
		msg.Elements = append(msg.Elements, &protoast.NormalField{
			Field:    field,
			Repeated: repeated,
			Optional: !repeated && prop.Type.Optional,
		})
	}

	if len(reservedNumbers) > 0 || len(reservedNames) > 0 {
		reserved := &protoast.Reserved{}
		for _, n := range reservedNumbers {
			reserved.Ranges = append(reserved.Ranges, protoast.Range{From: n, To: n})
		}
		reserved.FieldNames = reservedNames
		msg.Elements = append(msg.Elements, reserved)
	}

	return msg, nil
}

func buildEnum(name string, s *schema.Schema) *protoast.Enum {
	enum := &protoast.Enum{Name: name}
	for i, e := range s.Enum {
		label := e.Str()
		if e.Kind() != value.String {
			label = value.CanonicalString(e)
		}
		enum.Elements = append(enum.Elements, &protoast.EnumField{
			Name:    enumFieldName(label, name),
			Integer: i,
		})
	}
	return enum
}

func enumFieldName(value, enumName string) string {
	upperName := strings.ToUpper(enumName)
	upperValue := strings.ToUpper(strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return '_'
		}
		return r
	}, value))
	return upperName + "_" + upperValue
}

// fieldType maps a property's schema kind to a .proto field type, and
// whether it must be declared `repeated`.
func fieldType(s *schema.Schema, registry *schema.Registry) (string, bool, error) {
	switch s.Kind {
	case schema.KindNamedRef:
		return schema.FlattenRefName(s.Ref), false, nil
	case schema.KindTypedefAlias:
		resolved, err := registry.Resolve(s)
		if err != nil {
			return "", false, err
		}
		return fieldType(resolved, registry)
	case schema.KindInteger:
		return "int64", false, nil
	case schema.KindNumber:
		return "double", false, nil
	case schema.KindString:
		return "string", false, nil
	case schema.KindBoolean:
		return "bool", false, nil
	case schema.KindEnum:
		return "string", false, nil
	case schema.KindArray:
		if s.Items == nil {
			return "string", true, nil
		}
		t, _, err := fieldType(s.Items, registry)
		if err != nil {
			return "", false, err
		}
		return t, true, nil
	case schema.KindObject:
		// Anonymous nested objects have no .proto message to reference;
		// fall back to a JSON-encoded string field.
		return "string", false, nil
	default:
		return "string", false, nil
	}
}

// fieldOptions renders a field's bracketed option list (e.g. " [deprecated = true]"),
// or "" if the field has none.
func fieldOptions(opts []*protoast.Option) string {
	if len(opts) == 0 {
		return ""
	}
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = fmt.Sprintf("%s = %s", o.Name, o.Constant.Source)
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func writeElement(b *strings.Builder, el protoast.Visitee, indent int) {
	pad := strings.Repeat("  ", indent)
	switch v := el.(type) {
	case *protoast.Syntax:
		fmt.Fprintf(b, "%ssyntax = %q;\n\n", pad, v.Value)
	case *protoast.Message:
		fmt.Fprintf(b, "%smessage %s {\n", pad, v.Name)
		for _, sub := range v.Elements {
			writeElement(b, sub, indent+1)
		}
		fmt.Fprintf(b, "%s}\n\n", pad)
	case *protoast.Enum:
		fmt.Fprintf(b, "%senum %s {\n", pad, v.Name)
		for _, sub := range v.Elements {
			writeElement(b, sub, indent+1)
		}
		fmt.Fprintf(b, "%s}\n\n", pad)
	case *protoast.EnumField:
		fmt.Fprintf(b, "%s%s = %d;\n", pad, v.Name, v.Integer)
	case *protoast.NormalField:
		qualifier := ""
		if v.Repeated {
			qualifier = "repeated "
		} else if v.Optional {
			qualifier = "optional "
		}
		fmt.Fprintf(b, "%s%s%s %s = %d%s;\n", pad, qualifier, v.Type, v.Name, v.Sequence, fieldOptions(v.Options))
	case *protoast.Reserved:
		var parts []string
		for _, r := range v.Ranges {
			if r.From == r.To {
				parts = append(parts, strconv.Itoa(r.From))
			} else {
				parts = append(parts, fmt.Sprintf("%d to %d", r.From, r.To))
			}
		}
		for _, n := range v.FieldNames {
			parts = append(parts, strconv.Quote(n))
		}
		fmt.Fprintf(b, "%sreserved %s;\n", pad, strings.Join(parts, ", "))
	}
}
