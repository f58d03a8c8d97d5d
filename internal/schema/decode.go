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

package schema

import (
	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/value"
)

var kindNames = map[string]Kind{
	"object":         KindObject,
	"array":          KindArray,
	"integer":        KindInteger,
	"number":         KindNumber,
	"string":         KindString,
	"boolean":        KindBoolean,
	"enum":           KindEnum,
	"named-ref":      KindNamedRef,
	"typedef-alias":  KindTypedefAlias,
}

// DecodeTypes decodes a schema section's value tree (an Object mapping
// type name to type descriptor) into local schema nodes, keyed by their
// un-prefixed local name.
func DecodeTypes(section value.Value) (map[string]*Schema, error) {
	if section.Kind() != value.Object {
		return nil, serrors.New(serrors.Document, "schema section must be a mapping of type name to type definition")
	}
	out := map[string]*Schema{}
	for _, name := range section.Map().Keys() {
		v, _ := section.Map().Get(name)
		s, err := decodeNode(v)
		if err != nil {
			return nil, err
		}
		out[name] = s
	}
	return out, nil
}

// decodeNode decodes one type descriptor. A bare string is shorthand for a
// named-ref to that (possibly qualified) type name.
func decodeNode(v value.Value) (*Schema, error) {
	if v.Kind() == value.String {
		return &Schema{Kind: KindNamedRef, Ref: v.Str()}, nil
	}
	if v.Kind() != value.Object {
		return nil, serrors.New(serrors.Document, "type definition must be a mapping or a type-name string")
	}
	m := v.Map()
	s := &Schema{}

	kindStr := getString(m, "kind")
	if kindStr == "" {
		kindStr = getString(m, "type") // common alias accepted for ergonomics
	}
	if kindStr == "" {
		if ref := getString(m, "ref"); ref != "" {
			s.Kind = KindNamedRef
			s.Ref = ref
			return s, nil
		}
		s.Kind = KindTypedefAlias
	} else if k, ok := kindNames[kindStr]; ok {
		s.Kind = k
	} else {
		s.Kind = KindNamedRef
		s.Ref = kindStr
	}

	s.Optional = getBool(m, "optional")
	if n, ok := getInt(m, "field_number"); ok {
		s.FieldNumber = n
		s.HasField = true
	}
	s.Since = getString(m, "since")
	s.Removed = getString(m, "removed")
	s.AsString = getString(m, "as_string")
	if dep, ok := m.Get("deprecated"); ok {
		s.Deprecated = decodeDeprecated(dep)
	}
	if min, ok := m.Get("minimum"); ok {
		s.Minimum = &min
	}
	if max, ok := m.Get("maximum"); ok {
		s.Maximum = &max
	}
	if enumVal, ok := m.Get("enum"); ok && enumVal.Kind() == value.Array {
		s.Enum = append([]value.Value{}, enumVal.Elems()...)
	}
	s.Constraints = decodeConstraintList(m)

	switch s.Kind {
	case KindObject:
		if props, ok := m.Get("properties"); ok && props.Kind() == value.Object {
			for _, name := range props.Map().Keys() {
				pv, _ := props.Map().Get(name)
				ps, err := decodeNode(pv)
				if err != nil {
					return nil, err
				}
				s.Properties = append(s.Properties, Property{Name: name, Type: ps})
			}
		}
		if req, ok := m.Get("required"); ok && req.Kind() == value.Array {
			for _, e := range req.Elems() {
				if e.Kind() == value.String {
					s.Required = append(s.Required, e.Str())
				}
			}
		}
		if values, ok := m.Get("values"); ok {
			vs, err := decodeNode(values)
			if err != nil {
				return nil, err
			}
			s.Values = vs
		}
	case KindArray:
		if items, ok := m.Get("items"); ok {
			is, err := decodeNode(items)
			if err != nil {
				return nil, err
			}
			s.Items = is
		}
		if n, ok := getInt(m, "min_items"); ok {
			s.MinItems = &n
		}
		if n, ok := getInt(m, "max_items"); ok {
			s.MaxItems = &n
		}
	case KindTypedefAlias, KindNamedRef:
		if base := getString(m, "base"); base != "" {
			if k, ok := kindNames[base]; ok {
				s.Target = &Schema{Kind: k}
			} else {
				s.Target = &Schema{Kind: KindNamedRef, Ref: base}
			}
		}
		if s.Kind == KindNamedRef && s.Ref == "" {
			if ref := getString(m, "ref"); ref != "" {
				s.Ref = ref
			}
		}
	}

	return s, nil
}

func decodeConstraintList(m *value.Map) []string {
	v, ok := m.Get("constraints")
	if !ok {
		return nil
	}
	if v.Kind() == value.String {
		return []string{v.Str()}
	}
	if v.Kind() == value.Array {
		var out []string
		for _, e := range v.Elems() {
			if e.Kind() == value.String {
				out = append(out, e.Str())
			}
		}
		return out
	}
	return nil
}

func decodeDeprecated(v value.Value) *Deprecation {
	if v.Kind() == value.String {
		return &Deprecation{Version: v.Str()}
	}
	if v.Kind() == value.Object {
		return &Deprecation{
			Version: getString(v.Map(), "since"),
			Message: getString(v.Map(), "message"),
		}
	}
	if v.Kind() == value.Bool && v.Bool() {
		return &Deprecation{}
	}
	return nil
}

func getString(m *value.Map, key string) string {
	v, ok := m.Get(key)
	if !ok || v.Kind() != value.String {
		return ""
	}
	return v.Str()
}

func getBool(m *value.Map, key string) bool {
	v, ok := m.Get(key)
	return ok && v.Kind() == value.Bool && v.Bool()
}

func getInt(m *value.Map, key string) (int, bool) {
	v, ok := m.Get(key)
	if !ok || v.Kind() != value.Int {
		return 0, false
	}
	n, err := v.Int64()
	if err != nil {
		return 0, false
	}
	return int(n), true
}
