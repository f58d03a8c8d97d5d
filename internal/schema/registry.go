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
	"strings"

	"github.com/google/uuid"

	serrors "superyaml.dev/go/internal/errors"
)

// Registry is the flattened schema namespace for a document: local types
// are un-prefixed, imported types are keyed under their alias-prefixed
// qualified name (e.g. "shared.Port") for reference resolution, and
// additionally registered flattened ("SharedPort") for the codegen
// emitters.
type Registry struct {
	// BuildID is a random identifier that NewRegistry assigns to each
	// registry. No error message or generated output in this module
	// includes it.
	BuildID uuid.UUID

	types      map[string]*Schema // qualified-name -> schema ("shared.Port", "Port")
	flattened  map[string]*Schema // codegen name -> schema ("SharedPort")
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		BuildID:   uuid.New(),
		types:     map[string]*Schema{},
		flattened: map[string]*Schema{},
	}
}

// AddLocal registers the local (un-prefixed) types of the document being
// compiled.
func (r *Registry) AddLocal(local map[string]*Schema) {
	for name, s := range local {
		r.types[name] = s
		r.flattened[name] = s
	}
}

// AddImport registers the types of an aliased sibling document under both
// the qualified name ("alias.Name", for type references) and the
// codegen-flattened name ("AliasName", for emitters).
func (r *Registry) AddImport(alias string, imported map[string]*Schema) {
	for name, s := range imported {
		r.types[alias+"."+name] = s
		r.flattened[flattenName(alias, name)] = s
	}
}

// FlattenRefName converts a possibly-qualified type reference ("alias.Name")
// into the codegen-flattened name ("AliasName") that AddImport registers
// imported types under. A local,
// unqualified reference is returned unchanged.
func FlattenRefName(ref string) string {
	if i := strings.IndexByte(ref, '.'); i >= 0 {
		return flattenName(ref[:i], ref[i+1:])
	}
	return ref
}

func flattenName(alias, name string) string {
	if alias == "" {
		return name
	}
	b := []byte(alias)
	b[0] = upper(b[0])
	return string(b) + name
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Lookup resolves a qualified or local type name to its schema node.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	s, ok := r.types[name]
	return s, ok
}

// Flattened returns the codegen-name-keyed view of the registry.
func (r *Registry) Flattened() map[string]*Schema {
	return r.flattened
}

// Resolve walks a named-ref's chain of typedef aliases/refs until a
// concrete kind is found, detecting cycles
// along the way. A typedef alias's own range/enum constraints are merged
// onto the resolved concrete schema so callers see one flattened node.
func (r *Registry) Resolve(s *Schema) (*Schema, error) {
	seen := map[string]bool{}
	cur := s
	for cur.Kind == KindNamedRef || cur.Kind == KindTypedefAlias {
		var next *Schema
		switch {
		case cur.Kind == KindNamedRef && cur.Ref != "":
			if seen[cur.Ref] {
				return nil, serrors.New(serrors.Resolution, "cyclic type reference detected at '%s'", cur.Ref)
			}
			seen[cur.Ref] = true
			target, ok := r.types[cur.Ref]
			if !ok {
				return nil, serrors.New(serrors.Resolution, "unknown type reference '%s'", cur.Ref)
			}
			next = target
		case cur.Target != nil:
			next = cur.Target
		default:
			return nil, serrors.New(serrors.Resolution, "typedef alias has no target kind")
		}
		merged := mergeAlias(cur, next)
		if merged.Kind == KindNamedRef || merged.Kind == KindTypedefAlias {
			cur = merged
			continue
		}
		return merged, nil
	}
	return cur, nil
}

// mergeAlias layers an alias node's own constraints (minimum/maximum/enum/
// constraints) over its resolved target: a typedef alias is treated as the
// target kind carrying the alias's additional constraints.
func mergeAlias(alias, target *Schema) *Schema {
	merged := *target
	if alias.Minimum != nil {
		merged.Minimum = alias.Minimum
	}
	if alias.Maximum != nil {
		merged.Maximum = alias.Maximum
	}
	if len(alias.Enum) > 0 {
		merged.Enum = alias.Enum
	}
	if len(alias.Constraints) > 0 {
		merged.Constraints = append(append([]string{}, target.Constraints...), alias.Constraints...)
	}
	if alias.Optional {
		merged.Optional = true
	}
	return &merged
}
