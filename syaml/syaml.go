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

package syaml

import (
	"superyaml.dev/go/internal/codegen/proto"
	"superyaml.dev/go/internal/codegen/rust"
	"superyaml.dev/go/internal/codegen/typescript"
	"superyaml.dev/go/internal/env"
	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/resolve"
	"superyaml.dev/go/internal/schema"
	"superyaml.dev/go/internal/value"
)

// typedBinding is one data-section key carrying a `<TypeRef>` annotation,
// recorded together with the JSON-path of the value it binds.
type typedBinding struct {
	Path    value.Path
	TypeRef string
}

// extractTypedBindings strips `<TypeRef>` suffixes from every object key in
// v and returns the annotation-free tree alongside the bindings discovered
// at every nesting level.
func extractTypedBindings(v value.Value, path value.Path) (value.Value, []typedBinding) {
	switch v.Kind() {
	case value.Object:
		clean, types := schema.SplitTypedKeys(v.Map())
		out := value.NewMap()
		var bindings []typedBinding
		for _, k := range clean.Keys() {
			cv, _ := clean.Get(k)
			childPath := path.Field(k)
			nv, cb := extractTypedBindings(cv, childPath)
			out.Set(k, nv)
			bindings = append(bindings, cb...)
			if ref, ok := types[k]; ok {
				bindings = append(bindings, typedBinding{Path: childPath, TypeRef: ref})
			}
		}
		return value.NewObject(out), bindings
	case value.Array:
		elems := v.Elems()
		out := make([]value.Value, len(elems))
		var bindings []typedBinding
		for i, e := range elems {
			nv, cb := extractTypedBindings(e, path.Index(i))
			out[i] = nv
			bindings = append(bindings, cb...)
		}
		return value.NewArray(out), bindings
	default:
		return v, nil
	}
}

// buildRegistry assembles a document's local types plus its resolved
// imports into a schema.Registry, resolving import paths relative to
// basePath.
func buildRegistry(doc *Document, basePath string) (*schema.Registry, error) {
	var local map[string]*schema.Schema
	if doc.SchemaSection.Kind() == value.Null {
		local = map[string]*schema.Schema{}
	} else {
		var err error
		local, err = schema.DecodeTypes(doc.SchemaSection)
		if err != nil {
			return nil, err
		}
	}
	return schema.BuildRegistry(local, doc.Imports, NewFileTypeLoader(basePath))
}

// compileCore runs the full pipeline shared by Compile and Validate: section
// split, env resolution, data decode, typed-binding extraction, expression
// resolution, registry assembly and validation.
func compileCore(documentText string, provider env.Provider, basePath string) (value.Value, error) {
	doc, err := ParseDocument(documentText)
	if err != nil {
		return value.Value{}, err
	}
	envMap, err := env.Resolve(doc.EnvBindings, provider)
	if err != nil {
		return value.Value{}, err
	}
	clean, bindings := extractTypedBindings(doc.DataSection, value.Root())
	resolved, err := resolve.Resolve(clean, envMap)
	if err != nil {
		return value.Value{}, err
	}
	registry, err := buildRegistry(doc, basePath)
	if err != nil {
		return value.Value{}, err
	}
	var errs serrors.List
	for _, b := range bindings {
		s, ok := registry.Lookup(b.TypeRef)
		if !ok {
			errs.Add(serrors.At(serrors.Resolution, b.Path.String(), "unknown type reference '%s'", b.TypeRef))
			continue
		}
		v, ok := value.Get(resolved, b.Path)
		if !ok {
			errs.Add(serrors.At(serrors.Type, b.Path.String(), "internal error: typed binding path vanished during resolution"))
			continue
		}
		if err := schema.Validate(resolved, v, s, registry, envMap, b.Path); err != nil {
			errs.Add(err)
		}
	}
	if err := errs.Err(); err != nil {
		return value.Value{}, err
	}
	return resolved, nil
}

// Compile parses, resolves and validates documentText, returning the
// fully-resolved Value.
func Compile(documentText string, provider env.Provider) (value.Value, error) {
	return compileCore(documentText, provider, ".")
}

// CompileAt is Compile with imports resolved relative to basePath, the way
// the CLI resolves a compiled file's sibling imports relative to its own
// directory.
func CompileAt(documentText string, provider env.Provider, basePath string) (value.Value, error) {
	return compileCore(documentText, provider, basePath)
}

// Validate runs the same pipeline as Compile but discards the resolved
// Value, returning only the error.
func Validate(documentText string, provider env.Provider) error {
	_, err := compileCore(documentText, provider, ".")
	return err
}

// ValidateAt is Validate with imports resolved relative to basePath.
func ValidateAt(documentText string, provider env.Provider, basePath string) error {
	_, err := compileCore(documentText, provider, basePath)
	return err
}

func registryFor(documentText, basePath string) (*schema.Registry, error) {
	doc, err := ParseDocument(documentText)
	if err != nil {
		return nil, err
	}
	return buildRegistry(doc, basePath)
}

// GenerateRustTypes builds the schema registry and hands it to the Rust
// emitter.
func GenerateRustTypes(documentText string) (string, error) {
	return GenerateRustTypesAt(documentText, ".")
}

// GenerateRustTypesAt is GenerateRustTypes with imports resolved relative to
// basePath.
func GenerateRustTypesAt(documentText, basePath string) (string, error) {
	registry, err := registryFor(documentText, basePath)
	if err != nil {
		return "", err
	}
	return rust.Generate(registry)
}

// GenerateTypeScriptTypes builds the schema registry and hands it to the
// TypeScript emitter.
func GenerateTypeScriptTypes(documentText string) (string, error) {
	return GenerateTypeScriptTypesAt(documentText, ".")
}

// GenerateTypeScriptTypesAt is GenerateTypeScriptTypes with imports resolved
// relative to basePath.
func GenerateTypeScriptTypesAt(documentText, basePath string) (string, error) {
	registry, err := registryFor(documentText, basePath)
	if err != nil {
		return "", err
	}
	return typescript.Generate(registry)
}

// GenerateProtoTypes builds the schema registry and hands it to the proto
// emitter.
func GenerateProtoTypes(documentText string) (string, error) {
	return GenerateProtoTypesAt(documentText, ".")
}

// GenerateProtoTypesAt is GenerateProtoTypes with imports resolved relative
// to basePath.
func GenerateProtoTypesAt(documentText, basePath string) (string, error) {
	registry, err := registryFor(documentText, basePath)
	if err != nil {
		return "", err
	}
	return proto.Generate(registry)
}
