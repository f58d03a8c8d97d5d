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

import serrors "superyaml.dev/go/internal/errors"

// ImportDecl is one preamble `alias: ./path` entry.
type ImportDecl struct {
	Alias string
	Path  string
}

// TypeLoader loads a sibling document's schema types and its own import
// declarations, given a base path. Filesystem access and document-section
// splitting are deliberately kept out of this package; it only needs this
// narrow capability to assemble the registry and to detect import cycles.
// A real implementation lives in package syaml; tests use an in-memory stub.
type TypeLoader interface {
	LoadTypes(path string) (types map[string]*Schema, imports []ImportDecl, err error)
}

// BuildRegistry assembles the full registry for a document: its own local
// types plus, transitively, every aliased import's types. Import cycles are
// detected with a record-before-descend / remove-after-return in-flight
// stack.
func BuildRegistry(local map[string]*Schema, imports []ImportDecl, loader TypeLoader) (*Registry, error) {
	r := NewRegistry()
	r.AddLocal(local)
	inFlight := map[string]bool{}
	for _, imp := range imports {
		if err := loadImport(r, imp, loader, inFlight); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func loadImport(r *Registry, imp ImportDecl, loader TypeLoader, inFlight map[string]bool) error {
	if inFlight[imp.Path] {
		return serrors.New(serrors.Import, "cyclic import detected: %s", imp.Path)
	}
	inFlight[imp.Path] = true
	defer delete(inFlight, imp.Path)

	types, nestedImports, err := loader.LoadTypes(imp.Path)
	if err != nil {
		return serrors.New(serrors.Import, "failed to load import '%s' (%s): %s", imp.Alias, imp.Path, err)
	}
	r.AddImport(imp.Alias, types)
	for _, nested := range nestedImports {
		if err := loadImport(r, nested, loader, inFlight); err != nil {
			return err
		}
	}
	return nil
}
