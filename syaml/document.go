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

// Package syaml is the document-level glue the core compiler needs but does
// not itself define: splitting a document's text into its preamble, schema
// and data sections, decoding each section's YAML body, and exposing the
// top-level Compile/Validate/Generate* entry points. It owns no validation
// semantics of its own — only section slicing, YAML decode and wiring.
package syaml

import (
	"strings"

	"superyaml.dev/go/internal/env"
	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/schema"
	"superyaml.dev/go/internal/value"
)

// Document is a parsed, section-split superset-YAML document, prior to env
// resolution, schema registry assembly or data resolution.
type Document struct {
	Version       string
	EnvBindings   []env.Binding
	Imports       []schema.ImportDecl
	SchemaSection value.Value // Null if the document has no schema section
	DataSection   value.Value // Null if the document has no data section
}

// ParseDocument splits document text on its marker lines and decodes each
// section's YAML body.
func ParseDocument(text string) (*Document, error) {
	lines := strings.Split(text, "\n")

	var version string
	sections := map[string]string{}
	var order []string
	current := ""
	var buf []string

	flush := func() {
		if current != "" {
			joined := strings.Join(buf, "\n")
			if existing, ok := sections[current]; ok {
				sections[current] = existing + "\n" + joined
			} else {
				sections[current] = joined
			}
		}
		buf = nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i == 0 && strings.HasPrefix(trimmed, "---!") {
			version = strings.TrimPrefix(trimmed, "---!")
			continue
		}
		if name, ok := markerName(trimmed); ok {
			flush()
			current = name
			order = append(order, name)
			continue
		}
		buf = append(buf, line)
	}
	flush()

	_, hasFrontMatter := sections["front_matter"]
	_, hasMeta := sections["meta"]
	if hasFrontMatter && hasMeta {
		return nil, serrors.New(serrors.Document, "document declares both 'front_matter' and 'meta'; only one preamble marker is allowed")
	}

	preambleRaw := sections["front_matter"]
	if preambleRaw == "" {
		preambleRaw = sections["meta"]
	}

	preamble, err := decodeYAML(preambleRaw)
	if err != nil {
		return nil, wrapSection("front_matter", err)
	}
	schemaVal, err := decodeYAML(sections["schema"])
	if err != nil {
		return nil, wrapSection("schema", err)
	}
	dataVal, err := decodeYAML(sections["data"])
	if err != nil {
		return nil, wrapSection("data", err)
	}

	bindings, err := decodeEnvBindings(preamble)
	if err != nil {
		return nil, err
	}
	imports, err := decodeImportDecls(preamble)
	if err != nil {
		return nil, err
	}

	return &Document{
		Version:       version,
		EnvBindings:   bindings,
		Imports:       imports,
		SchemaSection: schemaVal,
		DataSection:   dataVal,
	}, nil
}

// markerName recognizes a "---NAME" section marker line, where NAME is one
// of the four known section names.
func markerName(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "---") {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "---"))
	switch rest {
	case "front_matter", "meta", "schema", "data":
		return rest, true
	default:
		return "", false
	}
}

func decodeEnvBindings(preamble value.Value) ([]env.Binding, error) {
	if preamble.Kind() != value.Object {
		return nil, nil
	}
	raw, ok := preamble.Map().Get("env")
	if !ok || raw.Kind() == value.Null {
		return nil, nil
	}
	if raw.Kind() != value.Array {
		return nil, serrors.New(serrors.Document, "preamble 'env' must be a list of binding declarations")
	}
	var out []env.Binding
	for _, elem := range raw.Elems() {
		if elem.Kind() != value.Object {
			return nil, serrors.New(serrors.Document, "each 'env' entry must be a mapping")
		}
		m := elem.Map()
		name := getStr(m, "name")
		if name == "" {
			return nil, serrors.New(serrors.Document, "an 'env' entry is missing its 'name'")
		}
		key := getStr(m, "key")
		if key == "" {
			key = name
		}
		b := env.Binding{Name: name, Key: key, Required: getBool(m, "required")}
		if def, ok := m.Get("default"); ok {
			b.Default = &def
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeImportDecls(preamble value.Value) ([]schema.ImportDecl, error) {
	if preamble.Kind() != value.Object {
		return nil, nil
	}
	raw, ok := preamble.Map().Get("imports")
	if !ok || raw.Kind() == value.Null {
		return nil, nil
	}
	if raw.Kind() != value.Object {
		return nil, serrors.New(serrors.Document, "preamble 'imports' must be a mapping of alias to path")
	}
	var out []schema.ImportDecl
	for _, alias := range raw.Map().Keys() {
		v, _ := raw.Map().Get(alias)
		if v.Kind() != value.String {
			return nil, serrors.New(serrors.Document, "import '%s' must name a string path", alias)
		}
		out = append(out, schema.ImportDecl{Alias: alias, Path: v.Str()})
	}
	return out, nil
}

func getStr(m *value.Map, key string) string {
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
