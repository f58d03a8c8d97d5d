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
	"os"
	"path/filepath"

	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/schema"
)

// fsTypeLoader resolves import paths relative to baseDir by reading and
// section-splitting the sibling document, satisfying schema.TypeLoader. This
// is the real collaborator the schema package's registry assembly is
// deliberately decoupled from, so that package stays free of filesystem I/O.
type fsTypeLoader struct {
	baseDir string
}

// NewFileTypeLoader returns a schema.TypeLoader rooted at baseDir, the
// directory an import path like "./shared.syaml" is resolved against.
func NewFileTypeLoader(baseDir string) schema.TypeLoader {
	return &fsTypeLoader{baseDir: baseDir}
}

func (l *fsTypeLoader) LoadTypes(path string) (map[string]*schema.Schema, []schema.ImportDecl, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.baseDir, path)
	}
	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, nil, serrors.New(serrors.Import, "cannot read '%s': %s", full, err)
	}
	doc, err := ParseDocument(string(raw))
	if err != nil {
		return nil, nil, err
	}
	types, err := schema.DecodeTypes(doc.SchemaSection)
	if err != nil {
		return nil, nil, err
	}
	return types, doc.Imports, nil
}
