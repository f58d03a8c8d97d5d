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
	"testing"

	"github.com/go-quicktest/qt"

	"superyaml.dev/go/internal/value"
)

func TestParseDocumentVersionAndSections(t *testing.T) {
	text := `---!v1
---front_matter
env:
  - name: port
    key: PORT
    required: true
---schema
Port:
  kind: integer
---data
port: 8080
`
	doc, err := ParseDocument(text)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(doc.Version, "v1"))
	qt.Assert(t, qt.HasLen(doc.EnvBindings, 1))
	qt.Assert(t, qt.Equals(doc.EnvBindings[0].Name, "port"))
	qt.Assert(t, qt.IsTrue(doc.EnvBindings[0].Required))

	port, ok := value.Get(doc.DataSection, value.Root().Field("port"))
	qt.Assert(t, qt.IsTrue(ok))
	n, _ := port.Int64()
	qt.Assert(t, qt.Equals(n, int64(8080)))
}

func TestParseDocumentMetaIsAcceptedAsPreamble(t *testing.T) {
	text := `---meta
env:
  - name: debug
---data
flag: true
`
	doc, err := ParseDocument(text)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(doc.EnvBindings, 1))
}

func TestParseDocumentRejectsBothFrontMatterAndMeta(t *testing.T) {
	text := `---front_matter
env: []
---meta
env: []
---data
a: 1
`
	_, err := ParseDocument(text)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "front_matter"))
}

func TestParseDocumentImports(t *testing.T) {
	text := `---front_matter
imports:
  shared: ./shared.syaml
---data
a: 1
`
	doc, err := ParseDocument(text)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(doc.Imports, 1))
	qt.Assert(t, qt.Equals(doc.Imports[0].Alias, "shared"))
	qt.Assert(t, qt.Equals(doc.Imports[0].Path, "./shared.syaml"))
}

func TestParseDocumentWithNoSectionsIsAllNull(t *testing.T) {
	doc, err := ParseDocument("")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(doc.SchemaSection.Kind(), value.Null))
	qt.Assert(t, qt.Equals(doc.DataSection.Kind(), value.Null))
}

func TestParseDocumentEnvEntryMissingNameErrors(t *testing.T) {
	text := `---front_matter
env:
  - key: PORT
---data
a: 1
`
	_, err := ParseDocument(text)
	qt.Assert(t, qt.IsNotNil(err))
}
