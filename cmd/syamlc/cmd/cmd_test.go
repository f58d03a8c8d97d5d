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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
)

const sampleDoc = `---schema
Port:
  kind: integer
  minimum: 1
  maximum: 65535
---data
name: svc
port <Port>: 8080
`

func writeSample(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.syaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(text), 0o644)))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCompileCommandPrintsResolvedYAML(t *testing.T) {
	path := writeSample(t, sampleDoc)
	out, err := run(t, "compile", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "name: svc"))
}

func TestValidateCommandPrintsOk(t *testing.T) {
	path := writeSample(t, sampleDoc)
	out, err := run(t, "validate", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "ok"))
}

func TestValidateCommandFailsOnOutOfRangeValue(t *testing.T) {
	path := writeSample(t, `---schema
Port:
  kind: integer
  minimum: 1
  maximum: 65535
---data
port <Port>: 99999
`)
	_, err := run(t, "validate", path)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestGenerateCommandRequiresTarget(t *testing.T) {
	path := writeSample(t, sampleDoc)
	_, err := run(t, "generate", path)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestGenerateCommandEmitsTypeScript(t *testing.T) {
	path := writeSample(t, sampleDoc)
	out, err := run(t, "generate", path, "--target=typescript")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "Port"))
}

func TestGenerateCommandRejectsUnknownTarget(t *testing.T) {
	path := writeSample(t, sampleDoc)
	_, err := run(t, "generate", path, "--target=cobol")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCompileCommandMissingFileErrors(t *testing.T) {
	_, err := run(t, "compile", "/nonexistent/doc.syaml")
	qt.Assert(t, qt.IsNotNil(err))
}
