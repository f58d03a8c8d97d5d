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

package rust

import (
	"testing"

	"github.com/go-quicktest/qt"

	"superyaml.dev/go/internal/schema"
	"superyaml.dev/go/internal/value"
)

func TestGenerateStructWithOptionalField(t *testing.T) {
	r := schema.NewRegistry()
	r.AddLocal(map[string]*schema.Schema{
		"Service": {
			Kind: schema.KindObject,
			Properties: []schema.Property{
				{Name: "name", Type: &schema.Schema{Kind: schema.KindString}},
				{Name: "port", Type: &schema.Schema{Kind: schema.KindInteger}},
			},
			Required: []string{"name"},
		},
	})
	out, err := Generate(r)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "#[derive(Debug, Clone, serde::Serialize, serde::Deserialize)]"))
	qt.Assert(t, qt.StringContains(out, "pub struct Service {"))
	qt.Assert(t, qt.StringContains(out, "pub name: String,"))
	qt.Assert(t, qt.StringContains(out, "pub port: Option<i64>,"))
}

func TestGenerateEnumWithRenameAttribute(t *testing.T) {
	r := schema.NewRegistry()
	r.AddLocal(map[string]*schema.Schema{
		"Color": {Kind: schema.KindEnum, Enum: []value.Value{value.NewString("dark-blue")}},
	})
	out, err := Generate(r)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, `#[serde(rename = "dark-blue")]`))
	qt.Assert(t, qt.StringContains(out, "DarkBlue,"))
}

func TestGenerateTypeAliasForScalarType(t *testing.T) {
	r := schema.NewRegistry()
	r.AddLocal(map[string]*schema.Schema{"Port": {Kind: schema.KindInteger}})
	out, err := Generate(r)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "pub type Port = i64;"))
}

func TestGenerateArrayFieldRendersVec(t *testing.T) {
	r := schema.NewRegistry()
	r.AddLocal(map[string]*schema.Schema{
		"Service": {
			Kind: schema.KindObject,
			Properties: []schema.Property{
				{Name: "tags", Type: &schema.Schema{Kind: schema.KindArray, Items: &schema.Schema{Kind: schema.KindString}}},
			},
			Required: []string{"tags"},
		},
	})
	out, err := Generate(r)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "pub tags: Vec<String>,"))
}
