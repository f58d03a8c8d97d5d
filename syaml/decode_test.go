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

func TestDecodeYAMLScalarsAndCollections(t *testing.T) {
	v, err := decodeYAML(`
name: svc
port: 8080
ratio: 0.5
enabled: true
nothing: null
tags:
  - a
  - b
`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), value.Object))

	name, _ := v.Map().Get("name")
	qt.Assert(t, qt.Equals(name.Str(), "svc"))

	port, _ := v.Map().Get("port")
	n, _ := port.Int64()
	qt.Assert(t, qt.Equals(n, int64(8080)))

	ratio, _ := v.Map().Get("ratio")
	f, _ := ratio.Float64()
	qt.Assert(t, qt.Equals(f, 0.5))

	enabled, _ := v.Map().Get("enabled")
	qt.Assert(t, qt.IsTrue(enabled.Bool()))

	nothing, _ := v.Map().Get("nothing")
	qt.Assert(t, qt.Equals(nothing.Kind(), value.Null))

	tags, _ := v.Map().Get("tags")
	qt.Assert(t, qt.HasLen(tags.Elems(), 2))
}

func TestDecodeYAMLEmptyIsNull(t *testing.T) {
	v, err := decodeYAML("")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind(), value.Null))
}

func TestDecodeYAMLPreservesKeyOrder(t *testing.T) {
	v, err := decodeYAML("z: 1\na: 2\nm: 3\n")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v.Map().Keys(), []string{"z", "a", "m"}))
}

func TestDecodeYAMLInvalidSyntaxErrors(t *testing.T) {
	_, err := decodeYAML("key: [unterminated")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestEncodeYAMLRoundTripsKeyOrder(t *testing.T) {
	m := value.NewMap()
	m.Set("z", value.NewInt(1))
	m.Set("a", value.NewInt(2))
	out, err := EncodeYAML(value.NewObject(m))
	qt.Assert(t, qt.IsNil(err))

	back, err := decodeYAML(out)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(back.Map().Keys(), []string{"z", "a"}))
}
