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
	"testing"

	"github.com/go-quicktest/qt"

	"superyaml.dev/go/internal/value"
)

func TestValidateIntegerRange(t *testing.T) {
	min := value.NewInt(1)
	max := value.NewInt(65535)
	s := &Schema{Kind: KindInteger, Minimum: &min, Maximum: &max}
	r := NewRegistry()

	err := Validate(value.Value{}, value.NewInt(8080), s, r, nil, value.Root())
	qt.Assert(t, qt.IsNil(err))

	err = Validate(value.Value{}, value.NewInt(0), s, r, nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "below minimum"))

	err = Validate(value.Value{}, value.NewInt(70000), s, r, nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "above maximum"))
}

func TestValidateIntegerWrongKind(t *testing.T) {
	s := &Schema{Kind: KindInteger}
	err := Validate(value.Value{}, value.NewString("nope"), s, NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "expected integer"))
}

func TestValidateEnum(t *testing.T) {
	s := &Schema{Kind: KindString, Enum: []value.Value{value.NewString("a"), value.NewString("b")}}
	r := NewRegistry()

	qt.Assert(t, qt.IsNil(Validate(value.Value{}, value.NewString("a"), s, r, nil, value.Root())))

	err := Validate(value.Value{}, value.NewString("c"), s, r, nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "not a member"))
}

func TestValidateArrayBounds(t *testing.T) {
	min, max := 1, 2
	s := &Schema{Kind: KindArray, Items: &Schema{Kind: KindInteger}, MinItems: &min, MaxItems: &max}
	r := NewRegistry()

	arr := value.NewArray([]value.Value{value.NewInt(1)})
	qt.Assert(t, qt.IsNil(Validate(value.Value{}, arr, s, r, nil, value.Root())))

	empty := value.NewArray(nil)
	err := Validate(value.Value{}, empty, s, r, nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "fewer than"))

	tooMany := value.NewArray([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)})
	err = Validate(value.Value{}, tooMany, s, r, nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "more than"))
}

func TestValidateArrayElementError(t *testing.T) {
	s := &Schema{Kind: KindArray, Items: &Schema{Kind: KindInteger}}
	arr := value.NewArray([]value.Value{value.NewInt(1), value.NewString("bad")})
	err := Validate(value.Value{}, arr, s, NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "$[1]"))
}

func objectSchema() *Schema {
	return &Schema{
		Kind: KindObject,
		Properties: []Property{
			{Name: "name", Type: &Schema{Kind: KindString}},
			{Name: "port", Type: &Schema{Kind: KindInteger}},
		},
		Required: []string{"name"},
	}
}

func TestValidateObjectRequiredMissing(t *testing.T) {
	m := value.NewMap()
	m.Set("port", value.NewInt(8080))
	err := Validate(value.Value{}, value.NewObject(m), objectSchema(), NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "missing required property 'name'"))
}

func TestValidateObjectUnknownPropertyRejected(t *testing.T) {
	m := value.NewMap()
	m.Set("name", value.NewString("svc"))
	m.Set("extra", value.NewBool(true))
	err := Validate(value.Value{}, value.NewObject(m), objectSchema(), NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "unknown property 'extra'"))
}

func TestValidateObjectOpenRecordAllowsExtraKeys(t *testing.T) {
	s := &Schema{
		Kind:     KindObject,
		Required: []string{"name"},
		Properties: []Property{
			{Name: "name", Type: &Schema{Kind: KindString}},
		},
		Values: &Schema{Kind: KindString},
	}
	m := value.NewMap()
	m.Set("name", value.NewString("svc"))
	m.Set("region", value.NewString("us-east"))
	err := Validate(value.Value{}, value.NewObject(m), s, NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNil(err))
}

func TestValidateObjectOpenRecordValidatesExtraValues(t *testing.T) {
	s := &Schema{
		Kind:   KindObject,
		Values: &Schema{Kind: KindInteger},
	}
	m := value.NewMap()
	m.Set("a", value.NewString("not an int"))
	err := Validate(value.Value{}, value.NewObject(m), s, NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestValidateNestedObjectFieldError(t *testing.T) {
	m := value.NewMap()
	m.Set("name", value.NewString("svc"))
	m.Set("port", value.NewString("not an int"))
	err := Validate(value.Value{}, value.NewObject(m), objectSchema(), NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "$.port"))
}

func TestValidateFollowsNamedRef(t *testing.T) {
	r := NewRegistry()
	r.AddLocal(map[string]*Schema{"Port": {Kind: KindInteger}})
	s := &Schema{Kind: KindNamedRef, Ref: "Port"}

	qt.Assert(t, qt.IsNil(Validate(value.Value{}, value.NewInt(80), s, r, nil, value.Root())))
	err := Validate(value.Value{}, value.NewString("nope"), s, r, nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestValidateConstraintExpression(t *testing.T) {
	s := &Schema{Kind: KindInteger, Constraints: []string{"value > 0"}}
	qt.Assert(t, qt.IsNil(Validate(value.Value{}, value.NewInt(5), s, NewRegistry(), nil, value.Root())))

	err := Validate(value.Value{}, value.NewInt(-1), s, NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "constraint violation"))
}

func TestValidateConstraintNonBooleanIsError(t *testing.T) {
	s := &Schema{Kind: KindInteger, Constraints: []string{"value + 1"}}
	err := Validate(value.Value{}, value.NewInt(5), s, NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "did not evaluate to a boolean"))
}

func TestValidateConstraintReferencesSiblingField(t *testing.T) {
	s := &Schema{
		Kind: KindObject,
		Properties: []Property{
			{Name: "min", Type: &Schema{Kind: KindInteger}},
			{Name: "max", Type: &Schema{Kind: KindInteger, Constraints: []string{"value > min"}}},
		},
	}
	m := value.NewMap()
	m.Set("min", value.NewInt(10))
	m.Set("max", value.NewInt(5))
	err := Validate(value.Value{}, value.NewObject(m), s, NewRegistry(), nil, value.Root())
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "constraint violation"))

	m2 := value.NewMap()
	m2.Set("min", value.NewInt(1))
	m2.Set("max", value.NewInt(5))
	qt.Assert(t, qt.IsNil(Validate(value.Value{}, value.NewObject(m2), s, NewRegistry(), nil, value.Root())))
}
