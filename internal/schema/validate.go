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
	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/eval"
	"superyaml.dev/go/internal/value"
)

// Validate checks candidate v, found at path within root, against schema
// node s using registry to resolve named-refs.
func Validate(root value.Value, v value.Value, s *Schema, registry *Registry, env map[string]value.Value, path value.Path) error {
	concrete, err := registry.Resolve(s)
	if err != nil {
		return annotate(err, path)
	}

	if err := validateShape(root, v, concrete, registry, env, path); err != nil {
		return err
	}
	return validateConstraints(root, v, concrete, env, path, nil)
}

func annotate(err error, path value.Path) error {
	if e, ok := err.(*serrors.Error); ok && e.Path == "" {
		return serrors.At(e.Kind, path.String(), "%s", e.Msg)
	}
	return err
}

func validateShape(root, v value.Value, s *Schema, registry *Registry, env map[string]value.Value, path value.Path) error {
	switch s.Kind {
	case KindInteger:
		if v.Kind() != value.Int {
			return serrors.At(serrors.Type, path.String(), "expected integer, got %s", v.Kind())
		}
		return checkRange(v, s, path)
	case KindNumber:
		if v.Kind() != value.Int && v.Kind() != value.Float {
			return serrors.At(serrors.Type, path.String(), "expected number, got %s", v.Kind())
		}
		return checkRange(v, s, path)
	case KindString:
		if v.Kind() != value.String {
			return serrors.At(serrors.Type, path.String(), "expected string, got %s", v.Kind())
		}
		return checkEnum(v, s, path)
	case KindBoolean:
		if v.Kind() != value.Bool {
			return serrors.At(serrors.Type, path.String(), "expected boolean, got %s", v.Kind())
		}
		return nil
	case KindEnum:
		return checkEnum(v, s, path)
	case KindArray:
		return validateArray(root, v, s, registry, env, path)
	case KindObject:
		return validateObject(root, v, s, registry, env, path)
	default:
		return serrors.At(serrors.Type, path.String(), "unresolvable schema kind")
	}
}

func checkRange(v value.Value, s *Schema, path value.Path) error {
	if s.Minimum != nil {
		lt, err := value.Less(v, *s.Minimum)
		if err == nil && lt {
			return serrors.At(serrors.Range, path.String(), "value is below minimum")
		}
	}
	if s.Maximum != nil {
		lt, err := value.Less(*s.Maximum, v)
		if err == nil && lt {
			return serrors.At(serrors.Range, path.String(), "value is above maximum")
		}
	}
	return nil
}

func checkEnum(v value.Value, s *Schema, path value.Path) error {
	if len(s.Enum) == 0 {
		return nil
	}
	for _, e := range s.Enum {
		if value.Equal(v, e) {
			return nil
		}
	}
	return serrors.At(serrors.Enum, path.String(), "value is not a member of the declared enum")
}

func validateArray(root, v value.Value, s *Schema, registry *Registry, env map[string]value.Value, path value.Path) error {
	if v.Kind() != value.Array {
		return serrors.At(serrors.Type, path.String(), "expected array, got %s", v.Kind())
	}
	elems := v.Elems()
	if s.MinItems != nil && len(elems) < *s.MinItems {
		return serrors.At(serrors.Range, path.String(), "array has fewer than %d items", *s.MinItems)
	}
	if s.MaxItems != nil && len(elems) > *s.MaxItems {
		return serrors.At(serrors.Range, path.String(), "array has more than %d items", *s.MaxItems)
	}
	if s.Items != nil {
		for i, e := range elems {
			if err := Validate(root, e, s.Items, registry, env, path.Index(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateObject(root, v value.Value, s *Schema, registry *Registry, env map[string]value.Value, path value.Path) error {
	if v.Kind() != value.Object {
		return serrors.At(serrors.Type, path.String(), "expected object, got %s", v.Kind())
	}
	obj := v.Map()

	for _, req := range s.Required {
		if !obj.Has(req) {
			return serrors.At(serrors.Required, path.Field(req).String(), "missing required property '%s'", req)
		}
	}

	declared := s.RequiredSet()
	for _, prop := range s.Properties {
		declared[prop.Name] = true
		child, ok := obj.Get(prop.Name)
		if !ok {
			continue // absence already checked above via Required
		}
		childPath := path.Field(prop.Name)
		concrete, err := registry.Resolve(prop.Type)
		if err != nil {
			return annotate(err, childPath)
		}
		// Constraints run once, with the enclosing object as scope, so a
		// constraint may name sibling properties.
		if err := validateShape(root, child, concrete, registry, env, childPath); err != nil {
			return err
		}
		if err := validateConstraints(root, child, concrete, env, childPath, &v); err != nil {
			return err
		}
	}

	if s.Values == nil {
		for _, key := range obj.Keys() {
			if !declared[key] {
				return serrors.At(serrors.Type, path.Field(key).String(), "unknown property '%s'", key)
			}
		}
	} else {
		for _, key := range obj.Keys() {
			if declared[key] {
				continue
			}
			child, _ := obj.Get(key)
			if err := Validate(root, child, s.Values, registry, env, path.Field(key)); err != nil {
				return err
			}
		}
	}
	return nil
}

func mustResolve(s *Schema, registry *Registry) *Schema {
	concrete, err := registry.Resolve(s)
	if err != nil {
		return s
	}
	return concrete
}

// validateConstraints evaluates s's own constraint expressions against
// candidate v. scope, when non-nil, is the
// enclosing object used for sibling-field references via value.name.
func validateConstraints(root, v value.Value, s *Schema, env map[string]value.Value, path value.Path, scope *value.Value) error {
	if len(s.Constraints) == 0 {
		return nil
	}
	exprs, err := s.ConstraintExprs()
	if err != nil {
		return annotate(err, path)
	}
	for i, expr := range exprs {
		ctx := &eval.Context{
			Data:         root,
			Env:          env,
			CurrentValue: &v,
			CurrentScope: scope,
		}
		result, everr := eval.Evaluate(expr, ctx)
		if everr != nil {
			return serrors.At(serrors.Constraint, path.String(), "%s", everr)
		}
		if result.Kind() != value.Bool {
			return serrors.At(serrors.Constraint, path.String(), "constraint did not evaluate to a boolean")
		}
		if !result.Bool() {
			return serrors.At(serrors.Constraint, path.String(), "constraint violation at %s: %s", path.String(), s.Constraints[i])
		}
	}
	return nil
}
