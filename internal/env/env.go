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

// Package env implements the env resolver: it reads the
// preamble's env-binding declarations, queries an env Provider, applies
// defaults and required-ness, and produces a finalized env map.
package env

import (
	"os"
	"strconv"

	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/value"
)

// Provider is the env-provider capability: lookup(key) -> Option<String>.
type Provider interface {
	Lookup(key string) (string, bool)
}

// ProcessProvider backs Provider with the real process environment.
type ProcessProvider struct{}

func (ProcessProvider) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// MapProvider backs Provider with an in-memory map, for testing.
type MapProvider map[string]string

func (m MapProvider) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Binding is an env binding declaration.
type Binding struct {
	Name     string
	Key      string
	Required bool
	Default  *value.Value
}

// Resolve produces the finalized env map for a set of declarations,
// applying provider lookups, defaults and required-ness checks.
func Resolve(bindings []Binding, provider Provider) (map[string]value.Value, error) {
	result := make(map[string]value.Value, len(bindings))
	var errs serrors.List
	for _, b := range bindings {
		v, err := resolveOne(b, provider)
		if err != nil {
			errs.Add(err)
			continue
		}
		result[b.Name] = v
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func resolveOne(b Binding, provider Provider) (value.Value, error) {
	raw, present := provider.Lookup(b.Key)
	if present {
		return parseLiteral(raw), nil
	}
	if b.Default != nil {
		return *b.Default, nil
	}
	if b.Required {
		return value.Value{}, serrors.New(serrors.Env, "missing required environment variable '%s'", b.Key)
	}
	return value.NewNull(), nil
}

// parseLiteral parses a raw environment string using JSON-like literal
// rules: a valid integer parses as integer, a valid decimal as float,
// true/false as boolean, null as null, otherwise as string.
func parseLiteral(raw string) value.Value {
	switch raw {
	case "true":
		return value.NewBool(true)
	case "false":
		return value.NewBool(false)
	case "null":
		return value.NewNull()
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return value.NewInt(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.NewFloat(f)
	}
	return value.NewString(raw)
}
