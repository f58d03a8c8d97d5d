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
	"strings"

	"superyaml.dev/go/internal/value"
)

// ParseLabel splits a data-section mapping key of the form "name <TypeRef>"
// into its bare name and its type reference, recognizing a trailing `<...>`
// suffix annotation the same way a struct field label's trailing `?`
// optionality marker is recognized and stripped before the bare name is used.
func ParseLabel(raw string) (name string, typeRef string, hasType bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasSuffix(trimmed, ">") {
		return trimmed, "", false
	}
	open := strings.LastIndexByte(trimmed, '<')
	if open < 0 {
		return trimmed, "", false
	}
	name = strings.TrimSpace(trimmed[:open])
	typeRef = strings.TrimSpace(trimmed[open+1 : len(trimmed)-1])
	if name == "" || typeRef == "" {
		return trimmed, "", false
	}
	return name, typeRef, true
}

// SplitTypedKeys rewrites m's keys to their bare (annotation-stripped) form
// and returns the name-to-TypeRef map gathered along the way, so a data
// section written with inline `name <TypeRef>: value` entries decodes to a
// plain value.Map plus a side table the registry can consult.
func SplitTypedKeys(m *value.Map) (clean *value.Map, types map[string]string) {
	clean = value.NewMap()
	types = map[string]string{}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		name, ref, ok := ParseLabel(key)
		if ok {
			types[name] = ref
		}
		clean.Set(name, v)
	}
	return clean, types
}
