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

	"golang.org/x/mod/semver"
)

// normalizeVersion prefixes a bare "1.2.3" with "v" so it is acceptable to
// golang.org/x/mod/semver, which requires the "v" prefix.
func normalizeVersion(v string) string {
	if v == "" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// CompareVersions compares two `since`/`deprecated`/`removed` markers.
// When both look like semver, golang.org/x/mod/semver is used; otherwise
// this falls back to plain lexicographic comparison, since not every
// project names its versions as semver.
func CompareVersions(a, b string) int {
	na, nb := normalizeVersion(a), normalizeVersion(b)
	if semver.IsValid(na) && semver.IsValid(nb) {
		return semver.Compare(na, nb)
	}
	return strings.Compare(a, b)
}

// IsLiveAt reports whether a field with the given since/removed markers is
// a live (emittable) field at targetVersion: its since marker (if any) must
// not be newer than targetVersion, and it must have no removed marker.
// The code generators do not call it; the proto emitter checks Removed
// directly.
func (s *Schema) IsLiveAt(targetVersion string) bool {
	if s.Removed != "" {
		return false
	}
	if s.Since == "" || targetVersion == "" {
		return true
	}
	return CompareVersions(s.Since, targetVersion) <= 0
}
