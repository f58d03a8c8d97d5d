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

package resolve

import "superyaml.dev/go/internal/value"

// span is one `${...}` interpolation span within a string, with byte
// offsets into the original string and the expression body between the
// markers.
type span struct {
	start, end int // [start,end) covers "${" through the matching "}"
	body       string
}

// leafKind classifies an expression-bearing leaf.
type leafKind int

const (
	notExpr leafKind = iota
	fullReplacement
	interpolated
)

// classify determines whether s is expression-bearing: a full-replacement
// expression (begins with '=') or an interpolated string (one or more
// balanced ${…} spans). Strings whose "${" is never closed are left
// untouched (not expression-bearing).
func classify(s string) (leafKind, string, []span) {
	if len(s) > 0 && s[0] == '=' {
		return fullReplacement, s[1:], nil
	}
	spans, ok := findSpans(s)
	if !ok || len(spans) == 0 {
		return notExpr, "", nil
	}
	return interpolated, "", spans
}

// findSpans scans s for ${…} spans with balanced braces. It returns
// ok=false if any "${" is never closed, so the caller leaves the string
// untouched.
func findSpans(s string) ([]span, bool) {
	var spans []span
	i := 0
	for i < len(s) {
		start := indexFrom(s, i, "${")
		if start < 0 {
			break
		}
		depth := 1
		j := start + 2
		for depth > 0 {
			if j >= len(s) {
				return nil, false
			}
			switch s[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		spans = append(spans, span{start: start, end: j, body: s[start+2 : j-1]})
		i = j
	}
	return spans, true
}

func indexFrom(s string, from int, sub string) int {
	if from > len(s) {
		return -1
	}
	idx := indexOf(s[from:], sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

// buildInterpolated reconstructs the resolved string: if the original
// string is exactly a single span with no surrounding text, the span's
// Value is returned directly (preserving its primitive type); otherwise
// every span is stringified with value.CanonicalString and concatenated
// with the surrounding literal text.
func buildInterpolated(original string, spans []span, results []value.Value) value.Value {
	if len(spans) == 1 && spans[0].start == 0 && spans[0].end == len(original) {
		return results[0]
	}
	var b []byte
	pos := 0
	for i, sp := range spans {
		b = append(b, original[pos:sp.start]...)
		b = append(b, value.CanonicalString(results[i])...)
		pos = sp.end
	}
	b = append(b, original[pos:]...)
	return value.NewString(string(b))
}
