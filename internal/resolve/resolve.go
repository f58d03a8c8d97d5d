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

// Package resolve implements the expression resolver: it walks
// the decoded data tree, locates expression-bearing leaves, and iteratively
// drives them to fixpoint using package eval, detecting cycles.
package resolve

import (
	"superyaml.dev/go/internal/eval"
	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/parser"
	"superyaml.dev/go/internal/value"
)

// maxPasses bounds the fixpoint loop. An acyclic graph resolves in at most
// one pass per dependency-chain node; this cap is a
// defensive backstop, not a feature.
const maxPasses = 10000

// item is one expression-bearing leaf found during a pass.
type item struct {
	path value.Path
	kind leafKind
	body string   // fullReplacement
	spans []span  // interpolated
	orig string    // original string, for buildInterpolated
}

// Resolve drives data to fixpoint against env. It returns the fully-literal
// tree, or a *serrors.Error (Resolution or Parse kind).
func Resolve(data value.Value, env map[string]value.Value) (value.Value, error) {
	root := data
	for pass := 0; pass < maxPasses; pass++ {
		items, unresolvedSet := collect(root)
		if len(items) == 0 {
			return root, nil
		}

		type update struct {
			path value.Path
			val  value.Value
		}
		var updates []update
		progressed := false

		for _, it := range items {
			mask := maskExcept(unresolvedSet, it.path.String())
			ctx := &eval.Context{Data: root, Env: env, UnresolvedPaths: mask}
			v, resolved, err := evalItem(it, ctx)
			if err != nil {
				return value.Value{}, err
			}
			if resolved {
				updates = append(updates, update{it.path, v})
				progressed = true
			}
		}

		if !progressed {
			return value.Value{}, diagnoseStall(root, env, items, unresolvedSet)
		}

		for _, u := range updates {
			var ok bool
			root, ok = value.Set(root, u.path, u.val)
			if !ok {
				return value.Value{}, serrors.At(serrors.Resolution, u.path.String(), "internal error: failed to apply resolved value")
			}
		}
	}
	return value.Value{}, serrors.New(serrors.Resolution, "resolution did not converge after %d passes", maxPasses)
}

// collect enumerates every expression-bearing leaf in root along with the JSON-path set used for masking.
func collect(root value.Value) ([]item, map[string]bool) {
	var items []item
	set := map[string]bool{}
	for _, lf := range value.Leaves(root) {
		if lf.Value.Kind() != value.String {
			continue
		}
		kind, body, spans := classify(lf.Value.Str())
		if kind == notExpr {
			continue
		}
		items = append(items, item{path: lf.Path, kind: kind, body: body, spans: spans, orig: lf.Value.Str()})
		set[lf.Path.String()] = true
	}
	return items, set
}

func maskExcept(set map[string]bool, except string) map[string]bool {
	mask := make(map[string]bool, len(set))
	for p := range set {
		if p != except {
			mask[p] = true
		}
	}
	return mask
}

// evalItem evaluates a single expression-bearing leaf once. resolved is
// true iff it produced a literal replacement value this pass; err is
// non-nil only for Fatal failures.
func evalItem(it item, ctx *eval.Context) (val value.Value, resolved bool, err error) {
	switch it.kind {
	case fullReplacement:
		expr, perr := parser.Parse(it.body)
		if perr != nil {
			return value.Value{}, false, serrors.At(serrors.Parse, it.path.String(), "%s", perr)
		}
		v, everr := eval.Evaluate(expr, ctx)
		if everr != nil {
			if _, ok := eval.IsUnresolved(everr); ok {
				return value.Value{}, false, nil
			}
			return value.Value{}, false, serrors.At(serrors.Resolution, it.path.String(), "%s", everr)
		}
		return v, true, nil

	case interpolated:
		results := make([]value.Value, len(it.spans))
		for i, sp := range it.spans {
			expr, perr := parser.Parse(sp.body)
			if perr != nil {
				return value.Value{}, false, serrors.At(serrors.Parse, it.path.String(), "%s", perr)
			}
			v, everr := eval.Evaluate(expr, ctx)
			if everr != nil {
				if _, ok := eval.IsUnresolved(everr); ok {
					return value.Value{}, false, nil
				}
				return value.Value{}, false, serrors.At(serrors.Resolution, it.path.String(), "%s", everr)
			}
			results[i] = v
		}
		return buildInterpolated(it.orig, it.spans, results), true, nil
	}
	return value.Value{}, false, serrors.At(serrors.Resolution, it.path.String(), "internal error: unknown leaf kind")
}

// diagnoseStall handles the case where a pass changes nothing: every
// remaining expression-bearing leaf is either cyclic or references
// something that doesn't exist. Re-evaluate each leaf with the full
// unresolved set masked (not excluding its own path) to surface the true
// error.
func diagnoseStall(root value.Value, env map[string]value.Value, items []item, unresolvedSet map[string]bool) error {
	for _, it := range items {
		ctx := &eval.Context{Data: root, Env: env, UnresolvedPaths: unresolvedSet}
		var body string
		if it.kind == fullReplacement {
			body = it.body
		} else if len(it.spans) > 0 {
			body = it.spans[0].body
		} else {
			continue
		}
		expr, perr := parser.Parse(body)
		if perr != nil {
			return serrors.At(serrors.Parse, it.path.String(), "%s", perr)
		}
		_, everr := eval.Evaluate(expr, ctx)
		if everr == nil {
			continue
		}
		if blocked, ok := eval.IsUnresolved(everr); ok {
			if unresolvedSet[blocked] {
				return serrors.At(serrors.Resolution, it.path.String(), "possible dependency cycle detected at %s", it.path.String())
			}
		}
		return serrors.At(serrors.Resolution, it.path.String(), "%s", everr)
	}
	// Should not normally happen: every item failed the same way on this
	// extra pass as it did during the normal pass, which already reported
	// no Fatal error. Fall back to a generic cycle report naming the first
	// stalled leaf.
	return serrors.At(serrors.Resolution, items[0].path.String(), "possible dependency cycle detected at %s", items[0].path.String())
}
