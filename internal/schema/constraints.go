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
	"superyaml.dev/go/internal/ast"
	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/parser"
)

// parseConstraints parses each constraint source string independently with
// the same grammar.
func parseConstraints(sources []string) ([]ast.Expr, error) {
	exprs := make([]ast.Expr, 0, len(sources))
	for _, src := range sources {
		expr, err := parser.Parse(src)
		if err != nil {
			return nil, serrors.New(serrors.Parse, "%s", err)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}
