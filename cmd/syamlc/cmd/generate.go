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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"superyaml.dev/go/syaml"
)

func newGenerateCmd() *cobra.Command {
	var target string
	c := &cobra.Command{
		Use:   "generate FILE",
		Short: "build the schema registry and emit type definitions for a target language",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := args[0]
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			dir := filepath.Dir(path)
			text := string(raw)

			var out string
			switch target {
			case "rust":
				out, err = syaml.GenerateRustTypesAt(text, dir)
			case "typescript":
				out, err = syaml.GenerateTypeScriptTypesAt(text, dir)
			case "proto":
				out, err = syaml.GenerateProtoTypesAt(text, dir)
			default:
				return fmt.Errorf("unknown --target %q: must be one of rust, typescript, proto", target)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(c.OutOrStdout(), out)
			return nil
		},
	}
	c.Flags().StringVar(&target, "target", "", "target language: rust, typescript, or proto")
	c.MarkFlagRequired("target")
	return c
}
