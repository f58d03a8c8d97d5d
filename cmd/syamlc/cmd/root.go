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

// Package cmd wires the syamlc subcommands onto a cobra root command so
// each subcommand's run function returns an error and lets cobra print
// usage help alongside it.
package cmd

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "syamlc",
		Short:         "compile, validate and generate types from superset-YAML documents",
		SilenceUsage:  false,
		SilenceErrors: false,
	}
	root.AddCommand(newCompileCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newGenerateCmd())
	return root
}

// Execute runs the syamlc command tree, returning a non-nil error on any
// failure (cobra has already printed the error and usage help to stderr).
func Execute() error {
	return newRootCmd().Execute()
}

// Main runs the syamlc command tree and returns the code for passing to
// os.Exit. It is the entry point testscript.RunMain re-execs as a child
// process when a script's exec line names "syamlc".
func Main() int {
	if err := Execute(); err != nil {
		return 1
	}
	return 0
}
