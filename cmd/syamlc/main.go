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

// Command syamlc reads a document file from disk and drives
// compile/validate/generate through package syaml.
package main

import (
	"os"

	"superyaml.dev/go/cmd/syamlc/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
