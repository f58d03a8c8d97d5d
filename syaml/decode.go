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

package syaml

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	serrors "superyaml.dev/go/internal/errors"
	"superyaml.dev/go/internal/value"
)

// decodeYAML decodes raw YAML section text directly into a value.Value tree,
// skipping an intermediate map[string]interface{} hop the way
// internal/encoding/yaml decodes straight into its own AST.
func decodeYAML(raw string) (value.Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &n); err != nil {
		return value.Value{}, serrors.New(serrors.Document, "invalid YAML: %s", err)
	}
	if len(n.Content) == 0 {
		return value.NewNull(), nil
	}
	return nodeToValue(n.Content[0])
}

func nodeToValue(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.NewNull(), nil
		}
		return nodeToValue(n.Content[0])
	case yaml.MappingNode:
		return mappingToValue(n)
	case yaml.SequenceNode:
		return sequenceToValue(n)
	case yaml.ScalarNode:
		return scalarToValue(n)
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	default:
		return value.Value{}, serrors.New(serrors.Document, "unsupported YAML node kind")
	}
}

func mappingToValue(n *yaml.Node) (value.Value, error) {
	m := value.NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		key := keyNode.Value
		v, err := nodeToValue(valNode)
		if err != nil {
			return value.Value{}, err
		}
		m.Set(key, v)
	}
	return value.NewObject(m), nil
}

func sequenceToValue(n *yaml.Node) (value.Value, error) {
	elems := make([]value.Value, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := nodeToValue(c)
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, v)
	}
	return value.NewArray(elems), nil
}

func scalarToValue(n *yaml.Node) (value.Value, error) {
	tag := n.ShortTag()
	switch tag {
	case "!!null":
		return value.NewNull(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return value.Value{}, serrors.New(serrors.Document, "invalid boolean %q", n.Value)
		}
		return value.NewBool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(strings.TrimPrefix(n.Value, "+"), 0, 64)
		if err != nil {
			return value.Value{}, serrors.New(serrors.Document, "invalid integer %q", n.Value)
		}
		return value.NewInt(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return value.Value{}, serrors.New(serrors.Document, "invalid float %q", n.Value)
		}
		return value.NewFloat(f), nil
	case "!!str", "!!timestamp", "!!binary":
		return value.NewString(n.Value), nil
	default:
		return value.NewString(n.Value), nil
	}
}

// wrapSection annotates a section-decode error with the section name it
// came from ("section %q: %s").
func wrapSection(name string, err error) error {
	return fmt.Errorf("section %q: %w", name, err)
}
