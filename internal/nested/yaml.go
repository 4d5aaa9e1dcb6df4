package nested

import (
	"fmt"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"gopkg.in/yaml.v3"
)

// Document is the file form of a nested dictionary
type Document struct {
	Words yaml.Node `yaml:"words"`
	Help  yaml.Node `yaml:"help"`
}

// Parse decodes a YAML document with a "words" mapping and an optional
// "help" mapping. Key order in the file is kept.
func Parse(data []byte) (*SubTree, *Help, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, derrors.NewValidationError("", "invalid nested dictionary document", err)
	}

	words, err := SubTreeFromNode(&doc.Words)
	if err != nil {
		return nil, nil, err
	}
	help, err := HelpFromNode(&doc.Help)
	if err != nil {
		return nil, nil, err
	}
	return words, help, nil
}

// SubTreeFromNode converts a YAML mapping into a SubTree. Null values are
// leaves, mappings recurse and sequences of scalars are leaf sets.
func SubTreeFromNode(node *yaml.Node) (*SubTree, error) {
	return subTreeFromNode("words", node)
}

func subTreeFromNode(path string, node *yaml.Node) (*SubTree, error) {
	node = resolve(node)
	tree := NewSubTree()
	if isNull(node) {
		return tree, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(path, node, "expected a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		field := joinPath(path, key)
		value := resolve(node.Content[i+1])

		switch {
		case isNull(value):
			tree.Set(key, Leaf{})
		case value.Kind == yaml.MappingNode:
			sub, err := subTreeFromNode(field, value)
			if err != nil {
				return nil, err
			}
			tree.Set(key, sub)
		case value.Kind == yaml.SequenceNode:
			set := make(LeafSet, 0, len(value.Content))
			for _, item := range value.Content {
				item = resolve(item)
				if item.Kind != yaml.ScalarNode {
					return nil, nodeError(field, item, "set items must be scalars")
				}
				set = append(set, item.Value)
			}
			tree.Set(key, set)
		default:
			return nil, nodeError(field, value, "expected null, a mapping or a sequence")
		}
	}
	return tree, nil
}

// HelpFromNode converts a YAML mapping into a Help tree, following the
// layout described on HelpFromAny.
func HelpFromNode(node *yaml.Node) (*Help, error) {
	return helpFromNode("help", node)
}

func helpFromNode(path string, node *yaml.Node) (*Help, error) {
	node = resolve(node)
	h := &Help{}
	if isNull(node) {
		return h, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(path, node, "expected a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		field := joinPath(path, key)
		value := resolve(node.Content[i+1])

		switch {
		case isNull(value):
		case value.Kind == yaml.ScalarNode && key == helpKey:
			h.Text = value.Value
		case value.Kind == yaml.ScalarNode:
			h.Set(key, NewHelp(value.Value))
		case value.Kind == yaml.MappingNode:
			sub, err := helpFromNode(field, value)
			if err != nil {
				return nil, err
			}
			h.Set(key, sub)
		default:
			return nil, nodeError(field, value, "help must be a string or a mapping")
		}
	}
	return h, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func nodeError(field string, node *yaml.Node, message string) error {
	return derrors.NewValidationError(field, fmt.Sprintf("line %d: %s", node.Line, message), nil)
}
