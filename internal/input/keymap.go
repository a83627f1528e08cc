package input

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultKeymap is the built-in keymap document, loaded before any user
// override.
//
//go:embed default.yml
var DefaultKeymap []byte

// ErrModeKeyNotString is returned when a top-level keymap entry is not a
// string.
var ErrModeKeyNotString = errors.New("a mode key couldn't be parsed as a string")

// KeyMap resolves a mode name and key to the commands bound to it.
type KeyMap[C any] map[string]map[Key][]C

// Lookup resolves a command name to a command.
type Lookup[C any] func(name string) (C, bool)

// CommandsFor returns the sequence bound to key in mode. Character keys
// without their own binding fall back to the mode's wildcard binding.
func (m KeyMap[C]) CommandsFor(mode string, key Key) ([]C, bool) {
	bindings, ok := m[mode]
	if !ok {
		return nil, false
	}
	if cmds, ok := bindings[key]; ok {
		return cmds, true
	}
	if key.Kind == KeyChar {
		cmds, ok := bindings[Special(KeyAnyChar)]
		return cmds, ok
	}
	return nil, false
}

// Merge copies bindings from other into m, overwriting individual keys.
// Modes that m does not already have are ignored.
func (m KeyMap[C]) Merge(other KeyMap[C]) {
	for mode, bindings := range other {
		target, ok := m[mode]
		if !ok {
			continue
		}
		for key, cmds := range bindings {
			target[key] = cmds
		}
	}
}

// FromYAML builds a keymap from a document mapping mode names to key
// specifiers, each bound to a command name or a list of command names.
func FromYAML[C any](data []byte, lookup Lookup[C]) (KeyMap[C], error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	km := KeyMap[C]{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return km, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("keymap must be a mapping of modes")
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		modeNode, bindingsNode := doc.Content[i], doc.Content[i+1]
		if modeNode.Kind != yaml.ScalarNode || modeNode.Tag != "!!str" {
			return nil, ErrModeKeyNotString
		}
		mode := modeNode.Value
		bindings, err := parseBindings(bindingsNode, lookup)
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", mode, err)
		}
		km[mode] = bindings
	}
	return km, nil
}

func parseBindings[C any](node *yaml.Node, lookup Lookup[C]) (map[Key][]C, error) {
	bindings := map[Key][]C{}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return bindings, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("bindings must be a mapping of keys")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, cmdNode := node.Content[i], node.Content[i+1]
		key, err := ParseKey(keyNode.Value)
		if err != nil {
			return nil, err
		}

		var names []string
		switch cmdNode.Kind {
		case yaml.ScalarNode:
			names = []string{cmdNode.Value}
		case yaml.SequenceNode:
			if err := cmdNode.Decode(&names); err != nil {
				return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
			}
		default:
			return nil, fmt.Errorf("key %q: expected a command name or list", keyNode.Value)
		}

		cmds := make([]C, 0, len(names))
		for _, name := range names {
			cmd, ok := lookup(name)
			if !ok {
				return nil, fmt.Errorf("keymap command %q doesn't exist", name)
			}
			cmds = append(cmds, cmd)
		}
		bindings[key] = cmds
	}
	return bindings, nil
}
