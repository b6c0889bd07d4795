// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     ast
// Description: JSON and YAML encodings of syntax trees
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package ast

import (
	"encoding/json"

	"github.com/msto63/toypeg/internal/token"
)

type nodeDoc struct {
	Kind     string        `json:"kind" yaml:"kind"`
	Children []interface{} `json:"children" yaml:"children"`
}

type leafDoc struct {
	Kind string         `json:"kind" yaml:"kind"`
	Text string         `json:"text" yaml:"text"`
	Pos  token.Position `json:"pos" yaml:"pos"`
}

// document converts f into plain structs with a stable field order
func document(f Fragment) interface{} {
	return Fold(f,
		func(n *Node) interface{} {
			children := make([]interface{}, 0, len(n.children))
			for _, c := range n.children {
				if c == nil {
					children = append(children, nil)
					continue
				}
				children = append(children, document(c))
			}
			return nodeDoc{Kind: n.kind.String(), Children: children}
		},
		func(l Leaf) interface{} {
			return leafDoc{Kind: l.Token.Kind.String(), Text: l.Token.Text, Pos: l.Token.Pos}
		},
	)
}

// MarshalJSON encodes the node as {"kind": ..., "children": [...]}
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(document(n))
}

// MarshalYAML implements yaml.Marshaler
func (n *Node) MarshalYAML() (interface{}, error) {
	return document(n), nil
}

// MarshalJSON encodes the leaf as {"kind": ..., "text": ..., "pos": {...}}
func (l Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(document(l))
}

// MarshalYAML implements yaml.Marshaler
func (l Leaf) MarshalYAML() (interface{}, error) {
	return document(l), nil
}
