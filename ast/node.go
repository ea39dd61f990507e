// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package ast lifts raw, untyped parser output into a schema-typed tree,
// numbers it in pre-order, and walks it.
package ast

import (
	"golang.org/x/exp/slices"

	"github.com/kannanvijayan-zz/ast-compress/schema"
)

// ChildKind tags the shape of a ChildSlot.
type ChildKind uint8

const (
	ChildNil ChildKind = iota
	ChildSingle
	ChildArray
)

// ChildSlot holds the value bound to one branch name: nothing (nil,
// permitted only when the branch is optional), a single child node, or an
// ordered array of child nodes (when the branch is declared Array).
type ChildSlot struct {
	Kind  ChildKind
	Node  *Node
	Nodes []*Node
}

// ParentEdge is a non-owning back-reference to the node that owns this
// node as a child. It is written exactly once, at construction time, and
// never owns the parent (§3).
type ParentEdge struct {
	Parent  *Node
	Branch  string
	Display string
}

// Attrs carries walk-assigned metadata: pre-order number (unique within
// one depth-first numbering) and depth (root = 0).
type Attrs struct {
	Number int
	Depth  int
}

// Node is a lifted, schema-typed tree node.
type Node struct {
	Type     *schema.Type
	Fields   map[string]Value
	Children map[string]ChildSlot
	Parent   ParentEdge
	Attrs    Attrs
}

// NewNode allocates a Node of the given type with empty field/child maps.
func NewNode(t *schema.Type) *Node {
	return &Node{
		Type:     t,
		Fields:   make(map[string]Value),
		Children: make(map[string]ChildSlot),
	}
}

// Field returns the field value bound to name, if any.
func (n *Node) Field(name string) (Value, bool) {
	v, ok := n.Fields[name]
	return v, ok
}

// Child returns the child slot bound to name, if any.
func (n *Node) Child(name string) (ChildSlot, bool) {
	c, ok := n.Children[name]
	return c, ok
}

// FieldNames returns the node's bound field names, sorted.
func (n *Node) FieldNames() []string {
	out := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// BranchNames returns the node's bound branch names, sorted.
func (n *Node) BranchNames() []string {
	out := make([]string, 0, len(n.Children))
	for k := range n.Children {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// setChild attaches a child slot and stamps its non-owning parent edge.
// Only used by the lifter; the walker and compressor never mutate a
// node's Children map after construction.
func (n *Node) setChild(branch, display string, slot ChildSlot) {
	switch slot.Kind {
	case ChildSingle:
		slot.Node.Parent = ParentEdge{Parent: n, Branch: branch, Display: display}
	case ChildArray:
		for _, c := range slot.Nodes {
			c.Parent = ParentEdge{Parent: n, Branch: branch, Display: display}
		}
	}
	n.Children[branch] = slot
}
