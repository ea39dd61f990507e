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

package ast

// WalkAttrs carries the walker-local metadata passed to Visitor callbacks:
// the branch name this node was reached through ("<root>" for the root),
// a walker-local monotone pre-order number (distinct from
// Node.Attrs.Number, see §4.2), and depth.
type WalkAttrs struct {
	Name   string
	Number int
	Depth  int
}

// OverrideChild names one traversal edge the walker should follow instead
// of a node's natural children.
type OverrideChild struct {
	Name string
	Slot ChildSlot
}

// BeginResult is returned by Visitor.Begin to steer traversal.
type BeginResult struct {
	// Prune skips this subtree: no children are visited and End is not
	// called.
	Prune bool

	// HasOverride, when true, replaces natural child traversal with
	// Override (used by the compression driver to descend only into a
	// reference's cut substitutions). HasOverride false means "use the
	// node's natural children" — the zero value of BeginResult.
	HasOverride bool
	Override    []OverrideChild
}

// Visitor receives the three walk events over a lifted tree.
type Visitor interface {
	Begin(n *Node, attrs WalkAttrs) BeginResult
	End(n *Node, attrs WalkAttrs)
	EmptyArray(branch string, parent WalkAttrs)
}

// Walk traverses root in begin/end order, depth-first, following each
// node's natural children unless its Visitor.Begin call overrides or
// prunes traversal (§4.2).
func Walk(v Visitor, root *Node) {
	counter := 0
	var rec func(n *Node, name string, depth int)
	rec = func(n *Node, name string, depth int) {
		attrs := WalkAttrs{Name: name, Number: counter, Depth: depth}
		counter++
		res := v.Begin(n, attrs)
		if res.Prune {
			return
		}
		children := res.Override
		if !res.HasOverride {
			children = naturalChildren(n)
		}
		for _, oc := range children {
			switch oc.Slot.Kind {
			case ChildNil:
				// optional, unset: no event.
			case ChildSingle:
				rec(oc.Slot.Node, oc.Name, depth+1)
			case ChildArray:
				if len(oc.Slot.Nodes) == 0 {
					v.EmptyArray(oc.Name, attrs)
				} else {
					for _, c := range oc.Slot.Nodes {
						rec(c, oc.Name, depth+1)
					}
				}
			}
		}
		v.End(n, attrs)
	}
	rec(root, "<root>", 0)
}

func naturalChildren(n *Node) []OverrideChild {
	names := branchOrder(n)
	out := make([]OverrideChild, len(names))
	for i, name := range names {
		out[i] = OverrideChild{Name: name, Slot: n.Children[name]}
	}
	return out
}
