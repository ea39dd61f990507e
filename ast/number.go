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

import "github.com/kannanvijayan-zz/ast-compress/schema"

// DepthFirstNumber assigns Attrs.Number in pre-order starting at 0 and
// Attrs.Depth matching the parent chain. Children are visited in
// declared branch order; array branches are visited in index order
// (§4.1). It returns the total node count N, so that Number values form
// the contiguous range [0, N).
func DepthFirstNumber(root *Node) int {
	n := 0
	var walk func(node *Node, depth int)
	walk = func(node *Node, depth int) {
		node.Attrs.Number = n
		node.Attrs.Depth = depth
		n++
		for _, name := range branchOrder(node) {
			slot := node.Children[name]
			switch slot.Kind {
			case ChildSingle:
				walk(slot.Node, depth+1)
			case ChildArray:
				for _, c := range slot.Nodes {
					walk(c, depth+1)
				}
			}
		}
	}
	walk(root, 0)
	return n
}

// branchOrder returns the order in which a node's branches are visited:
// declared order for schema-typed nodes, sorted order for Unknown nodes
// (which have no declared branch list).
func branchOrder(n *Node) []string {
	if n.Type != nil && n.Type != schema.Unknown {
		out := make([]string, 0, len(n.Type.Branches))
		for _, bd := range n.Type.Branches {
			if bd.Deleted {
				continue
			}
			if _, ok := n.Children[bd.Name]; ok {
				out = append(out, bd.Name)
			}
		}
		return out
	}
	return n.BranchNames()
}
