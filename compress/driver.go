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

// Package compress implements the compression driver (§4.6): it runs the
// string-collection pass over a lifted tree, then a second pass that
// consults the depth cache at every node and emits either a back-reference
// plus its cut substitutions, or a direct node encoding followed by its
// children.
//
// The second pass does not reuse ast.Walk's generic Visitor: a
// child-array branch needs an explicit length tag ahead of its elements,
// and a cache hit needs to recurse into specific cut substitutions rather
// than a node's natural children. Both are driver-specific enough that a
// dedicated recursive traversal is clearer than bending Walk's
// Begin/End/Override contract to fit them.
package compress

import (
	"github.com/kannanvijayan-zz/ast-compress/ast"
	"github.com/kannanvijayan-zz/ast-compress/cache"
	"github.com/kannanvijayan-zz/ast-compress/strtab"
	"github.com/kannanvijayan-zz/ast-compress/template"
	"github.com/kannanvijayan-zz/ast-compress/wire"
)

// Compress runs both passes over root and returns the framed byte stream:
// the finalized string table followed by the top-level node encoding.
// root must already be depth-first numbered (ast.DepthFirstNumber).
func Compress(root *ast.Node) ([]byte, error) {
	table := strtab.NewTable()
	strtab.Collect(root, table)
	table.Finalize()

	buf := &wire.Buffer{}
	if err := wire.WriteStringTable(buf, table); err != nil {
		return nil, err
	}

	d := &driver{table: table, cache: cache.New(), buf: buf}
	if err := d.encodeNode(root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type driver struct {
	table *strtab.Table
	cache *cache.DepthCache
	buf   *wire.Buffer
}

func (d *driver) encodeNode(n *ast.Node) error {
	depth := n.Attrs.Depth
	if depth > 0 {
		if cand, ok := d.cache.Search(depth, n); ok {
			return d.encodeMatch(n, depth, cand)
		}
	}
	return d.encodeDirect(n, depth)
}

func (d *driver) encodeDirect(n *ast.Node, depth int) error {
	if err := wire.WriteDirectNode(d.buf, n, d.table); err != nil {
		return err
	}
	if err := d.encodeChildren(n); err != nil {
		return err
	}
	d.cache.PushTree(depth, n)
	return nil
}

func (d *driver) encodeChildren(n *ast.Node) error {
	for _, name := range n.BranchNames() {
		slot := n.Children[name]
		switch slot.Kind {
		case ast.ChildNil:
			// optional, unset: nothing on the wire.
		case ast.ChildSingle:
			if err := d.encodeNode(slot.Node); err != nil {
				return err
			}
		case ast.ChildArray:
			wire.WriteArrayLen(d.buf, len(slot.Nodes))
			for _, c := range slot.Nodes {
				if err := d.encodeNode(c); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (d *driver) encodeMatch(n *ast.Node, depth int, cand *cache.Candidate) error {
	switch cand.Kind {
	case cache.CandidateTemplate:
		if err := wire.WriteTemplateRef(d.buf, cand.Delta, cand.Reverse); err != nil {
			return err
		}
	case cache.CandidateTree:
		if err := wire.WriteSubtreeRef(d.buf, cand.Delta, cand.Reverse, cutNums(cand.Cuts)); err != nil {
			return err
		}
	}
	if err := d.emitCuts(n, cand.Cuts); err != nil {
		return err
	}
	if cand.Kind == cache.CandidateTree {
		d.cache.PushTemplate(depth, cand.NewTemplate)
	}
	d.cache.PushTree(depth, n)
	return nil
}

// emitCuts walks cand.Cuts in increasing Num order (the order Compute
// produced them in) and emits each substitution: a scalar value written
// directly, a replacement field map written field-by-field, or a
// substitute node/array recursed into through encodeNode so that nested
// cache hits are still discovered.
func (d *driver) emitCuts(n *ast.Node, cuts []template.Cut) error {
	for _, cut := range cuts {
		switch cut.Subst.Kind {
		case template.SubstValue:
			if err := wire.WriteValue(d.buf, cut.Subst.Value, d.table); err != nil {
				return err
			}
		case template.SubstValueMap:
			for _, name := range n.Type.FieldNames() {
				if err := wire.WriteValue(d.buf, cut.Subst.ValueMap[name], d.table); err != nil {
					return err
				}
			}
		case template.SubstNode:
			if cut.Subst.Node == nil {
				continue // null_query_child: nothing further to encode.
			}
			if err := d.encodeNode(cut.Subst.Node); err != nil {
				return err
			}
		case template.SubstNodeArray:
			wire.WriteArrayLen(d.buf, len(cut.Subst.NodeArray))
			for _, c := range cut.Subst.NodeArray {
				if err := d.encodeNode(c); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func cutNums(cuts []template.Cut) []int {
	nums := make([]int, len(cuts))
	for i, c := range cuts {
		nums[i] = c.Num
	}
	return nums
}
