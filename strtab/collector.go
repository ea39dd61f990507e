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

package strtab

import (
	"golang.org/x/exp/slices"

	"github.com/kannanvijayan-zz/ast-compress/ast"
)

// AddValueRecursive records every string reachable from v: the string
// itself, or (recursively) every element/value of an array or map (§4.3).
func (t *Table) AddValueRecursive(v ast.Value) {
	switch v.Kind {
	case ast.KindString:
		t.Add(v.S)
	case ast.KindArray:
		for _, e := range v.A {
			t.AddValueRecursive(e)
		}
	case ast.KindMap:
		keys := make([]string, 0, len(v.M))
		for k := range v.M {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			t.AddValueRecursive(v.M[k])
		}
	}
}

// Collect performs the first-pass walk (§2 step 4): every field value of
// every node in the tree is recorded via AddValueRecursive, except an
// Identifier node's "name" field, which goes through AddIdentifier so
// that single-character identifiers are excluded (the wire encoder
// inlines those directly, see wire.WriteDirectNode).
func Collect(root *ast.Node, t *Table) {
	ast.Walk(collector{t}, root)
}

type collector struct{ t *Table }

func (c collector) Begin(n *ast.Node, _ ast.WalkAttrs) ast.BeginResult {
	for _, name := range n.FieldNames() {
		val := n.Fields[name]
		if n.Type.Name == "Identifier" && name == "name" && val.Kind == ast.KindString {
			c.t.AddIdentifier(val.S)
			continue
		}
		c.t.AddValueRecursive(val)
	}
	return ast.BeginResult{}
}

func (c collector) End(*ast.Node, ast.WalkAttrs)             {}
func (c collector) EmptyArray(string, ast.WalkAttrs)         {}
