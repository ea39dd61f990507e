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

package cache

import (
	"encoding/binary"
	"math"

	"github.com/dchest/siphash"
	"golang.org/x/exp/slices"

	"github.com/kannanvijayan-zz/ast-compress/ast"
)

// k0, k1 need not be secret: contentHash is a structural fingerprint, not
// a security boundary (mirrors expr.redactBuf's use of the same fixed
// keys for content hashing rather than redaction).
const k0, k1 = 0, 1

// contentHash fingerprints a subtree's type, field values, and child
// structure. Two structurally identical subtrees always hash equal;
// distinct subtrees hash equal only on (rare) collision, which search
// tolerates by re-verifying with template.Compute before trusting a hit.
func contentHash(n *ast.Node) uint64 {
	return siphash.Hash(k0, k1, appendNodeHash(nil, n))
}

func appendNodeHash(buf []byte, n *ast.Node) []byte {
	var code [2]byte
	binary.LittleEndian.PutUint16(code[:], uint16(n.Type.Code))
	buf = append(buf, code[:]...)
	for _, name := range n.FieldNames() {
		buf = append(buf, name...)
		buf = appendValueHash(buf, n.Fields[name])
	}
	for _, name := range n.BranchNames() {
		buf = append(buf, name...)
		slot := n.Children[name]
		switch slot.Kind {
		case ast.ChildNil:
			buf = append(buf, 0)
		case ast.ChildSingle:
			buf = append(buf, 1)
			buf = appendNodeHash(buf, slot.Node)
		case ast.ChildArray:
			buf = append(buf, 2)
			var lb [8]byte
			binary.LittleEndian.PutUint64(lb[:], uint64(len(slot.Nodes)))
			buf = append(buf, lb[:]...)
			for _, c := range slot.Nodes {
				buf = appendNodeHash(buf, c)
			}
		}
	}
	return buf
}

func appendValueHash(buf []byte, v ast.Value) []byte {
	buf = append(buf, byte(v.Kind))
	switch v.Kind {
	case ast.KindBool:
		if v.B {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case ast.KindInt:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.I))
		buf = append(buf, b[:]...)
	case ast.KindFloat:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.F))
		buf = append(buf, b[:]...)
	case ast.KindString:
		buf = append(buf, v.S...)
	case ast.KindArray:
		for _, e := range v.A {
			buf = appendValueHash(buf, e)
		}
	case ast.KindMap:
		keys := make([]string, 0, len(v.M))
		for k := range v.M {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			buf = append(buf, k...)
			buf = appendValueHash(buf, v.M[k])
		}
	}
	return buf
}
