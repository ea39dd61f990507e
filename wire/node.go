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

package wire

import (
	"github.com/kannanvijayan-zz/ast-compress/ast"
	"github.com/kannanvijayan-zz/ast-compress/schema"
	"github.com/kannanvijayan-zz/ast-compress/strtab"
)

const refTerminator = 0xFF

// WriteStringTable appends the finalized table: a count followed by each
// string's byte length and raw bytes, in rank order (id == index).
func WriteStringTable(b *Buffer, table *strtab.Table) error {
	strs := table.Strings()
	if err := b.WriteVarUint(uint64(len(strs))); err != nil {
		return err
	}
	for _, s := range strs {
		if err := b.WriteVarUint(uint64(len(s))); err != nil {
			return err
		}
		b.WriteBytes([]byte(s))
	}
	return nil
}

// WriteDirectNode appends a node's own encoding: its type code (or the
// single-character identifier shorthand) followed by its field values in
// declared order. It does not descend into children — the driver walks
// those separately.
func WriteDirectNode(b *Buffer, n *ast.Node, table *strtab.Table) error {
	if n.Type.Name == "Identifier" {
		if name, ok := n.Fields["name"]; ok && name.Kind == ast.KindString && isSingleASCII(name.S) {
			if err := b.WriteVarUint(schema.RawIdentCode); err != nil {
				return err
			}
			b.WriteU8(name.S[0])
			return nil
		}
	}
	if err := b.WriteVarUint(uint64(n.Type.Code)); err != nil {
		return err
	}
	for _, name := range n.Type.FieldNames() {
		if err := WriteValue(b, n.Fields[name], table); err != nil {
			return err
		}
	}
	return nil
}

func isSingleASCII(s string) bool {
	return len(s) == 1 && s[0] < 0x80
}

func signedRefByte(delta int) (byte, error) {
	if delta < -63 || delta > 63 {
		return 0, &RefOutOfRangeError{Delta: delta}
	}
	return byte(int8(delta)), nil
}

// WriteSubtreeRef appends a back-reference to a matched subtree at the
// given depth delta and reverse index, followed by the cut positions
// where the query diverges from it and a terminator byte.
func WriteSubtreeRef(b *Buffer, delta, rev int, cutNums []int) error {
	if rev < 0 || rev > 255 {
		return &RefOutOfRangeError{Delta: delta, Reverse: rev}
	}
	db, err := signedRefByte(delta)
	if err != nil {
		return err
	}
	if err := b.WriteVarUint(schema.SubtreeRefCode); err != nil {
		return err
	}
	b.WriteU8(db)
	b.WriteU8(byte(rev))
	for _, num := range cutNums {
		b.WriteU8(byte(num))
	}
	b.WriteU8(refTerminator)
	return nil
}

// WriteTemplateRef appends a back-reference to a matched template. The
// template's own cut positions are implicit in the referenced template,
// so no cut list is written.
func WriteTemplateRef(b *Buffer, delta, rev int) error {
	if rev < 0 || rev > 255 {
		return &RefOutOfRangeError{Delta: delta, Reverse: rev}
	}
	db, err := signedRefByte(delta)
	if err != nil {
		return err
	}
	if err := b.WriteVarUint(schema.TemplateRefCode); err != nil {
		return err
	}
	b.WriteU8(db)
	b.WriteU8(byte(rev))
	return nil
}
