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
	"github.com/kannanvijayan-zz/ast-compress/strtab"
)

// Primitive value tags (§4.6). Wire-stable: never renumber.
const (
	EndMarkerTag  = 0x00
	NullTag       = 0x01
	FalseTag      = 0x02
	TrueTag       = 0x03
	NanoIntBase   = 0x04 // code = value - nanoIntMin + NanoIntBase
	IntTag        = 0x10 // low 2 bits OR'd in: byte_count - 1
	StrTag        = 0x14 // same size-bit scheme, integer is a string-table id
	ShortArrayTag = 0x20 // low 3 bits: length 0..6
	LongArrayTag  = 0x28 // same size-bit scheme, integer is length >= 7
	FloatTag      = 0x30
)

const (
	nanoIntMin = -1
	nanoIntMax = 10
)

// WriteValue dispatches on v's dynamic kind and appends its tagged
// encoding. table is consulted for string ids; it must already be
// finalized.
func WriteValue(b *Buffer, v ast.Value, table *strtab.Table) error {
	switch v.Kind {
	case ast.KindNull:
		b.WriteU8(NullTag)
		return nil
	case ast.KindBool:
		if v.B {
			b.WriteU8(TrueTag)
		} else {
			b.WriteU8(FalseTag)
		}
		return nil
	case ast.KindInt:
		return writeIntValue(b, v.I)
	case ast.KindFloat:
		writeFloat(b, v.F)
		return nil
	case ast.KindString:
		id, err := table.Lookup(v.S)
		if err != nil {
			return err
		}
		writeTaggedUint(b, StrTag, uint64(id))
		return nil
	case ast.KindArray:
		return writeArrayValue(b, v.A, table)
	default:
		return &UnsupportedValueError{Value: v}
	}
}

func writeIntValue(b *Buffer, v int64) error {
	if v >= nanoIntMin && v <= nanoIntMax {
		b.WriteU8(byte(NanoIntBase + (v - nanoIntMin)))
		return nil
	}
	const maxInt32 = 1<<31 - 1
	const maxUint32 = 1<<32 - 1
	if v < -(1 << 31) || v > maxUint32 {
		return &VarUintOverflowError{Value: uint64(v)}
	}
	if v > maxInt32 {
		// Positive value above the signed 32-bit range: always 4 raw bytes.
		b.WriteU8(IntTag | 3)
		uv := uint64(v)
		for i := 0; i < 4; i++ {
			b.WriteU8(byte(uv))
			uv >>= 8
		}
		return nil
	}
	writeTaggedInt(b, IntTag, v)
	return nil
}

func writeArrayValue(b *Buffer, a []ast.Value, table *strtab.Table) error {
	WriteArrayLen(b, len(a))
	for _, e := range a {
		if err := WriteValue(b, e, table); err != nil {
			return err
		}
	}
	return nil
}

// WriteArrayLen appends the length tag shared by value arrays and child
// branch arrays: a short-array header for lengths under 7, or a
// long-array tagged number otherwise. Used directly by the compression
// driver when it descends into a child-array branch, so that structural
// arrays use the same on-wire length marker as value arrays.
func WriteArrayLen(b *Buffer, n int) {
	if n < 7 {
		b.WriteU8(ShortArrayTag | byte(n))
		return
	}
	writeTaggedUint(b, LongArrayTag, uint64(n))
}
