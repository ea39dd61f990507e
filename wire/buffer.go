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

// Package wire implements the byte encoder (§4.6): a small set of
// append-only primitives (varuint, tagged numbers, nano-int/nano-array,
// float-as-digits) plus the node- and reference-level encodings built on
// top of them. Modeled on ion.Buffer's append-and-grow discipline, but
// flat — this wire format carries no nested length-prefixed segments, so
// there is nothing equivalent to ion's BeginStruct/EndStruct backpatching.
package wire

import "io"

// Buffer accumulates an encoded byte stream. The zero value is ready to
// use.
type Buffer struct {
	buf []byte
}

// Bytes returns the accumulated bytes. The returned slice aliases the
// Buffer's internal storage and must not be retained across further
// writes.
func (b *Buffer) Bytes() []byte { return b.buf }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.buf) }

// WriteTo implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// WriteU8 appends a single byte.
func (b *Buffer) WriteU8(v byte) {
	b.buf = append(b.buf, v)
}

// WriteBytes appends raw bytes verbatim.
func (b *Buffer) WriteBytes(p []byte) {
	b.buf = append(b.buf, p...)
}
