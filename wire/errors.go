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
	"fmt"

	"github.com/kannanvijayan-zz/ast-compress/ast"
)

// VarUintOverflowError reports a value that does not fit in the wire
// format's 32-bit varuint range.
type VarUintOverflowError struct {
	Value uint64
}

func (e *VarUintOverflowError) Error() string {
	return fmt.Sprintf("wire: varuint overflow: %d exceeds 2^32-1", e.Value)
}

// UnsupportedValueError reports a value whose dynamic kind has no
// primitive tag encoding.
type UnsupportedValueError struct {
	Value ast.Value
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("wire: unsupported value kind %v", e.Value.Kind)
}

// RefOutOfRangeError reports a back-reference whose delta or reverse
// index cannot be represented on the wire.
type RefOutOfRangeError struct {
	Delta, Reverse int
}

func (e *RefOutOfRangeError) Error() string {
	return fmt.Sprintf("wire: reference out of range (delta=%d, reverse=%d)", e.Delta, e.Reverse)
}
