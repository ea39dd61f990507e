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

import "strconv"

// floatEndNibble terminates a packed float digit stream.
const floatEndNibble = 15

// writeFloat appends a finite non-integer value as FloatTag followed by
// its shortest round-tripping decimal representation, packed two nibbles
// per byte (low nibble first) over the alphabet 0-9, '-', '+', '.', 'e',
// terminated by the end nibble (§4.6).
func writeFloat(b *Buffer, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	nibbles := make([]byte, 0, len(s)+1)
	for _, c := range s {
		nibbles = append(nibbles, digitNibble(c))
	}
	nibbles = append(nibbles, floatEndNibble)

	b.WriteU8(FloatTag)
	for i := 0; i < len(nibbles); i += 2 {
		lo := nibbles[i]
		var hi byte
		if i+1 < len(nibbles) {
			hi = nibbles[i+1]
		}
		b.WriteU8(lo | hi<<4)
	}
}

func digitNibble(c rune) byte {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0')
	case c == '-':
		return 10
	case c == '+':
		return 11
	case c == '.':
		return 12
	case c == 'e':
		return 13
	default:
		panic("wire: float digit string contains unexpected character " + string(c))
	}
}
