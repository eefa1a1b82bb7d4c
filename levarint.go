// Copyright © 2023 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package levarint implements a little-endian variable-length encoding of
// uint64 in 1-9 bytes.
//
// The number of trailing zero bits of the first byte, plus one, is the
// encoded length. The value is biased by the offset of its band, so every
// length covers a distinct range and no two lengths encode the same value,
// except for the 9-byte form, which the decoder accepts for any value.
//
//	len  first byte   payload bits  range
//	1    xxxxxxx1     7             [0, 128)
//	2    xxxxxx10     14            [128, 16512)
//	3    xxxxx100     21            [16512, 2113664)
//	...
//	8    10000000     56            [567382630219904, 72624976668147840)
//	9    00000000     64            [72624976668147840, 1<<64)
//
package levarint

import (
	"encoding/binary"
	"math/bits"
)

// MaxLen is the maximum number of bytes of an encoded value,
// and the size of the window Encode and Decode work on.
const MaxLen = 9

var le = binary.LittleEndian

// Encode encodes v into buf and returns the number of bytes used.
//
// Only buf[:n] is meaningful. For n < 9, the whole 8-byte little-endian
// word is stored, so buf[n:8] are zeroed and buf[8] is untouched.
func Encode(v uint64, buf *[MaxLen]byte) int {
	k := BandOf(v)
	if k == NumBands-1 {
		buf[0] = 0
		le.PutUint64(buf[1:], v)
		return MaxLen
	}

	le.PutUint64(buf[:8], ((v-offsets[k])<<1|1)<<uint(k))
	return k + 1
}

// Decode decodes a value from buf, and returns the value and
// the number of bytes consumed.
//
// For n < 9, the result does not depend on buf[n:].
// A first byte of 0x00 always means a 9-byte encoding, which is accepted
// even if the value could have been encoded in fewer bytes.
func Decode(buf *[MaxLen]byte) (uint64, int) {
	low := le.Uint64(buf[:8])
	z := bits.TrailingZeros64(low)
	if z >= 8 {
		return le.Uint64(buf[1:]), MaxLen
	}
	return low<<lefts[z]>>rights[z] + offsets[z], z + 1
}

// EncodedLen returns the number of bytes needed to encode v.
func EncodedLen(v uint64) int {
	return BandOf(v) + 1
}

// DecodedLen returns the length of an encoding starting with byte b.
func DecodedLen(b byte) int {
	return bits.TrailingZeros8(b) + 1
}
