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

package levarint

// PutUvarint encodes v into buf and returns the number of bytes written.
// It panics if buf is shorter than EncodedLen(v).
func PutUvarint(buf []byte, v uint64) int {
	var w [MaxLen]byte
	n := Encode(v, &w)
	_ = buf[n-1]
	copy(buf, w[:n])
	return n
}

// AppendUvarint appends the encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	var w [MaxLen]byte
	n := Encode(v, &w)
	return append(dst, w[:n]...)
}

// Uvarint decodes a value from the beginning of buf, and returns the value
// and the number of bytes read. If buf is empty or shorter than the length
// announced by its first byte, it returns 0, 0.
func Uvarint(buf []byte) (uint64, int) {
	if len(buf) >= MaxLen {
		return Decode((*[MaxLen]byte)(buf[:MaxLen]))
	}
	if len(buf) == 0 || DecodedLen(buf[0]) > len(buf) {
		return 0, 0
	}
	var w [MaxLen]byte
	copy(w[:], buf)
	return Decode(&w)
}
