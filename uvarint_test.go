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

import (
	"bytes"
	"math"
	"testing"
)

func TestPutUvarint(t *testing.T) {
	for _, c := range encodeCases {
		buf := make([]byte, c.n)
		n := PutUvarint(buf, c.value)
		if n != c.n {
			t.Errorf("PutUvarint(%d): expected %d bytes, got %d", c.value, c.n, n)
		}
		if !bytes.Equal(buf, c.bytes) {
			t.Errorf("PutUvarint(%d): expected %x, got %x", c.value, c.bytes, buf)
		}
	}
}

func TestPutUvarintShortBuffer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("PutUvarint into a short buffer should panic")
		}
	}()
	PutUvarint(make([]byte, 1), 128)
}

func TestAppendUvarint(t *testing.T) {
	var buf []byte
	for _, v := range randomValues[:1000] {
		buf = AppendUvarint(buf, v)
	}

	var v2 uint64
	var n int
	for i, v := range randomValues[:1000] {
		v2, n = Uvarint(buf)
		if n == 0 {
			t.Fatalf("#%d: unexpected end of buffer", i)
		}
		if v2 != v {
			t.Errorf("#%d: expected %d, got %d", i, v, v2)
		}
		buf = buf[n:]
	}
	if len(buf) != 0 {
		t.Errorf("%d bytes left", len(buf))
	}
}

func TestUvarint(t *testing.T) {
	tests := []struct {
		input []byte
		value uint64
		n     int
	}{
		{nil, 0, 0},
		{[]byte{}, 0, 0},
		{[]byte{0x01}, 0, 1},
		{[]byte{0xff, 0xaa}, 127, 1},
		{[]byte{0x02}, 0, 0}, // truncated
		{[]byte{0x02, 0x00}, 128, 2},
		{[]byte{0x00, 0x01}, 0, 0},
		{[]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 1, 9},
		{[]byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, math.MaxUint64, 9},
	}
	for _, tt := range tests {
		v, n := Uvarint(tt.input)
		if v != tt.value || n != tt.n {
			t.Errorf("Uvarint(%x): expected (%d, %d), got (%d, %d)", tt.input, tt.value, tt.n, v, n)
		}
	}
}
