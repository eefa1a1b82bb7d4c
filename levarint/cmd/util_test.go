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

package cmd

import (
	"math"
	"testing"
)

func TestHexEncoding(t *testing.T) {
	tests := []struct {
		value uint64
		hex   string
	}{
		{0, "01"},
		{127, "ff"},
		{128, "0200"},
		{72624976668147840, "008040201008040201"},
		{math.MaxUint64, "00ffffffffffffffff"},
	}
	for _, tt := range tests {
		h, n := formatHexEncoding(tt.value)
		if h != tt.hex || n != len(tt.hex)/2 {
			t.Errorf("formatHexEncoding(%d): expected %s, got %s (%d bytes)", tt.value, tt.hex, h, n)
		}

		v, n2, err := parseHexEncoding(h)
		if err != nil {
			t.Errorf("parseHexEncoding(%s): %s", h, err)
			continue
		}
		if v != tt.value || n2 != n {
			t.Errorf("parseHexEncoding(%s): expected (%d, %d), got (%d, %d)", h, tt.value, n, v, n2)
		}
	}
}

func TestParseHexEncoding(t *testing.T) {
	v, n, err := parseHexEncoding("0x000000000000000000")
	if err != nil || v != 0 || n != 9 {
		t.Errorf("9-byte form of 0: got (%d, %d, %v)", v, n, err)
	}

	for _, s := range []string{"", "zz", "02", "0300", "0100", "00ffffffffffffffffff"} {
		if _, _, err = parseHexEncoding(s); err == nil {
			t.Errorf("parseHexEncoding(%q): error expected", s)
		}
	}
}

func TestUniqUint64s(t *testing.T) {
	tests := []struct {
		input    []uint64
		expected []uint64
	}{
		{nil, nil},
		{[]uint64{1}, []uint64{1}},
		{[]uint64{1, 1, 1}, []uint64{1}},
		{[]uint64{0, 1, 1, 2, 3, 3}, []uint64{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		got := uniqUint64s(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("uniqUint64s(%v): expected %v, got %v", tt.input, tt.expected, got)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("uniqUint64s(%v): expected %v, got %v", tt.input, tt.expected, got)
				break
			}
		}
	}
}
