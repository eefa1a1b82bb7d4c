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

import "math"

// Offsets of the bands. Band k starts at offsetK and holds 1<<(7*(k+1)) values.
const (
	offset0 uint64 = 0
	offset1        = offset0 + 1<<7
	offset2        = offset1 + 1<<14
	offset3        = offset2 + 1<<21
	offset4        = offset3 + 1<<28
	offset5        = offset4 + 1<<35
	offset6        = offset5 + 1<<42
	offset7        = offset6 + 1<<49
	offset8        = offset7 + 1<<56
)

// NumBands is the number of bands, i.e., the number of possible encoded lengths.
const NumBands = 9

var offsets = [NumBands]uint64{offset0, offset1, offset2, offset3, offset4, offset5, offset6, offset7, offset8}

// shift distances used by Decode, indexed by encoded length - 1.
// lefts drops bytes beyond the encoding, rights drops them again
// together with the n-bit length marker.
var lefts = [8]uint{56, 48, 40, 32, 24, 16, 8, 0}
var rights = [8]uint{57, 50, 43, 36, 29, 22, 15, 8}

// Band is a contiguous range of values sharing the same encoded length.
type Band struct {
	Index       int    // 0-based
	Len         int    // encoded bytes
	PayloadBits int    // bits available for the biased value
	Min         uint64 // inclusive
	Max         uint64 // inclusive
}

// BandOf returns the index of the band containing v.
func BandOf(v uint64) int {
	for k := 1; k < NumBands; k++ {
		if v < offsets[k] {
			return k - 1
		}
	}
	return NumBands - 1
}

// Offset returns the smallest value of band k (0 <= k < NumBands).
func Offset(k int) uint64 {
	return offsets[k]
}

// Bands returns all bands in ascending order.
func Bands() []Band {
	bands := make([]Band, NumBands)
	for k := 0; k < NumBands-1; k++ {
		bands[k] = Band{
			Index:       k,
			Len:         k + 1,
			PayloadBits: 7 * (k + 1),
			Min:         offsets[k],
			Max:         offsets[k+1] - 1,
		}
	}
	bands[NumBands-1] = Band{
		Index:       NumBands - 1,
		Len:         MaxLen,
		PayloadBits: 64,
		Min:         offset8,
		Max:         math.MaxUint64,
	}
	return bands
}
