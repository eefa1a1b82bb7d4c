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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// MainVersion is the main version number.
const MainVersion uint8 = 1

// MinorVersion is the minor version number.
const MinorVersion uint8 = 0

// Magic number of binary file.
var Magic = [8]byte{'l', 'e', 'v', 'a', 'r', 'i', 'n', 't'}

// ErrInvalidFileFormat means invalid file format.
var ErrInvalidFileFormat = errors.New("levarint: invalid binary format")

// ErrVersionMismatch means the file was written by an incompatible version.
var ErrVersionMismatch = errors.New("levarint: binary format version mismatch")

// ErrBrokenFile means the file is not complete.
var ErrBrokenFile = errors.New("levarint: broken file")

// ErrNotSorted means values written to a sorted file are not in ascending order.
var ErrNotSorted = errors.New("levarint: values not sorted")

// ErrDuplicated means a value is written twice to a sorted and unique file.
var ErrDuplicated = errors.New("levarint: duplicated value")

// NumberUnknown is the value of Header.Number when the number of values
// was not known before writing.
const NumberUnknown = ^uint64(0)

var be = binary.BigEndian

// Header contains metadata
type Header struct {
	MainVersion  uint8
	MinorVersion uint8
	Flag         uint32
	Number       uint64 // NumberUnknown for unknown
}

const (
	// LevSorted means values are sorted and saved as deltas of adjacent values.
	LevSorted = 1 << iota
	// LevUnique means there are no duplicated values.
	LevUnique
)

func (h Header) String() string {
	return fmt.Sprintf("levarint binary integer data file v%d.%d with Flag=%d",
		h.MainVersion, h.MinorVersion, h.Flag)
}

// IsSorted tells if the values are sorted.
func (h Header) IsSorted() bool {
	return h.Flag&LevSorted > 0
}

// IsUnique tells if the values are unique.
func (h Header) IsUnique() bool {
	return h.Flag&LevUnique > 0
}

// Reader is for reading values.
type Reader struct {
	Header
	r io.Reader

	buf    [MaxLen]byte
	sorted bool
	prev   uint64
	count  uint64
	nbytes uint64
}

// NewReader returns a Reader.
func NewReader(r io.Reader) (reader *Reader, err error) {
	reader = &Reader{r: r}
	err = reader.readHeader()
	if err != nil {
		return nil, err
	}
	return reader, nil
}

func (reader *Reader) readHeader() (err error) {
	// check Magic number
	var m [8]byte
	r := reader.r
	err = binary.Read(r, be, &m)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrInvalidFileFormat
		}
		return errors.Wrap(err, "levarint: read magic number")
	}
	if m != Magic {
		return ErrInvalidFileFormat
	}

	// read metadata
	var meta [4]uint8
	err = binary.Read(r, be, &meta)
	if err != nil {
		return ErrBrokenFile
	}
	if meta[0] != MainVersion {
		return ErrVersionMismatch
	}
	reader.MainVersion = meta[0]
	reader.MinorVersion = meta[1]

	err = binary.Read(r, be, &reader.Flag)
	if err != nil {
		return ErrBrokenFile
	}
	reader.sorted = reader.Flag&LevSorted > 0

	err = binary.Read(r, be, &reader.Number)
	if err != nil {
		return ErrBrokenFile
	}
	return nil
}

// Read reads one value.
// It returns io.EOF when all values are read.
func (reader *Reader) Read() (uint64, error) {
	buf := &reader.buf

	_, err := io.ReadFull(reader.r, buf[:1])
	if err != nil {
		if err == io.EOF {
			if reader.Number != NumberUnknown && reader.count != reader.Number {
				return 0, ErrBrokenFile
			}
			return 0, io.EOF
		}
		return 0, errors.Wrap(err, "levarint: read value")
	}

	// bytes after n are left from previous values, Decode ignores them.
	n := DecodedLen(buf[0])
	if n > 1 {
		_, err = io.ReadFull(reader.r, buf[1:n])
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, ErrBrokenFile
			}
			return 0, errors.Wrap(err, "levarint: read value")
		}
	}

	v, _ := Decode(buf)
	reader.count++
	reader.nbytes += uint64(n)

	if reader.sorted {
		v += reader.prev
		reader.prev = v
	}
	return v, nil
}

// Count returns the number of values read.
func (reader *Reader) Count() uint64 {
	return reader.count
}

// Bytes returns the number of bytes of values read, excluding the header.
func (reader *Reader) Bytes() uint64 {
	return reader.nbytes
}

// Writer writes values.
type Writer struct {
	Header
	w           io.Writer
	wroteHeader bool

	buf    [MaxLen]byte
	sorted bool
	prev   uint64
	count  uint64
}

// NewWriter creates a Writer.
// Number could be set before the first value is written.
func NewWriter(w io.Writer, flag uint32) *Writer {
	return &Writer{
		Header: Header{MainVersion: MainVersion, MinorVersion: MinorVersion, Flag: flag, Number: NumberUnknown},
		w:      w,
		sorted: flag&LevSorted > 0,
	}
}

// WriteHeader writes file header
func (writer *Writer) WriteHeader() (err error) {
	if writer.wroteHeader {
		return nil
	}
	w := writer.w
	// write magic number
	err = binary.Write(w, be, Magic)
	if err != nil {
		return err
	}

	err = binary.Write(w, be, [4]uint8{writer.MainVersion, writer.MinorVersion, 0, 0})
	if err != nil {
		return err
	}

	err = binary.Write(w, be, writer.Flag)
	if err != nil {
		return err
	}

	err = binary.Write(w, be, writer.Number)
	if err != nil {
		return err
	}

	writer.wroteHeader = true
	return nil
}

// Write writes one value.
func (writer *Writer) Write(v uint64) (err error) {
	// lazily write header
	if !writer.wroteHeader {
		err = writer.WriteHeader()
		if err != nil {
			return err
		}
	}

	x := v
	if writer.sorted {
		if v < writer.prev {
			return ErrNotSorted
		}
		if v == writer.prev && writer.count > 0 && writer.Flag&LevUnique > 0 {
			return ErrDuplicated
		}
		x = v - writer.prev
		writer.prev = v
	}

	n := Encode(x, &writer.buf)
	_, err = writer.w.Write(writer.buf[:n])
	if err != nil {
		return err
	}
	writer.count++
	return nil
}

// Count returns the number of values written.
func (writer *Writer) Count() uint64 {
	return writer.count
}

// Flush writes the header if no values were written.
func (writer *Writer) Flush() (err error) {
	return writer.WriteHeader()
}
