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
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/pgzip"
)

func TestWriterReader(t *testing.T) {
	dir := t.TempDir()

	sorted := make([]uint64, len(randomValues))
	copy(sorted, randomValues)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, flag := range []uint32{0, LevSorted} {
		values := randomValues
		if flag&LevSorted > 0 {
			values = sorted
		}
		for _, number := range []uint64{NumberUnknown, uint64(len(values))} {
			file := filepath.Join(dir, "t.lev.gz")

			err := write(values, file, flag, number)
			if err != nil {
				t.Fatal(err)
			}

			values2, header, err := read(file)
			if err != nil {
				t.Fatal(err)
			}
			if header.Flag != flag || header.Number != number {
				t.Errorf("header mismatch: %s, Number=%d", header, header.Number)
			}

			if len(values2) != len(values) {
				t.Fatalf("write and read: number err: %d vs %d", len(values2), len(values))
			}
			for i := range values {
				if values[i] != values2[i] {
					t.Errorf("write and read: data mismatch. %d: %d vs %d", i, values[i], values2[i])
				}
			}
		}
	}
}

func TestWriterEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := NewWriter(buf, LevSorted)
	writer.Number = 0
	if err := writer.Flush(); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reader.IsSorted() || reader.IsUnique() {
		t.Errorf("unexpected flag: %d", reader.Flag)
	}
	if _, err = reader.Read(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestWriterNotSorted(t *testing.T) {
	writer := NewWriter(io.Discard, LevSorted|LevUnique)
	if err := writer.Write(10); err != nil {
		t.Fatal(err)
	}
	if err := writer.Write(10); err != ErrDuplicated {
		t.Errorf("expected ErrDuplicated, got %v", err)
	}
	if err := writer.Write(9); err != ErrNotSorted {
		t.Errorf("expected ErrNotSorted, got %v", err)
	}
	if writer.Count() != 1 {
		t.Errorf("expected 1 value written, got %d", writer.Count())
	}
}

func TestReaderInvalidFile(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("LEVARINT")))
	if err != ErrInvalidFileFormat {
		t.Errorf("expected ErrInvalidFileFormat, got %v", err)
	}

	_, err = NewReader(bytes.NewReader(nil))
	if err != ErrInvalidFileFormat {
		t.Errorf("expected ErrInvalidFileFormat, got %v", err)
	}

	data := append(Magic[:], MainVersion+1, 0, 0, 0)
	_, err = NewReader(bytes.NewReader(data))
	if err != ErrVersionMismatch {
		t.Errorf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestReaderBrokenFile(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := NewWriter(buf, 0)
	writer.Number = 2
	for _, v := range []uint64{1, offset8} {
		if err := writer.Write(v); err != nil {
			t.Fatal(err)
		}
	}
	data := buf.Bytes()

	// truncated in the middle of the last value
	reader, err := NewReader(bytes.NewReader(data[:len(data)-3]))
	if err != nil {
		t.Fatal(err)
	}
	if v, err := reader.Read(); err != nil || v != 1 {
		t.Fatalf("unexpected first value: %d, %v", v, err)
	}
	if _, err = reader.Read(); err != ErrBrokenFile {
		t.Errorf("expected ErrBrokenFile, got %v", err)
	}

	// missing the last value
	reader, err = NewReader(bytes.NewReader(data[:len(data)-MaxLen]))
	if err != nil {
		t.Fatal(err)
	}
	reader.Read()
	if _, err = reader.Read(); err != ErrBrokenFile {
		t.Errorf("expected ErrBrokenFile, got %v", err)
	}
}

func TestReaderBytes(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := NewWriter(buf, 0)
	var total uint64
	for _, v := range randomValues[:1000] {
		total += uint64(EncodedLen(v))
		if err := writer.Write(v); err != nil {
			t.Fatal(err)
		}
	}

	reader, err := NewReader(buf)
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err = reader.Read(); err != nil {
			break
		}
	}
	if err != io.EOF {
		t.Fatal(err)
	}
	if reader.Count() != 1000 || reader.Bytes() != total {
		t.Errorf("expected %d values in %d bytes, got %d in %d", 1000, total, reader.Count(), reader.Bytes())
	}
}

func write(values []uint64, file string, flag uint32, number uint64) error {
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	defer w.Close()

	outfh := bufio.NewWriter(w)
	defer outfh.Flush()

	gw := pgzip.NewWriter(outfh)
	defer gw.Close()

	writer := NewWriter(gw, flag)
	writer.Number = number
	for _, v := range values {
		err = writer.Write(v)
		if err != nil {
			return err
		}
	}
	return writer.Flush()
}

func read(file string) ([]uint64, Header, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, Header{}, err
	}
	defer r.Close()

	gr, err := pgzip.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, Header{}, err
	}
	defer gr.Close()

	reader, err := NewReader(gr)
	if err != nil {
		return nil, Header{}, err
	}

	values := make([]uint64, 0, 1000)
	var v uint64
	for {
		v, err = reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, Header{}, err
		}
		values = append(values, v)
	}
	return values, reader.Header, nil
}
