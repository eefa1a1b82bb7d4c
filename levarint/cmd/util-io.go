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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

const bufferSize = 65536

const (
	formatGzip = "gzip"
	formatZstd = "zstd"
)

var magicGzip = []byte{0x1f, 0x8b}
var magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}

// closers closes the decompressor before the file.
type closers []io.Closer

func (cs closers) Close() (err error) {
	for _, c := range cs {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// inStream opens a binary file or stdin, and transparently decompresses
// gzip or zstd data detected by magic number.
// It returns the reader, a closer, and the compression format ("" for none).
func inStream(file string) (*bufio.Reader, io.Closer, string, error) {
	var err error
	var r *os.File
	if isStdin(file) {
		if !detectStdin() {
			return nil, nil, "", errors.New("stdin not detected")
		}
		r = os.Stdin
	} else {
		r, err = os.Open(file)
		if err != nil {
			return nil, nil, "", errors.Wrap(err, file)
		}
	}

	br := bufio.NewReaderSize(r, bufferSize)

	format, err := compressionFormat(br)
	if err != nil {
		r.Close()
		return nil, nil, "", errors.Wrap(err, file)
	}

	switch format {
	case formatGzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			r.Close()
			return nil, nil, format, errors.Wrap(err, file)
		}
		return bufio.NewReaderSize(gr, bufferSize), closers{gr, r}, format, nil
	case formatZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			r.Close()
			return nil, nil, format, errors.Wrap(err, file)
		}
		return bufio.NewReaderSize(zr, bufferSize), closers{zr.IOReadCloser(), r}, format, nil
	}
	return br, r, format, nil
}

func compressionFormat(b *bufio.Reader) (string, error) {
	m, err := b.Peek(len(magicZstd))
	if err != nil && err != io.EOF {
		return "", err
	}
	if bytes.HasPrefix(m, magicGzip) {
		return formatGzip, nil
	}
	if bytes.HasPrefix(m, magicZstd) {
		return formatZstd, nil
	}
	return "", nil
}

// outStream creates a buffered writer for a binary file or stdout.
// Compressed output is zstd for files ending with .zst, and gzip otherwise.
// Callers flush the buffered writer, then close the compressor if not nil,
// and the file at last.
func outStream(file string, compress bool, level int) (*bufio.Writer, io.WriteCloser, *os.File, error) {
	var w *os.File
	if isStdout(file) {
		w = os.Stdout
	} else {
		var err error
		w, err = os.Create(file)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fail to write %s: %s", file, err)
		}
	}

	if !compress {
		return bufio.NewWriterSize(w, bufferSize), nil, w, nil
	}

	if strings.HasSuffix(strings.ToLower(file), ".zst") {
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil, nil, nil, err
		}
		return bufio.NewWriterSize(zw, bufferSize), zw, w, nil
	}

	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, nil, nil, err
	}
	return bufio.NewWriterSize(gw, bufferSize), gw, w, nil
}

func detectStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
