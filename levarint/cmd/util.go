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
	"compress/flate"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shenwei356/levarint"
	"github.com/spf13/cobra"
)

const extDataFile = ".lev"

// Options contains the global flags
type Options struct {
	NumCPUs          int
	Verbose          bool
	Compress         bool
	CompressionLevel int
}

func getOptions(cmd *cobra.Command) *Options {
	level := getFlagInt(cmd, "compression-level")
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		checkError(fmt.Errorf("gzip: invalid compression level: %d", level))
	}
	return &Options{
		NumCPUs:          getFlagPositiveInt(cmd, "threads"),
		Verbose:          getFlagBool(cmd, "verbose"),
		Compress:         !getFlagBool(cmd, "no-compress"),
		CompressionLevel: level,
	}
}

// checkFileSuffix checks binary files, compressed ones included.
func checkFileSuffix(suffix string, files ...string) {
	for _, file := range files {
		if isStdin(file) {
			continue
		}
		base := strings.TrimSuffix(strings.TrimSuffix(file, ".gz"), ".zst")
		if !strings.HasSuffix(base, suffix) {
			checkError(fmt.Errorf("input should be stdin or %s file: %s", suffix, file))
		}
	}
	checkFiles("", files...)
}

// outFileName appends the data file suffix to a prefix.
func outFileName(prefix string, opt *Options) string {
	if isStdout(prefix) {
		return prefix
	}
	if opt.Compress {
		return prefix + extDataFile + ".gz"
	}
	return prefix + extDataFile
}

// parseHexEncoding parses one hex-encoded levarint, and returns
// the value and the encoded length.
func parseHexEncoding(s string) (uint64, int, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hex string: %s", s)
	}
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("empty encoding")
	}
	if len(b) > levarint.MaxLen {
		return 0, 0, fmt.Errorf("encoding longer than %d bytes: %s", levarint.MaxLen, s)
	}
	v, n := levarint.Uvarint(b)
	if n == 0 {
		return 0, 0, fmt.Errorf("truncated encoding, %d bytes expected: %s", levarint.DecodedLen(b[0]), s)
	}
	if n < len(b) {
		return 0, 0, fmt.Errorf("%d trailing byte(s) after a %d-byte encoding: %s", len(b)-n, n, s)
	}
	return v, n, nil
}

// formatHexEncoding returns the hex string of the encoding of v.
func formatHexEncoding(v uint64) (string, int) {
	var buf [levarint.MaxLen]byte
	n := levarint.Encode(v, &buf)
	return hex.EncodeToString(buf[:n]), n
}
