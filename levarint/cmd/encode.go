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
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode plain integers to hex encodings",
	Long: `Encode plain integers to hex encodings

Input is non-negative integers (< 2^64), one per line.
Output is the hex string of the 1-9 bytes encoding, one per line.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var err error

		if opt.Verbose {
			log.Info("checking input files ...")
		}
		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		outFile := getFlagString(cmd, "out-file")
		all := getFlagBool(cmd, "all")

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		var reader *breader.BufferedReader
		var chunk breader.Chunk
		var data interface{}
		var line, h string
		var v uint64
		var n int
		var total uint64
		for _, file := range files {
			reader, err = breader.NewDefaultBufferedReader(file)
			checkError(errors.Wrap(err, file))

			for chunk = range reader.Ch {
				checkError(chunk.Err)
				for _, data = range chunk.Data {
					line = strings.TrimSpace(data.(string))
					if line == "" {
						continue
					}

					v, err = strconv.ParseUint(line, 10, 64)
					if err != nil {
						checkError(fmt.Errorf("integer should be in range of [0, 2^64): %s", line))
					}

					h, n = formatHexEncoding(v)
					if all {
						outfh.WriteString(fmt.Sprintf("%d\t%d\t%s\n", v, n, h))
					} else {
						outfh.WriteString(h + "\n")
					}
					total++
				}
			}
		}

		if opt.Verbose {
			log.Infof("%d integers encoded", total)
		}
	},
}

func init() {
	RootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	encodeCmd.Flags().BoolP("all", "a", false, `output all data: integer, encoded length, hex encoding`)
}
