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
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
	"github.com/shenwei356/levarint"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
	"github.com/twotwotwo/sorts/sortutil"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack plain integers into binary file",
	Long: `Pack plain integers into binary file

Input is non-negative integers (< 2^64), one per line.

Tips:
  1. Sorting (-s/--sort) stores differences of adjacent integers,
     which significantly reduces file size for dense integers.
  2. Output is gzipped by default, use suffix ".zst" in -o/--out-prefix
     for zstd, or disable compression with -C/--no-compress.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)
		sorts.MaxProcs = opt.NumCPUs

		var err error

		if opt.Verbose {
			log.Info("checking input files ...")
		}
		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		outFile := getFlagString(cmd, "out-prefix")
		sortValues := getFlagBool(cmd, "sort")
		unique := getFlagBool(cmd, "unique")
		if unique && !sortValues {
			checkError(fmt.Errorf("flag -u/--unique needs -s/--sort"))
		}

		if opt.Compress && strings.HasSuffix(strings.ToLower(outFile), ".zst") {
			outFile = strings.TrimSuffix(outFile, ".zst")
			if !isStdout(outFile) {
				outFile += extDataFile + ".zst"
			}
		} else {
			outFile = outFileName(outFile, opt)
		}

		outfh, zw, w, err := outStream(outFile, opt.Compress, opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if zw != nil {
				zw.Close()
			}
			w.Close()
		}()

		var mode uint32
		if sortValues {
			mode |= levarint.LevSorted
		}
		if unique {
			mode |= levarint.LevUnique
		}
		writer := levarint.NewWriter(outfh, mode)

		var values []uint64
		if sortValues {
			values = make([]uint64, 0, 1<<20)
		}

		var reader *breader.BufferedReader
		var chunk breader.Chunk
		var data interface{}
		var line string
		var v uint64
		for _, file := range files {
			if opt.Verbose {
				log.Infof("reading file: %s", file)
			}
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

					if sortValues {
						values = append(values, v)
						continue
					}
					checkError(writer.Write(v))
				}
			}
		}

		if sortValues {
			if opt.Verbose {
				log.Infof("sorting %d integers", len(values))
			}
			sortutil.Uint64s(values)
			if unique {
				values = uniqUint64s(values)
			}

			writer.Number = uint64(len(values))
			for _, v = range values {
				checkError(writer.Write(v))
			}
		}
		checkError(writer.Flush())

		if opt.Verbose {
			log.Infof("%d integers saved to %s", writer.Count(), outFile)
		}
	},
}

// uniqUint64s removes duplicates of a sorted list in place.
func uniqUint64s(values []uint64) []uint64 {
	if len(values) < 2 {
		return values
	}
	j := 0
	for i := 1; i < len(values); i++ {
		if values[i] != values[j] {
			j++
			values[j] = values[i]
		}
	}
	return values[:j+1]
}

func init() {
	RootCmd.AddCommand(packCmd)

	packCmd.Flags().StringP("out-prefix", "o", "-", `out file prefix ("-" for stdout)`)
	packCmd.Flags().BoolP("sort", "s", false, "sort integers and save differences of adjacent ones")
	packCmd.Flags().BoolP("unique", "u", false, "remove duplicated integers, needs -s/--sort")
}
