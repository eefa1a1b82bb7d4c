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
	"io"
	"runtime"

	"github.com/pkg/errors"
	"github.com/shenwei356/levarint"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Read and output binary format to plain text",
	Long: `Read and output binary format to plain text

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		var err error

		if opt.Verbose {
			log.Info("checking input files ...")
		}
		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		checkFileSuffix(extDataFile, files...)

		outFile := getFlagString(cmd, "out-file")
		all := getFlagBool(cmd, "all")
		showHeader := getFlagBool(cmd, "show-header")

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		var reader *levarint.Reader
		var v uint64
		var h string
		var n int
		for _, file := range files {
			func() {
				infh, r, _, err := inStream(file)
				checkError(err)
				defer r.Close()

				reader, err = levarint.NewReader(infh)
				checkError(errors.Wrap(err, file))

				if showHeader {
					outfh.WriteString(fmt.Sprintf("# %s: %s\n", file, reader.Header))
				}

				for {
					v, err = reader.Read()
					if err != nil {
						if err == io.EOF {
							break
						}
						checkError(errors.Wrap(err, file))
					}

					if all {
						h, n = formatHexEncoding(v)
						outfh.WriteString(fmt.Sprintf("%d\t%d\t%s\n", v, n, h))
					} else {
						outfh.WriteString(fmt.Sprintf("%d\n", v))
					}
				}

				if opt.Verbose {
					log.Infof("%d integers read from %s", reader.Count(), file)
				}
			}()
		}
	},
}

func init() {
	RootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	viewCmd.Flags().BoolP("all", "a", false, `output all data: integer, encoded length, hex encoding`)
	viewCmd.Flags().BoolP("show-header", "H", false, `show file header as comment line`)
}
