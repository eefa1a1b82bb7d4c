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
	"encoding/binary"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/levarint"
	"github.com/shenwei356/stable"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistics of binary files",
	Long: `Statistics of binary files

Columns:
  file          file name
  compression   compression format of the file
  sorted        whether integers are sorted and saved as differences
  unique        whether integers are unique
  number        number of integers
  bytes         bytes of encoded integers, file header excluded
  bytes_per_int average bytes per integer
  fingerprint   xxhash of the integer sequence, independent of sorting
                mode and compression, for comparing file contents
  len1-len9     numbers of encodings of each length (-b/--bands)

Tips:
  1. For lots of small files (especially on SDD), use big value of '-j' to
     parallelize counting.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		checkFileSuffix(extDataFile, files...)

		outFile := getFlagString(cmd, "out-file")
		bands := getFlagBool(cmd, "bands")
		tabular := getFlagBool(cmd, "tabular")
		skipErr := getFlagBool(cmd, "skip-err")
		sTrue := getFlagString(cmd, "symbol-true")
		sFalse := getFlagString(cmd, "symbol-false")
		if sTrue == sFalse {
			checkError(fmt.Errorf("values of -t/--symbol-true and -F/--symbol-false should be different"))
		}

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		ch := make(chan statInfo, opt.NumCPUs)
		statInfos := make([]statInfo, 0, len(files))

		done := make(chan int)
		go func() {
			var id uint64 = 1 // for keepping order
			buf := make(map[uint64]statInfo)

			for info := range ch {
				if info.err != nil {
					if !skipErr {
						checkError(fmt.Errorf("%s: %s", info.file, info.err))
					}
					log.Warningf("%s: %s", info.file, info.err)
				}

				buf[info.id] = info
				for {
					info1, ok := buf[id]
					if !ok {
						break
					}
					if info1.err == nil {
						statInfos = append(statInfos, info1)
					}
					delete(buf, id)
					id++
				}
			}
			done <- 1
		}()

		var wg sync.WaitGroup
		token := make(chan int, opt.NumCPUs)
		for i, file := range files {
			wg.Add(1)
			token <- 1
			go func(file string, id uint64) {
				defer func() {
					wg.Done()
					<-token
				}()
				info := statFile(file)
				info.id = id
				ch <- info
			}(file, uint64(i+1))
		}
		wg.Wait()
		close(ch)
		<-done

		colnames := []string{
			"file",
			"compression",
			"sorted",
			"unique",
			"number",
			"bytes",
			"bytes_per_int",
			"fingerprint",
		}
		if bands {
			for n := 1; n <= levarint.MaxLen; n++ {
				colnames = append(colnames, fmt.Sprintf("len%d", n))
			}
		}

		if tabular {
			outfh.WriteString(strings.Join(colnames, "\t") + "\n")
			for _, info := range statInfos {
				row := []string{
					info.file,
					info.compression,
					strconv.FormatBool(info.sorted),
					strconv.FormatBool(info.unique),
					strconv.FormatUint(info.number, 10),
					strconv.FormatUint(info.bytes, 10),
					fmt.Sprintf("%.2f", info.bytesPerValue()),
					info.fingerprint,
				}
				if bands {
					for _, c := range info.lens {
						row = append(row, strconv.FormatUint(c, 10))
					}
				}
				outfh.WriteString(strings.Join(row, "\t") + "\n")
			}
			return
		}

		columns := make([]stable.Column, len(colnames))
		for i, name := range colnames {
			columns[i] = stable.Column{Header: name}
			if name == "number" || name == "bytes" || name == "bytes_per_int" || strings.HasPrefix(name, "len") {
				columns[i].Align = stable.AlignRight
			}
		}
		tbl := stable.New()
		tbl.HeaderWithFormat(columns)

		for _, info := range statInfos {
			compression := info.compression
			if compression == "" {
				compression = "-"
			}
			row := []interface{}{
				info.file,
				compression,
				boolStr(sTrue, sFalse, info.sorted),
				boolStr(sTrue, sFalse, info.unique),
				humanize.Comma(int64(info.number)),
				humanize.Bytes(info.bytes),
				fmt.Sprintf("%.2f", info.bytesPerValue()),
				info.fingerprint,
			}
			if bands {
				for _, c := range info.lens {
					row = append(row, humanize.Comma(int64(c)))
				}
			}
			tbl.AddRow(row)
		}
		outfh.Write(tbl.Render(stable.StyleGrid))
	},
}

type statInfo struct {
	file        string
	compression string
	sorted      bool
	unique      bool
	number      uint64
	bytes       uint64
	fingerprint string
	lens        [levarint.MaxLen]uint64

	err error
	id  uint64
}

func (info statInfo) bytesPerValue() float64 {
	if info.number == 0 {
		return 0
	}
	return float64(info.bytes) / float64(info.number)
}

func statFile(file string) (info statInfo) {
	info.file = file

	infh, r, compression, err := inStream(file)
	if err != nil {
		info.err = err
		return
	}
	defer r.Close()
	info.compression = compression

	reader, err := levarint.NewReader(infh)
	if err != nil {
		info.err = errors.Wrap(err, file)
		return
	}
	info.sorted = reader.IsSorted()
	info.unique = reader.IsUnique()

	digest := xxhash.New()
	var buf [8]byte
	var v, nbytes uint64
	for {
		v, err = reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			info.err = err
			return
		}

		binary.LittleEndian.PutUint64(buf[:], v)
		digest.Write(buf[:])

		info.lens[reader.Bytes()-nbytes-1]++
		nbytes = reader.Bytes()
	}

	info.number = reader.Count()
	info.bytes = reader.Bytes()
	info.fingerprint = fmt.Sprintf("%016x", digest.Sum64())
	return
}

func boolStr(sTrue, sFalse string, v bool) string {
	if v {
		return sTrue
	}
	return sFalse
}

func init() {
	RootCmd.AddCommand(statCmd)

	statCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	statCmd.Flags().BoolP("bands", "b", false, "count encodings of each length")
	statCmd.Flags().BoolP("tabular", "T", false, "output in machine-friendly tabular format")
	statCmd.Flags().BoolP("skip-err", "e", false, "skip error, only show warning message")
	statCmd.Flags().StringP("symbol-true", "t", "✓", "symbol for true")
	statCmd.Flags().StringP("symbol-false", "F", "✕", "symbol for false")
}
