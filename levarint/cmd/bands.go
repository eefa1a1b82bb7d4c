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

	"github.com/shenwei356/levarint"
	"github.com/shenwei356/stable"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Show value ranges of all encoded lengths",
	Long: `Show value ranges of all encoded lengths

An integer is encoded into n bytes if it falls in [min, max] of band n-1,
n bytes carry 7n bits of the integer minus the band offset (min),
except for the 9-byte form, which stores the integer as it is.

`,
	Run: func(cmd *cobra.Command, args []string) {
		outFile := getFlagString(cmd, "out-file")
		tabular := getFlagBool(cmd, "tabular")

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		if tabular {
			outfh.WriteString("band\tlength\tpayload_bits\tmin\tmax\n")
			for _, b := range levarint.Bands() {
				outfh.WriteString(fmt.Sprintf("%d\t%d\t%d\t%d\t%d\n", b.Index, b.Len, b.PayloadBits, b.Min, b.Max))
			}
			return
		}

		tbl := stable.New()
		tbl.HeaderWithFormat([]stable.Column{
			{Header: "band", Align: stable.AlignRight},
			{Header: "length", Align: stable.AlignRight},
			{Header: "payload_bits", Align: stable.AlignRight},
			{Header: "min", Align: stable.AlignRight, HumanizeNumbers: true},
			{Header: "max", Align: stable.AlignRight, HumanizeNumbers: true},
		})
		for _, b := range levarint.Bands() {
			tbl.AddRow([]interface{}{b.Index, b.Len, b.PayloadBits, b.Min, b.Max})
		}
		outfh.Write(tbl.Render(stable.StyleGrid))
	},
}

func init() {
	RootCmd.AddCommand(bandsCmd)

	bandsCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	bandsCmd.Flags().BoolP("tabular", "T", false, "output in machine-friendly tabular format")
}
