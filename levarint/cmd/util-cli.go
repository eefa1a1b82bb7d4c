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
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/shenwei356/breader"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(-1)
	}
}

func isStdin(file string) bool {
	return file == "-"
}

func isStdout(file string) bool {
	return file == "-"
}

func getFlagString(cmd *cobra.Command, flag string) string {
	value, err := cmd.Flags().GetString(flag)
	checkError(err)
	return value
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return value
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return value
}

func getFlagPositiveInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(err)
	if value <= 0 {
		checkError(fmt.Errorf("value of flag --%s should be greater than 0", flag))
	}
	return value
}

// getFileList returns files from arguments, "-" for stdin when none given.
func getFileList(args []string, checkFile bool) []string {
	files := make([]string, 0, 1000)
	if len(args) == 0 {
		files = append(files, "-")
	} else {
		for _, file := range args {
			if isStdin(file) {
				files = append(files, file)
				continue
			}
			file, err := homedir.Expand(file)
			checkError(err)
			if checkFile {
				checkFiles("", file)
			}
			files = append(files, file)
		}
	}
	return files
}

// getListFromFile reads file names from a file, one per line.
func getListFromFile(file string, checkFile bool) ([]string, error) {
	reader, err := breader.NewDefaultBufferedReader(file)
	if err != nil {
		return nil, fmt.Errorf("read file list from '%s': %s", file, err)
	}

	var _file string
	lists := make([]string, 0, 1000)
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, fmt.Errorf("read file list from '%s': %s", file, chunk.Err)
		}

		for _, data := range chunk.Data {
			_file = strings.TrimSpace(data.(string))
			if _file == "" {
				continue
			}
			_file, err = homedir.Expand(_file)
			if err != nil {
				return nil, err
			}
			if checkFile && !isStdin(_file) {
				ok, err := pathutil.Exists(_file)
				if err != nil {
					return lists, fmt.Errorf("check file '%s': %s", _file, err)
				}
				if !ok {
					return lists, fmt.Errorf("file listed in '%s' not found: %s", file, _file)
				}
			}
			lists = append(lists, _file)
		}
	}
	return lists, nil
}

// getFileListFromArgsAndFile returns files from the file given by flag,
// or from arguments if the flag is not set.
func getFileListFromArgsAndFile(cmd *cobra.Command, args []string, checkFileFromArgs bool, flag string, checkFileFromFile bool) []string {
	infileList := getFlagString(cmd, flag)
	if infileList == "" {
		return getFileList(args, checkFileFromArgs)
	}

	files, err := getListFromFile(infileList, checkFileFromFile)
	checkError(err)
	if len(files) == 0 {
		log.Warningf("no files found in file list: %s", infileList)
		return files
	}
	if len(args) > 0 {
		log.Warningf("%d input file(s) given in arguments are ignored", len(args))
	}
	return files
}

func checkFiles(suffix string, files ...string) {
	for _, file := range files {
		if isStdin(file) {
			continue
		}
		ok, err := pathutil.Exists(file)
		if err != nil {
			checkError(fmt.Errorf("fail to read file %s: %s", file, err))
		}
		if !ok {
			checkError(fmt.Errorf("file (linked file) does not exist: %s", file))
		}
		if suffix != "" && !strings.HasSuffix(file, suffix) {
			checkError(fmt.Errorf("input should be stdin or %s file: %s", suffix, file))
		}
	}
}

func logInputFiles(opt *Options, files []string) {
	if !opt.Verbose {
		return
	}
	if len(files) == 1 && isStdin(files[0]) {
		log.Info("no files given, reading from stdin")
	} else {
		log.Infof("%d input file(s) given", len(files))
	}
}
