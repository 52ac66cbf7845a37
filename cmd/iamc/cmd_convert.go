// Copyright 2025 The iamc authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"iamc"
)

var flagNoMeta bool

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a scenario-data file between formats",
	Long: `Convert reads the input file and writes it in the format implied by the
output file's extension (.csv, .xlsx, .zip datapackage, .parquet).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := args[0], args[1]
		ropts, err := readOptions()
		if err != nil {
			return err
		}
		frame, err := iamc.New(in, ropts)
		if err != nil {
			return err
		}
		wopts, err := writeOptions()
		if err != nil {
			return err
		}
		wopts.ExcludeMeta = flagNoMeta

		logger.Info("converting",
			zap.String("input", in), zap.String("output", out), zap.Int("rows", frame.Len()))

		switch ext := strings.ToLower(filepath.Ext(out)); ext {
		case ".csv":
			return frame.ToCSV(out, wopts)
		case ".xlsx":
			return frame.ToExcel(out, wopts)
		case ".zip":
			return frame.ToDatapackage(out, wopts)
		case ".parquet":
			return frame.ToParquet(out, wopts)
		default:
			return fmt.Errorf("unsupported output extension %q", ext)
		}
	},
}

func init() {
	convertCmd.Flags().BoolVar(&flagNoMeta, "no-meta", false, "do not write the meta table")
	rootCmd.AddCommand(convertCmd)
}
