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
	"strings"

	"github.com/spf13/cobra"

	"iamc"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Read a scenario-data file and report its shape",
	Long: `Validate parses the file through the full normalization and validation
pipeline and prints a summary. A malformed file fails with the validation
error a reader would see.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ropts, err := readOptions()
		if err != nil {
			return err
		}
		frame, err := iamc.New(args[0], ropts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: ok\n", args[0])
		fmt.Fprintf(out, "  rows:      %d\n", frame.Len())
		fmt.Fprintf(out, "  models:    %s\n", strings.Join(frame.Models(), ", "))
		fmt.Fprintf(out, "  scenarios: %s\n", strings.Join(frame.Scenarios(), ", "))
		fmt.Fprintf(out, "  regions:   %s\n", strings.Join(frame.Regions(), ", "))
		fmt.Fprintf(out, "  variables: %s\n", strings.Join(frame.Variables(), ", "))
		if cols := frame.Meta().Columns(); len(cols) > 0 {
			fmt.Fprintf(out, "  meta:      %s\n", strings.Join(cols, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
