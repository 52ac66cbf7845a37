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
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagSheet     string
	flagMetaSheet string
	flagVerbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "iamc",
	Short: "Read, validate and convert IAMC scenario-data files",
	Long: `iamc works with tabular scenario data in the IAMC format:
model / scenario / region / variable / unit rows with wide time columns,
plus an optional per-(model, scenario) meta table.

Supported formats: CSV, XLSX/XLS workbooks, datapackage archives (.zip)
and Parquet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		if flagVerbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = cfg.Build()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "data sheet name or glob pattern (default \"data*\")")
	rootCmd.PersistentFlags().StringVar(&flagMetaSheet, "meta-sheet", "", "meta sheet name (default \"meta\")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
