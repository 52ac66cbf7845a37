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
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"iamc"
)

const configFile = ".iamc.yaml"

// fileConfig holds workspace-level defaults, loaded from .iamc.yaml in the
// current directory when present. Command-line flags win over it.
type fileConfig struct {
	SheetName      string `yaml:"sheet_name"`
	MetaSheetName  string `yaml:"meta_sheet_name"`
	LineTerminator string `yaml:"line_terminator"`
}

func loadFileConfig() (fileConfig, error) {
	var cfg fileConfig
	b, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// readOptions resolves the effective read configuration from flags and the
// workspace config file.
func readOptions() (iamc.ReadOptions, error) {
	fc, err := loadFileConfig()
	if err != nil {
		return iamc.ReadOptions{}, err
	}
	opts := iamc.DefaultReadOptions()
	if fc.SheetName != "" {
		opts.SheetName = fc.SheetName
	}
	if fc.MetaSheetName != "" {
		opts.MetaSheetName = fc.MetaSheetName
	}
	if flagSheet != "" {
		opts.SheetName = flagSheet
	}
	if flagMetaSheet != "" {
		opts.MetaSheetName = flagMetaSheet
	}
	opts.Logger = logger
	return opts, nil
}

func writeOptions() (iamc.WriteOptions, error) {
	fc, err := loadFileConfig()
	if err != nil {
		return iamc.WriteOptions{}, err
	}
	opts := iamc.DefaultWriteOptions()
	if fc.LineTerminator != "" {
		opts.LineTerminator = fc.LineTerminator
	}
	if flagMetaSheet != "" {
		opts.MetaSheetName = flagMetaSheet
	}
	opts.Logger = logger
	return opts, nil
}
