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

package iamc

import "go.uber.org/zap"

const (
	// DataSheet is the sheet name used when writing data to a workbook.
	DataSheet = "data"
	// MetaSheet is the default sheet name for the meta table.
	MetaSheet = "meta"
	// DataSheetPattern is the default selector when reading: any sheet whose
	// name matches it (case-insensitive) is treated as a data sheet.
	DataSheetPattern = "data*"
)

// ReadOptions configures construction from a file or workbook. Start from
// DefaultReadOptions and override fields as needed.
type ReadOptions struct {
	// SheetName selects the data sheet(s): a literal name or a glob pattern,
	// matched case-insensitively against sheet names.
	SheetName string
	// Sheets holds multiple selectors; when set it takes precedence over
	// SheetName. All matched sheets are concatenated into one row set.
	Sheets []string
	// MetaSheetName is the sheet read as the meta table when present.
	MetaSheetName string
	// NumRows limits the number of data rows read after the header; zero
	// reads everything.
	NumRows int
	// HeaderRow is the number of leading rows skipped before the header.
	HeaderRow int
	// Engine selects the spreadsheet backend: "" (by file extension),
	// "excelize" or "xls".
	Engine string
	// Password and RawCellValue are forwarded to the excelize backend.
	Password     string
	RawCellValue bool
	// EngineOptions holds backend-specific extras forwarded verbatim to the
	// reader. Recognized excelize keys: "password", "raw_cell_value",
	// "max_calc_iterations", "unzip_size_limit", "unzip_xml_size_limit",
	// "short_date_pattern", "long_date_pattern", "long_time_pattern".
	EngineOptions map[string]any
	// Meta is merged into the frame after construction.
	Meta *MetaTable
	// Logger receives structured progress output; defaults to a nop logger.
	Logger *zap.Logger
}

// DefaultReadOptions returns the documented defaults.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		SheetName:     DataSheetPattern,
		MetaSheetName: MetaSheet,
		Logger:        zap.NewNop(),
	}
}

func readOptions(opts []ReadOptions) ReadOptions {
	cfg := DefaultReadOptions()
	if len(opts) > 0 {
		o := opts[0]
		if o.SheetName != "" {
			cfg.SheetName = o.SheetName
		}
		if len(o.Sheets) > 0 {
			cfg.Sheets = o.Sheets
		}
		if o.MetaSheetName != "" {
			cfg.MetaSheetName = o.MetaSheetName
		}
		cfg.NumRows = o.NumRows
		cfg.HeaderRow = o.HeaderRow
		cfg.Engine = o.Engine
		cfg.Password = o.Password
		cfg.RawCellValue = o.RawCellValue
		cfg.EngineOptions = o.EngineOptions
		cfg.Meta = o.Meta
		if o.Logger != nil {
			cfg.Logger = o.Logger
		}
	}
	return cfg
}

func (o ReadOptions) sheetSelectors() []string {
	if len(o.Sheets) > 0 {
		return o.Sheets
	}
	return []string{o.SheetName}
}

// WriteOptions configures serialization. Start from DefaultWriteOptions and
// override fields as needed.
type WriteOptions struct {
	// SheetName is the data sheet written to a workbook.
	SheetName string
	// MetaSheetName is the sheet the meta table is written to.
	MetaSheetName string
	// ExcludeMeta stops ToExcel from bundling the meta table into the
	// workbook alongside the data sheet. By default the meta table is
	// written whenever the frame carries one.
	ExcludeMeta bool
	// LineTerminator is the CSV record terminator: "\n" or "\r\n".
	LineTerminator string
	// Logger receives structured progress output; defaults to a nop logger.
	Logger *zap.Logger
}

// DefaultWriteOptions returns the documented defaults.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		SheetName:      DataSheet,
		MetaSheetName:  MetaSheet,
		LineTerminator: "\n",
		Logger:         zap.NewNop(),
	}
}

func writeOptions(opts []WriteOptions) WriteOptions {
	cfg := DefaultWriteOptions()
	if len(opts) > 0 {
		o := opts[0]
		if o.SheetName != "" {
			cfg.SheetName = o.SheetName
		}
		if o.MetaSheetName != "" {
			cfg.MetaSheetName = o.MetaSheetName
		}
		cfg.ExcludeMeta = o.ExcludeMeta
		if o.LineTerminator != "" {
			cfg.LineTerminator = o.LineTerminator
		}
		if o.Logger != nil {
			cfg.Logger = o.Logger
		}
	}
	return cfg
}
