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

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Table is a plain in-memory grid: a header plus rows of cells. It is the
// simplest way to hand tabular data to New without going through a file.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New constructs a Frame from any supported source:
//
//   - a file path (.csv, .xlsx, .xlsm, .xls, .zip datapackage, .parquet)
//   - an open *excelize.File workbook
//   - an arrow.Table or arrow.Record
//   - an iamc.Table
//
// nil, booleans and any other type fail with ErrConstructor; slices fail
// with ErrSliceSource since explicit rows belong in NewFromRows.
func New(src any, opts ...ReadOptions) (*Frame, error) {
	cfg := readOptions(opts)
	var (
		frame *Frame
		err   error
	)
	switch v := src.(type) {
	case nil:
		return nil, fmt.Errorf("%w (got nil)", ErrConstructor)
	case bool:
		return nil, fmt.Errorf("%w (got bool)", ErrConstructor)
	case string:
		frame, err = readFile(v, cfg)
	case *excelize.File:
		if v == nil {
			return nil, fmt.Errorf("%w (got nil %T)", ErrConstructor, v)
		}
		frame, err = readWorkbook(v, cfg)
	case arrow.Table:
		frame, err = fromArrowTable(v, cfg)
	case arrow.Record:
		frame, err = fromArrowRecord(v, cfg)
	case Table:
		frame, err = fromTable(v, cfg)
	case *Table:
		if v == nil {
			return nil, fmt.Errorf("%w (got nil %T)", ErrConstructor, v)
		}
		frame, err = fromTable(*v, cfg)
	default:
		switch reflect.ValueOf(src).Kind() {
		case reflect.Slice, reflect.Array:
			return nil, ErrSliceSource
		}
		return nil, fmt.Errorf("%w (got %T)", ErrConstructor, src)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Meta != nil {
		frame.meta.Merge(cfg.Meta)
	}
	return frame, nil
}

func readFile(path string, cfg ReadOptions) (*Frame, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no such file %q: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if cfg.Engine == "xls" || ext == ".xls" {
		return readXLS(path, cfg)
	}
	switch ext {
	case ".csv":
		return readCSVPath(path, cfg)
	case ".xlsx", ".xlsm":
		return readExcelPath(path, cfg)
	case ".zip":
		return readDatapackage(path, cfg)
	case ".parquet":
		return readParquet(path, cfg)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}
}

func fromTable(tbl Table, cfg ReadOptions) (*Frame, error) {
	cells := make([][]string, len(tbl.Rows))
	for i, row := range tbl.Rows {
		out := make([]string, len(row))
		for j, c := range row {
			out[j] = cellString(c)
		}
		cells[i] = out
	}
	cells = clampRows(cells, cfg)
	rows, err := normalizeGrid(tbl.Columns, cells)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("parsed in-memory table",
		zap.Int("columns", len(tbl.Columns)), zap.Int("rows", len(rows)))
	return newFrame(rows)
}

// clampRows applies the row limit to raw data rows; the header offset is
// handled by each reader before the grid reaches this point.
func clampRows(cells [][]string, cfg ReadOptions) [][]string {
	if cfg.NumRows > 0 && len(cells) > cfg.NumRows {
		cells = cells[:cfg.NumRows]
	}
	return cells
}

// cellString renders an in-memory cell the way it would appear in a text
// grid; nil becomes the empty cell.
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		if c {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case time.Time:
		return Stamp(c).Label()
	case Time:
		return c.Label()
	default:
		return fmt.Sprintf("%v", c)
	}
}

// readMetaSource parses a standalone meta table from a file path, an open
// workbook, or an in-memory Table.
func readMetaSource(src any, cfg ReadOptions) (*MetaTable, error) {
	switch v := src.(type) {
	case nil:
		return nil, fmt.Errorf("%w (got nil)", ErrConstructor)
	case string:
		return readMetaFile(v, cfg)
	case *excelize.File:
		if v == nil {
			return nil, fmt.Errorf("%w (got nil %T)", ErrConstructor, v)
		}
		return readMetaWorkbook(v, metaSheetOrFirst(v, cfg))
	case Table:
		return normalizeMetaGrid(v.Columns, anyGrid(v.Rows))
	case *Table:
		if v == nil {
			return nil, fmt.Errorf("%w (got nil %T)", ErrConstructor, v)
		}
		return normalizeMetaGrid(v.Columns, anyGrid(v.Rows))
	default:
		return nil, fmt.Errorf("%w (got %T)", ErrConstructor, src)
	}
}

func anyGrid(rows [][]any) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = cellString(c)
		}
		out[i] = cells
	}
	return out
}

func readMetaFile(path string, cfg ReadOptions) (*MetaTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no such file %q: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readMetaCSV(path)
	case ".xlsx", ".xlsm":
		o, err := engineOptions(cfg)
		if err != nil {
			return nil, err
		}
		wb, err := excelize.OpenFile(path, o)
		if err != nil {
			return nil, err
		}
		defer wb.Close()
		return readMetaWorkbook(wb, metaSheetOrFirst(wb, cfg))
	default:
		return nil, fmt.Errorf("unsupported meta file extension %q", ext)
	}
}

// metaSheetOrFirst picks the configured meta sheet when the workbook has one,
// else falls back to the first sheet. Standalone meta files are typically a
// single unnamed-by-convention sheet.
func metaSheetOrFirst(wb *excelize.File, cfg ReadOptions) string {
	for _, name := range wb.GetSheetList() {
		if strings.EqualFold(name, cfg.MetaSheetName) {
			return name
		}
	}
	if list := wb.GetSheetList(); len(list) > 0 {
		return list[0]
	}
	return cfg.MetaSheetName
}
