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
	"path"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// engineOptions maps the reader configuration onto the excelize backend.
// EngineOptions entries are forwarded verbatim; an unrecognized key is an
// error rather than a silent no-op.
func engineOptions(cfg ReadOptions) (excelize.Options, error) {
	o := excelize.Options{
		Password:     cfg.Password,
		RawCellValue: cfg.RawCellValue,
	}
	for k, v := range cfg.EngineOptions {
		switch k {
		case "password":
			o.Password = fmt.Sprintf("%v", v)
		case "raw_cell_value":
			b, ok := v.(bool)
			if !ok {
				return o, fmt.Errorf("engine option %q: expected bool, got %T", k, v)
			}
			o.RawCellValue = b
		case "max_calc_iterations":
			n, ok := toUint(v)
			if !ok {
				return o, fmt.Errorf("engine option %q: expected integer, got %T", k, v)
			}
			o.MaxCalcIterations = n
		case "unzip_size_limit":
			n, ok := toInt64(v)
			if !ok {
				return o, fmt.Errorf("engine option %q: expected integer, got %T", k, v)
			}
			o.UnzipSizeLimit = n
		case "unzip_xml_size_limit":
			n, ok := toInt64(v)
			if !ok {
				return o, fmt.Errorf("engine option %q: expected integer, got %T", k, v)
			}
			o.UnzipXMLSizeLimit = n
		case "short_date_pattern":
			o.ShortDatePattern = fmt.Sprintf("%v", v)
		case "long_date_pattern":
			o.LongDatePattern = fmt.Sprintf("%v", v)
		case "long_time_pattern":
			o.LongTimePattern = fmt.Sprintf("%v", v)
		default:
			return o, fmt.Errorf("unrecognized engine option %q", k)
		}
	}
	return o, nil
}

func toUint(v any) (uint, bool) {
	switch n := v.(type) {
	case int:
		return uint(n), true
	case int64:
		return uint(n), true
	case uint:
		return n, true
	case float64:
		return uint(n), true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func readExcelPath(path string, cfg ReadOptions) (*Frame, error) {
	switch cfg.Engine {
	case "", "excelize":
	case "xls":
		return readXLS(path, cfg)
	default:
		return nil, fmt.Errorf("unsupported engine %q", cfg.Engine)
	}
	o, err := engineOptions(cfg)
	if err != nil {
		return nil, err
	}
	wb, err := excelize.OpenFile(path, o)
	if err != nil {
		// Backend errors surface unmodified.
		return nil, err
	}
	defer wb.Close()
	return readWorkbook(wb, cfg)
}

// readWorkbook reads data sheets (and, when present, the meta sheet) from an
// open workbook handle.
func readWorkbook(wb *excelize.File, cfg ReadOptions) (*Frame, error) {
	selectors := cfg.sheetSelectors()
	matched := matchSheets(wb.GetSheetList(), selectors, cfg.MetaSheetName)
	if len(matched) == 0 {
		return nil, fmt.Errorf("no sheet matching %v in workbook", selectors)
	}

	var rows []Row
	for _, sheet := range matched {
		grid, err := wb.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		sheetRows, err := gridRows(grid, cfg)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		rows = append(rows, sheetRows...)
	}
	cfg.Logger.Debug("read workbook", zap.Strings("sheets", matched), zap.Int("rows", len(rows)))

	frame, err := newFrame(rows)
	if err != nil {
		return nil, err
	}
	for _, name := range wb.GetSheetList() {
		if strings.EqualFold(name, cfg.MetaSheetName) {
			mt, err := readMetaWorkbook(wb, name)
			if err != nil {
				return nil, err
			}
			frame.meta.Merge(mt)
			break
		}
	}
	return frame, nil
}

// gridRows applies header offset and row limit to a raw sheet grid and
// normalizes it.
func gridRows(grid [][]string, cfg ReadOptions) ([]Row, error) {
	if cfg.HeaderRow > 0 {
		if cfg.HeaderRow >= len(grid) {
			return nil, fmt.Errorf("header row %d beyond end of sheet", cfg.HeaderRow)
		}
		grid = grid[cfg.HeaderRow:]
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	return normalizeGrid(grid[0], clampRows(grid[1:], cfg))
}

// matchSheets returns the sheet names matching any selector, in workbook
// order. Selectors are literals or glob patterns, matched case-insensitively.
// The meta sheet is never picked up by a pattern.
func matchSheets(names, selectors []string, metaSheet string) []string {
	var out []string
	for _, name := range names {
		if strings.EqualFold(name, metaSheet) {
			continue
		}
		for _, sel := range selectors {
			ok, err := path.Match(strings.ToLower(sel), strings.ToLower(name))
			if err == nil && ok {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func readMetaWorkbook(wb *excelize.File, sheet string) (*MetaTable, error) {
	grid, err := wb.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return NewMetaTable(), nil
	}
	return normalizeMetaGrid(grid[0], grid[1:])
}

// readXLS reads a legacy BIFF workbook. The xls backend only supports
// reading; errors surface unmodified.
func readXLS(filePath string, cfg ReadOptions) (*Frame, error) {
	wb, err := xls.Open(filePath, "utf-8")
	if err != nil {
		return nil, err
	}

	var names []string
	grids := make(map[string][][]string)
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		names = append(names, sheet.Name)
		grids[sheet.Name] = xlsGrid(sheet)
	}

	selectors := cfg.sheetSelectors()
	matched := matchSheets(names, selectors, cfg.MetaSheetName)
	if len(matched) == 0 {
		return nil, fmt.Errorf("no sheet matching %v in workbook", selectors)
	}

	var rows []Row
	for _, name := range matched {
		sheetRows, err := gridRows(grids[name], cfg)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		rows = append(rows, sheetRows...)
	}
	frame, err := newFrame(rows)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if strings.EqualFold(name, cfg.MetaSheetName) {
			grid := grids[name]
			if len(grid) == 0 {
				break
			}
			mt, err := normalizeMetaGrid(grid[0], grid[1:])
			if err != nil {
				return nil, err
			}
			frame.meta.Merge(mt)
			break
		}
	}
	return frame, nil
}

func xlsGrid(sheet *xls.WorkSheet) [][]string {
	var grid [][]string
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		line := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			line[c] = row.Col(c)
		}
		grid = append(grid, line)
	}
	return grid
}

// ToExcel serializes the frame to a workbook. The target is either a file
// path or a shared *excelize.File handle; with a shared handle repeated
// calls append sheets and the caller owns saving and closing. The meta
// table is bundled into the same workbook unless ExcludeMeta is set.
func (f *Frame) ToExcel(target any, opts ...WriteOptions) error {
	cfg := writeOptions(opts)
	switch t := target.(type) {
	case string:
		wb := excelize.NewFile()
		defer wb.Close()
		if err := f.writeDataSheet(wb, cfg.SheetName); err != nil {
			return err
		}
		if !cfg.ExcludeMeta && !f.meta.IsEmpty() {
			if err := writeMetaSheet(wb, cfg.MetaSheetName, f.meta); err != nil {
				return err
			}
		}
		dropScratchSheet(wb, cfg.SheetName)
		cfg.Logger.Debug("wrote workbook", zap.String("path", t), zap.Int("rows", f.Len()))
		return wb.SaveAs(t)
	case *excelize.File:
		if err := f.writeDataSheet(t, cfg.SheetName); err != nil {
			return err
		}
		if !cfg.ExcludeMeta && !f.meta.IsEmpty() {
			return writeMetaSheet(t, cfg.MetaSheetName, f.meta)
		}
		return nil
	default:
		return fmt.Errorf("unsupported target %T: expected a file path or *excelize.File", target)
	}
}

// ExportMeta writes the meta table to its own sheet, either in a new file or
// appended to a shared workbook handle.
func (f *Frame) ExportMeta(target any, opts ...WriteOptions) error {
	cfg := writeOptions(opts)
	switch t := target.(type) {
	case string:
		wb := excelize.NewFile()
		defer wb.Close()
		if err := writeMetaSheet(wb, cfg.MetaSheetName, f.meta); err != nil {
			return err
		}
		dropScratchSheet(wb, cfg.MetaSheetName)
		return wb.SaveAs(t)
	case *excelize.File:
		return writeMetaSheet(t, cfg.MetaSheetName, f.meta)
	default:
		return fmt.Errorf("unsupported target %T: expected a file path or *excelize.File", target)
	}
}

// dropScratchSheet removes the default sheet excelize seeds new workbooks
// with, unless it is the one just written.
func dropScratchSheet(wb *excelize.File, written string) {
	const scratch = "Sheet1"
	if strings.EqualFold(written, scratch) {
		return
	}
	for _, name := range wb.GetSheetList() {
		if name == scratch {
			_ = wb.DeleteSheet(scratch)
			return
		}
	}
}

func (f *Frame) writeDataSheet(wb *excelize.File, sheet string) error {
	idx, err := wb.NewSheet(sheet)
	if err != nil {
		return err
	}
	wb.SetActiveSheet(idx)

	times := f.Times()
	header := []any{"Model", "Scenario", "Region", "Variable", "Unit"}
	for _, t := range times {
		if t.IsStamp() {
			header = append(header, t.Label())
		} else {
			header = append(header, t.AsYear())
		}
	}
	if err := setRow(wb, sheet, 1, header); err != nil {
		return err
	}

	for i, g := range f.wideGroups() {
		line := make([]any, 0, len(header))
		line = append(line, g.Model, g.Scenario, g.Region, g.Variable)
		if g.Unit == "" {
			// A missing unit stays a blank cell on disk.
			line = append(line, nil)
		} else {
			line = append(line, g.Unit)
		}
		for _, t := range times {
			if v, ok := g.Cells[t]; ok {
				line = append(line, v)
			} else {
				line = append(line, nil)
			}
		}
		if err := setRow(wb, sheet, i+2, line); err != nil {
			return err
		}
	}
	return nil
}

func writeMetaSheet(wb *excelize.File, sheet string, m *MetaTable) error {
	if _, err := wb.NewSheet(sheet); err != nil {
		return err
	}

	cols := m.Columns()
	withExclude := false
	for _, k := range m.Keys() {
		if m.Exclude(k) {
			withExclude = true
			break
		}
	}

	header := []any{"model", "scenario"}
	for _, c := range cols {
		header = append(header, c)
	}
	if withExclude {
		header = append(header, "exclude")
	}
	if err := setRow(wb, sheet, 1, header); err != nil {
		return err
	}

	for i, key := range m.Keys() {
		line := []any{key.Model, key.Scenario}
		for _, c := range cols {
			if v, ok := m.Get(key, c); ok {
				line = append(line, v)
			} else {
				line = append(line, nil)
			}
		}
		if withExclude {
			line = append(line, m.Exclude(key))
		}
		if err := setRow(wb, sheet, i+2, line); err != nil {
			return err
		}
	}
	return nil
}

func setRow(wb *excelize.File, sheet string, row int, cells []any) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, ref, &cells)
}
