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
	"sort"
	"strconv"
	"strings"
)

// The required index columns of a data table, in normalized lower-case form.
var indexColumns = []string{"model", "scenario", "region", "variable", "unit"}

// normalizeGrid turns a raw cell grid (header plus data rows, as read from
// CSV, a workbook sheet, or an in-memory table) into long-format rows. It is
// the single validation entry point shared by every reader.
//
// Wide input has one column per time value; long input is detected by the
// presence of a "value" column next to a "time" or "year" column. Missing
// units become "". A column named "notes" is dropped for compatibility with
// raw database downloads.
func normalizeGrid(header []string, cells [][]string) ([]Row, error) {
	width := len(header)
	for _, row := range cells {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("empty table")
	}

	names := make([]string, width)
	for i := 0; i < width; i++ {
		var raw string
		if i < len(header) {
			raw = strings.TrimSpace(header[i])
		}
		if raw == "" {
			names[i] = fmt.Sprintf("unnamed: %d", i)
		} else {
			names[i] = strings.ToLower(raw)
		}
	}

	colIdx := make(map[string]int, width)
	for i, n := range names {
		colIdx[n] = i
	}

	var missing []string
	for _, c := range indexColumns {
		if _, ok := colIdx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}

	_, hasValue := colIdx["value"]
	timeIdx, hasTimeCol := colIdx["time"]
	if !hasTimeCol {
		timeIdx, hasTimeCol = colIdx["year"]
	}
	long := hasValue && hasTimeCol

	// Classify the remaining columns: wide time columns, droppable noise,
	// or unnamed placeholders that must stay empty.
	type timeColumn struct {
		idx int
		t   Time
	}
	var timeCols []timeColumn
	unnamed := make(map[int]string)
	for i, n := range names {
		if isIndexColumn(n) || n == "notes" {
			continue
		}
		if long && (i == timeIdx || n == "value") {
			continue
		}
		if strings.HasPrefix(n, "unnamed: ") {
			unnamed[i] = n
			continue
		}
		if long {
			return nil, fmt.Errorf("invalid column %q in long-format data", n)
		}
		t, err := ParseTimeLabel(n)
		if err != nil {
			return nil, fmt.Errorf("invalid column %q: neither an index column nor a time column", n)
		}
		timeCols = append(timeCols, timeColumn{idx: i, t: t})
	}

	badCols := make(map[string]bool)
	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var rows []Row
	for _, raw := range cells {
		if rowEmpty(raw) {
			continue
		}
		for i, n := range unnamed {
			if cell(raw, i) != "" {
				badCols[n] = true
			}
		}
		base := Row{
			Model:    cell(raw, colIdx["model"]),
			Scenario: cell(raw, colIdx["scenario"]),
			Region:   cell(raw, colIdx["region"]),
			Variable: cell(raw, colIdx["variable"]),
			Unit:     cell(raw, colIdx["unit"]),
		}
		for _, c := range []string{"model", "scenario", "region", "variable"} {
			if cell(raw, colIdx[c]) == "" {
				badCols[c] = true
			}
		}
		if len(badCols) > 0 {
			continue
		}
		if long {
			v := cell(raw, colIdx["value"])
			if v == "" {
				continue
			}
			t, err := ParseTimeLabel(cell(raw, timeIdx))
			if err != nil {
				return nil, fmt.Errorf("invalid time value: %w", err)
			}
			val, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q in column 'value'", v)
			}
			r := base
			r.Time = t
			r.Value = val
			rows = append(rows, r)
			continue
		}
		for _, tc := range timeCols {
			v := cell(raw, tc.idx)
			if v == "" {
				continue
			}
			val, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q in column %q", v, tc.t.Label())
			}
			r := base
			r.Time = tc.t
			r.Value = val
			rows = append(rows, r)
		}
	}

	if len(badCols) > 0 {
		return nil, &ValidationError{Columns: sortedKeys(badCols)}
	}
	return rows, nil
}

func isIndexColumn(name string) bool {
	for _, c := range indexColumns {
		if name == c {
			return true
		}
	}
	return false
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// normalizeMetaGrid parses a raw meta-table grid. The index columns (model,
// scenario) are mandatory; a legacy "exclude" column maps to the exclude
// flag; every other named column becomes an indicator. A grid with headers
// but no data rows yields an empty table.
func normalizeMetaGrid(header []string, cells [][]string) (*MetaTable, error) {
	modelIdx, scenIdx := -1, -1
	excludeIdx := -1
	type indicator struct {
		idx  int
		name string
	}
	var indicators []indicator
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		switch strings.ToLower(name) {
		case "model":
			modelIdx = i
		case "scenario":
			scenIdx = i
		case "exclude":
			excludeIdx = i
		case "":
			// Invisible header cells left behind by spreadsheet tools.
		default:
			indicators = append(indicators, indicator{idx: i, name: name})
		}
	}

	var missing []string
	if modelIdx < 0 {
		missing = append(missing, "model")
	}
	if scenIdx < 0 {
		missing = append(missing, "scenario")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MetaIndexError{Missing: missing}
	}

	mt := NewMetaTable()
	cell := func(row []string, i int) string {
		if i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	for _, raw := range cells {
		if rowEmpty(raw) {
			continue
		}
		key := Key{Model: cell(raw, modelIdx), Scenario: cell(raw, scenIdx)}
		if key.Model == "" || key.Scenario == "" {
			continue
		}
		for _, ind := range indicators {
			if v := cell(raw, ind.idx); v != "" {
				mt.Set(key, ind.name, inferScalar(v))
			}
		}
		if excludeIdx >= 0 {
			mt.SetExclude(key, parseFlag(cell(raw, excludeIdx)))
		}
	}
	return mt, nil
}

// inferScalar maps a cell's text to the scalar type it round-trips as:
// booleans, then numbers, then plain text.
func inferScalar(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "1.0", "yes":
		return true
	default:
		return false
	}
}
