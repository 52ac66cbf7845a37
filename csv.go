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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

func readCSVPath(path string, cfg ReadOptions) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSVReader(f, cfg)
}

func readCSVReader(r io.Reader, cfg ReadOptions) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if cfg.HeaderRow > 0 {
		if cfg.HeaderRow >= len(records) {
			return nil, fmt.Errorf("header row %d beyond end of file", cfg.HeaderRow)
		}
		records = records[cfg.HeaderRow:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	rows, err := normalizeGrid(records[0], clampRows(records[1:], cfg))
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("parsed CSV", zap.Int("rows", len(rows)))
	return newFrame(rows)
}

func readMetaCSV(path string) (*MetaTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return NewMetaTable(), nil
	}
	return normalizeMetaGrid(records[0], records[1:])
}

// wideGroup is one wide-format output line: the fixed index columns plus a
// value per time column.
type wideGroup struct {
	Model    string
	Scenario string
	Region   string
	Variable string
	Unit     string
	Cells    map[Time]float64
}

// wideGroups pivots the rows into wide format, one group per distinct
// (model, scenario, region, variable, unit) tuple, in canonical row order.
// Duplicate rows collapse to the last value.
func (f *Frame) wideGroups() []*wideGroup {
	var groups []*wideGroup
	byKey := make(map[[5]string]*wideGroup)
	for _, r := range f.rows {
		k := [5]string{r.Model, r.Scenario, r.Region, r.Variable, r.Unit}
		g, ok := byKey[k]
		if !ok {
			g = &wideGroup{
				Model:    r.Model,
				Scenario: r.Scenario,
				Region:   r.Region,
				Variable: r.Variable,
				Unit:     r.Unit,
				Cells:    make(map[Time]float64),
			}
			byKey[k] = g
			groups = append(groups, g)
		}
		g.Cells[r.Time] = r.Value
	}
	return groups
}

// wideTable renders the wide format as text cells. Empty units render as
// blank cells.
func (f *Frame) wideTable() (header []string, body [][]string) {
	times := f.Times()
	header = []string{"Model", "Scenario", "Region", "Variable", "Unit"}
	for _, t := range times {
		header = append(header, t.Label())
	}
	for _, g := range f.wideGroups() {
		line := []string{g.Model, g.Scenario, g.Region, g.Variable, g.Unit}
		for _, t := range times {
			if v, ok := g.Cells[t]; ok {
				line = append(line, formatValue(v))
			} else {
				line = append(line, "")
			}
		}
		body = append(body, line)
	}
	return header, body
}

// formatValue renders a float the way the wide writers emit it: integral
// values keep one decimal place so 1.0 round-trips as "1.0", not "1".
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// WriteCSV serializes the frame in wide format to w.
func (f *Frame) WriteCSV(w io.Writer, opts ...WriteOptions) error {
	cfg := writeOptions(opts)
	cw := csv.NewWriter(w)
	switch cfg.LineTerminator {
	case "\n":
	case "\r\n":
		cw.UseCRLF = true
	default:
		return fmt.Errorf("unsupported line terminator %q", cfg.LineTerminator)
	}

	header, body := f.wideTable()
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, line := range body {
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToCSV writes the frame to a CSV file at path.
func (f *Frame) ToCSV(path string, opts ...WriteOptions) error {
	cfg := writeOptions(opts)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()
	if err := f.WriteCSV(file, cfg); err != nil {
		return err
	}
	cfg.Logger.Debug("wrote CSV", zap.String("path", path), zap.Int("rows", f.Len()))
	return file.Close()
}

// CSVString renders the frame as a CSV document.
func (f *Frame) CSVString(opts ...WriteOptions) (string, error) {
	var sb strings.Builder
	if err := f.WriteCSV(&sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}
