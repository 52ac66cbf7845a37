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
	"errors"
	"fmt"
	"sort"
)

// Row is one long-format data point. Unit may be empty; the other string
// dimensions must not be.
type Row struct {
	Model    string
	Scenario string
	Region   string
	Variable string
	Unit     string
	Time     Time
	Value    float64
}

// Key returns the meta-table key of the row.
func (r Row) Key() Key { return Key{Model: r.Model, Scenario: r.Scenario} }

// Frame is the in-memory scenario-data container: a set of long-format rows
// plus a per-(model, scenario) meta table. A Frame holds no reference to the
// file it was read from.
type Frame struct {
	rows []Row
	meta *MetaTable
}

// NewFromRows builds a Frame from explicit rows and an optional meta table.
// Rows are copied and kept in canonical sort order; duplicates are legal.
func NewFromRows(rows []Row, meta *MetaTable) (*Frame, error) {
	if len(rows) == 0 {
		return nil, errors.New("cannot initialize from empty data")
	}
	for i, r := range rows {
		if r.Model == "" || r.Scenario == "" || r.Region == "" || r.Variable == "" {
			return nil, fmt.Errorf("row %d: model, scenario, region and variable must not be empty", i)
		}
	}
	f := &Frame{rows: append([]Row(nil), rows...), meta: NewMetaTable()}
	sortRows(f.rows)
	if meta != nil {
		f.meta.Merge(meta)
	}
	return f, nil
}

func newFrame(rows []Row) (*Frame, error) {
	return NewFromRows(rows, nil)
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.Model != b.Model:
			return a.Model < b.Model
		case a.Scenario != b.Scenario:
			return a.Scenario < b.Scenario
		case a.Region != b.Region:
			return a.Region < b.Region
		case a.Variable != b.Variable:
			return a.Variable < b.Variable
		case a.Unit != b.Unit:
			return a.Unit < b.Unit
		case !a.Time.Equal(b.Time):
			return a.Time.Less(b.Time)
		default:
			return a.Value < b.Value
		}
	})
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.rows) }

// Data returns a copy of the rows in canonical order.
func (f *Frame) Data() []Row {
	return append([]Row(nil), f.rows...)
}

// Meta returns the frame's meta table. The table is live: mutating it
// mutates the frame.
func (f *Frame) Meta() *MetaTable { return f.meta }

// Index returns the distinct (model, scenario) keys of the data rows, sorted.
func (f *Frame) Index() []Key {
	seen := make(map[Key]bool)
	var keys []Key
	for _, r := range f.rows {
		if k := r.Key(); !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Model != keys[j].Model {
			return keys[i].Model < keys[j].Model
		}
		return keys[i].Scenario < keys[j].Scenario
	})
	return keys
}

func (f *Frame) distinct(get func(Row) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range f.rows {
		if v := get(r); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Models returns the distinct model names, sorted.
func (f *Frame) Models() []string { return f.distinct(func(r Row) string { return r.Model }) }

// Scenarios returns the distinct scenario names, sorted.
func (f *Frame) Scenarios() []string { return f.distinct(func(r Row) string { return r.Scenario }) }

// Regions returns the distinct region names, sorted.
func (f *Frame) Regions() []string { return f.distinct(func(r Row) string { return r.Region }) }

// Variables returns the distinct variable names, sorted.
func (f *Frame) Variables() []string { return f.distinct(func(r Row) string { return r.Variable }) }

// Units returns the distinct units, sorted; a missing unit appears as "".
func (f *Frame) Units() []string { return f.distinct(func(r Row) string { return r.Unit }) }

// Times returns the distinct temporal keys, sorted.
func (f *Frame) Times() []Time {
	seen := make(map[Time]bool)
	var out []Time
	for _, r := range f.rows {
		if !seen[r.Time] {
			seen[r.Time] = true
			out = append(out, r.Time)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	return &Frame{rows: append([]Row(nil), f.rows...), meta: f.meta.Copy()}
}

// SetMeta assigns an indicator column across the frame's index. With one
// value it broadcasts to every key; otherwise values are matched positionally
// against Index().
func (f *Frame) SetMeta(name string, values ...any) error {
	keys := f.Index()
	switch {
	case len(values) == 1:
		for _, k := range keys {
			f.meta.Set(k, name, values[0])
		}
	case len(values) == len(keys):
		for i, k := range keys {
			f.meta.Set(k, name, values[i])
		}
	default:
		return fmt.Errorf("meta %q: got %d values for %d index entries", name, len(values), len(keys))
	}
	return nil
}

// LoadMeta parses an external meta table (file path or in-memory Table) and
// merges it into the frame by (model, scenario) key. The merge is atomic: a
// malformed input leaves the frame untouched.
func (f *Frame) LoadMeta(src any, opts ...ReadOptions) error {
	cfg := readOptions(opts)
	mt, err := readMetaSource(src, cfg)
	if err != nil {
		return err
	}
	f.meta.Merge(mt)
	return nil
}
