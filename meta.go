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

import "sort"

// Key identifies a meta-table entry by its index columns.
type Key struct {
	Model    string
	Scenario string
}

// MetaTable holds per-(model, scenario) indicator columns plus one boolean
// exclude flag per key. Indicator columns keep their insertion order; values
// are scalars (string, float64 or bool).
type MetaTable struct {
	columns []string
	values  map[Key]map[string]any
	exclude map[Key]bool
}

// NewMetaTable returns an empty meta table.
func NewMetaTable() *MetaTable {
	return &MetaTable{
		values:  make(map[Key]map[string]any),
		exclude: make(map[Key]bool),
	}
}

// Set assigns one indicator value, registering the column on first use.
func (m *MetaTable) Set(key Key, column string, value any) {
	if _, ok := m.values[key]; !ok {
		m.values[key] = make(map[string]any)
	}
	if !m.hasColumn(column) {
		m.columns = append(m.columns, column)
	}
	m.values[key][column] = value
}

func (m *MetaTable) hasColumn(name string) bool {
	for _, c := range m.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Get returns one indicator value.
func (m *MetaTable) Get(key Key, column string) (any, bool) {
	vals, ok := m.values[key]
	if !ok {
		return nil, false
	}
	v, ok := vals[column]
	return v, ok
}

// Columns returns the indicator column names in order.
func (m *MetaTable) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// Keys returns all keys with an indicator value or exclude flag, sorted.
func (m *MetaTable) Keys() []Key {
	seen := make(map[Key]bool, len(m.values))
	for k := range m.values {
		seen[k] = true
	}
	for k := range m.exclude {
		seen[k] = true
	}
	keys := make([]Key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Model != keys[j].Model {
			return keys[i].Model < keys[j].Model
		}
		return keys[i].Scenario < keys[j].Scenario
	})
	return keys
}

// Len returns the number of keys carrying any meta content.
func (m *MetaTable) Len() int { return len(m.Keys()) }

// Exclude returns the exclude flag for key; absent keys are not excluded.
func (m *MetaTable) Exclude(key Key) bool { return m.exclude[key] }

// SetExclude sets the exclude flag for key.
func (m *MetaTable) SetExclude(key Key, excluded bool) {
	m.exclude[key] = excluded
}

// Merge copies other into m key by key: unseen keys are added, existing keys
// are overwritten column by column. Exclude flags overwrite for every key
// other has touched, so an explicit false clears a previously set flag.
func (m *MetaTable) Merge(other *MetaTable) {
	if other == nil {
		return
	}
	for key, vals := range other.values {
		for _, col := range other.columns {
			if v, ok := vals[col]; ok {
				m.Set(key, col, v)
			}
		}
	}
	for key, flag := range other.exclude {
		m.exclude[key] = flag
	}
}

// Copy returns a deep copy.
func (m *MetaTable) Copy() *MetaTable {
	out := NewMetaTable()
	out.columns = append([]string(nil), m.columns...)
	for key, vals := range m.values {
		cp := make(map[string]any, len(vals))
		for c, v := range vals {
			cp[c] = v
		}
		out.values[key] = cp
	}
	for key, flag := range m.exclude {
		out.exclude[key] = flag
	}
	return out
}

// IsEmpty reports whether the table carries no indicator values and no set
// exclude flags.
func (m *MetaTable) IsEmpty() bool {
	for _, vals := range m.values {
		if len(vals) > 0 {
			return false
		}
	}
	for _, flag := range m.exclude {
		if flag {
			return false
		}
	}
	return true
}
