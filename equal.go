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
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Numeric tolerance of the equality oracle.
const (
	equalFraction = 1e-9
	equalMargin   = 1e-12
)

// metaEntry is the normalized comparison form of one meta-table key: the
// exclude flag plus the indicator values actually set. Keys carrying nothing
// (no values, not excluded) vanish, so a table that was never touched equals
// one that was loaded from an empty file.
type metaEntry struct {
	Exclude bool
	Values  map[string]any
}

func metaEntries(m *MetaTable) map[Key]metaEntry {
	out := make(map[Key]metaEntry)
	for _, key := range m.Keys() {
		e := metaEntry{Exclude: m.Exclude(key)}
		for _, c := range m.Columns() {
			if v, ok := m.Get(key, c); ok {
				if e.Values == nil {
					e.Values = make(map[string]any)
				}
				e.Values[c] = v
			}
		}
		if e.Exclude || len(e.Values) > 0 {
			out[key] = e
		}
	}
	return out
}

func cmpOptions() []cmp.Option {
	return []cmp.Option{
		cmpopts.EquateApprox(equalFraction, equalMargin),
	}
}

// DiffFrames deep-compares two frames and returns a human-readable diff, or
// "" when they are equal. Rows compare as unordered multisets over all
// columns with numeric tolerance; meta tables compare as unordered mappings
// per (model, scenario) key including the exclude flag. Row and column order
// never matter.
func DiffFrames(a, b *Frame) string {
	ar, br := a.Data(), b.Data()
	sortRows(ar)
	sortRows(br)
	if diff := cmp.Diff(ar, br, cmpOptions()...); diff != "" {
		return "data rows differ:\n" + diff
	}
	if diff := cmp.Diff(metaEntries(a.meta), metaEntries(b.meta), cmpOptions()...); diff != "" {
		return "meta tables differ:\n" + diff
	}
	return ""
}

// EqualFrames reports whether two frames are semantically equal under the
// oracle used by DiffFrames.
func EqualFrames(a, b *Frame) bool {
	return DiffFrames(a, b) == ""
}
