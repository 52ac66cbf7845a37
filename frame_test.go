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

package iamc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iamc"
)

func TestNewFromRowsEmpty(t *testing.T) {
	_, err := iamc.NewFromRows(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty data")
}

func TestNewFromRowsEmptyIndexField(t *testing.T) {
	rows := testRows()
	rows[2].Region = ""
	_, err := iamc.NewFromRows(rows, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestFrameAccessors(t *testing.T) {
	f := testFrame(t)
	assert.Equal(t, 6, f.Len())
	assert.Equal(t, []string{"model_a"}, f.Models())
	assert.Equal(t, []string{"scen_a", "scen_b"}, f.Scenarios())
	assert.Equal(t, []string{"World"}, f.Regions())
	assert.Equal(t, []string{"Primary Energy", "Primary Energy|Coal"}, f.Variables())
	assert.Equal(t, []string{"EJ/yr"}, f.Units())
	assert.Equal(t, []iamc.Time{iamc.Year(2005), iamc.Year(2010)}, f.Times())
	assert.Equal(t, []iamc.Key{keyA, keyB}, f.Index())
}

func TestFrameDataIsSorted(t *testing.T) {
	rows := testRows()
	rows[0], rows[5] = rows[5], rows[0]
	f, err := iamc.NewFromRows(rows, nil)
	require.NoError(t, err)
	assert.Equal(t, testRows(), f.Data())
}

func TestFrameCopyIndependent(t *testing.T) {
	f := testFrame(t)
	cp := f.Copy()
	cp.Meta().Set(keyA, "number", 99.0)
	require.NoError(t, cp.SetMeta("extra", "x"))

	v, _ := f.Meta().Get(keyA, "number")
	assert.Equal(t, 1.0, v)
	_, ok := f.Meta().Get(keyA, "extra")
	assert.False(t, ok)
	assert.True(t, iamc.EqualFrames(f, testFrame(t)))
}

func TestSetMetaBroadcast(t *testing.T) {
	f := dataFrame(t)
	require.NoError(t, f.SetMeta("source", "db"))
	for _, key := range []iamc.Key{keyA, keyB} {
		v, ok := f.Meta().Get(key, "source")
		require.True(t, ok)
		assert.Equal(t, "db", v)
	}
}

func TestSetMetaPositional(t *testing.T) {
	f := dataFrame(t)
	require.NoError(t, f.SetMeta("number", 1.0, 2.0))
	v, _ := f.Meta().Get(keyA, "number")
	assert.Equal(t, 1.0, v)
	v, _ = f.Meta().Get(keyB, "number")
	assert.Equal(t, 2.0, v)
}

func TestSetMetaLengthMismatch(t *testing.T) {
	f := dataFrame(t)
	err := f.SetMeta("number", 1.0, 2.0, 3.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 values for 2 index entries")
}
