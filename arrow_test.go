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

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iamc"
)

func TestArrowTableRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := testFrame(t)

	table, err := f.ArrowTable(mem)
	require.NoError(t, err)
	defer table.Release()
	assert.EqualValues(t, 6, table.NumRows())
	assert.EqualValues(t, 7, table.NumCols())

	back, err := iamc.New(table)
	require.NoError(t, err)
	assert.Empty(t, iamc.DiffFrames(f, back))
}

// A wide-format record with numeric year columns must melt the same way a
// spreadsheet does.
func TestNewFromArrowRecordWide(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "model", Type: arrow.BinaryTypes.String},
		{Name: "scenario", Type: arrow.BinaryTypes.String},
		{Name: "region", Type: arrow.BinaryTypes.String},
		{Name: "variable", Type: arrow.BinaryTypes.String},
		{Name: "unit", Type: arrow.BinaryTypes.String},
		{Name: "2005", Type: arrow.PrimitiveTypes.Float64},
		{Name: "2010", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	bldr := array.NewRecordBuilder(mem, schema)
	defer bldr.Release()
	for col, vals := range map[int][]string{
		0: {"model_a", "model_a"},
		1: {"scen_a", "scen_b"},
		2: {"World", "World"},
		3: {"Primary Energy", "Primary Energy"},
		4: {"EJ/yr", "EJ/yr"},
	} {
		for _, v := range vals {
			bldr.Field(col).(*array.StringBuilder).Append(v)
		}
	}
	bldr.Field(5).(*array.Float64Builder).AppendValues([]float64{1.0, 2.0}, nil)
	bldr.Field(6).(*array.Float64Builder).AppendValues([]float64{6.0, 7.0}, nil)
	rec := bldr.NewRecord()
	defer rec.Release()

	f, err := iamc.New(rec)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, []string{"scen_a", "scen_b"}, f.Scenarios())
	assert.Equal(t, []iamc.Time{iamc.Year(2005), iamc.Year(2010)}, f.Times())
}

func TestNewFromArrowRecordNullValueSkipped(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "model", Type: arrow.BinaryTypes.String},
		{Name: "scenario", Type: arrow.BinaryTypes.String},
		{Name: "region", Type: arrow.BinaryTypes.String},
		{Name: "variable", Type: arrow.BinaryTypes.String},
		{Name: "unit", Type: arrow.BinaryTypes.String},
		{Name: "2005", Type: arrow.PrimitiveTypes.Float64},
		{Name: "2010", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	bldr := array.NewRecordBuilder(mem, schema)
	defer bldr.Release()
	for col, v := range []string{"model_a", "scen_a", "World", "Primary Energy", "EJ/yr"} {
		bldr.Field(col).(*array.StringBuilder).Append(v)
	}
	bldr.Field(5).(*array.Float64Builder).AppendNull()
	bldr.Field(6).(*array.Float64Builder).Append(6.0)
	rec := bldr.NewRecord()
	defer rec.Release()

	f, err := iamc.New(rec)
	require.NoError(t, err)
	require.Equal(t, 1, f.Len())
	assert.Equal(t, iamc.Year(2010), f.Data()[0].Time)
}

func TestArrowTableCarriesMeta(t *testing.T) {
	mem := memory.NewGoAllocator()
	f := testFrame(t)
	f.Meta().SetExclude(keyB, true)

	table, err := f.ArrowTable(mem)
	require.NoError(t, err)
	defer table.Release()

	back, err := iamc.New(table)
	require.NoError(t, err)
	assert.True(t, back.Meta().Exclude(keyB))
	v, ok := back.Meta().Get(keyA, "string")
	require.True(t, ok)
	assert.Equal(t, "foo", v)
}
