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

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"iamc"
)

func testRows() []iamc.Row {
	return []iamc.Row{
		{Model: "model_a", Scenario: "scen_a", Region: "World", Variable: "Primary Energy", Unit: "EJ/yr", Time: iamc.Year(2005), Value: 1.0},
		{Model: "model_a", Scenario: "scen_a", Region: "World", Variable: "Primary Energy", Unit: "EJ/yr", Time: iamc.Year(2010), Value: 6.0},
		{Model: "model_a", Scenario: "scen_a", Region: "World", Variable: "Primary Energy|Coal", Unit: "EJ/yr", Time: iamc.Year(2005), Value: 0.5},
		{Model: "model_a", Scenario: "scen_a", Region: "World", Variable: "Primary Energy|Coal", Unit: "EJ/yr", Time: iamc.Year(2010), Value: 3.0},
		{Model: "model_a", Scenario: "scen_b", Region: "World", Variable: "Primary Energy", Unit: "EJ/yr", Time: iamc.Year(2005), Value: 2.0},
		{Model: "model_a", Scenario: "scen_b", Region: "World", Variable: "Primary Energy", Unit: "EJ/yr", Time: iamc.Year(2010), Value: 7.0},
	}
}

func scenRows(scenario string) []iamc.Row {
	var out []iamc.Row
	for _, r := range testRows() {
		if r.Scenario == scenario {
			out = append(out, r)
		}
	}
	return out
}

var (
	keyA = iamc.Key{Model: "model_a", Scenario: "scen_a"}
	keyB = iamc.Key{Model: "model_a", Scenario: "scen_b"}
)

// testMeta mirrors the canonical meta fixture: a numeric indicator for both
// scenarios and a string indicator set only for scen_a.
func testMeta() *iamc.MetaTable {
	m := iamc.NewMetaTable()
	m.Set(keyA, "number", 1.0)
	m.Set(keyB, "number", 2.0)
	m.Set(keyA, "string", "foo")
	return m
}

// testFrame is the canonical fixture: data plus meta.
func testFrame(t *testing.T) *iamc.Frame {
	t.Helper()
	f, err := iamc.NewFromRows(testRows(), testMeta())
	require.NoError(t, err)
	return f
}

// dataFrame is the canonical fixture without meta.
func dataFrame(t *testing.T) *iamc.Frame {
	t.Helper()
	f, err := iamc.NewFromRows(testRows(), nil)
	require.NoError(t, err)
	return f
}

func scenFrame(t *testing.T, scenario string, meta *iamc.MetaTable) *iamc.Frame {
	t.Helper()
	f, err := iamc.NewFromRows(scenRows(scenario), meta)
	require.NoError(t, err)
	return f
}

// writeSheet fills one sheet of wb from a grid of typed cells; nil cells
// stay unset.
func writeSheet(t *testing.T, wb *excelize.File, sheet string, grid [][]any) {
	t.Helper()
	_, err := wb.NewSheet(sheet)
	require.NoError(t, err)
	for i, row := range grid {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, ref, &row))
	}
}

// writeWorkbook creates an xlsx file at path containing the given sheets.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	for name, grid := range sheets {
		writeSheet(t, wb, name, grid)
	}
	if _, ok := sheets["Sheet1"]; !ok {
		require.NoError(t, wb.DeleteSheet("Sheet1"))
	}
	require.NoError(t, wb.SaveAs(path))
}
