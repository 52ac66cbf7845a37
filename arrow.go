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

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	json "github.com/goccy/go-json"
)

// metaMetadataKey is the Arrow schema metadata key carrying the serialized
// meta table through columnar formats.
const metaMetadataKey = "iamc:meta"

type metaDoc struct {
	Columns []string     `json:"columns"`
	Rows    []metaDocRow `json:"rows"`
}

type metaDocRow struct {
	Model    string         `json:"model"`
	Scenario string         `json:"scenario"`
	Exclude  bool           `json:"exclude"`
	Values   map[string]any `json:"values,omitempty"`
}

func metaToJSON(m *MetaTable) (string, error) {
	doc := metaDoc{Columns: m.Columns()}
	for _, key := range m.Keys() {
		row := metaDocRow{Model: key.Model, Scenario: key.Scenario, Exclude: m.Exclude(key)}
		for _, c := range doc.Columns {
			if v, ok := m.Get(key, c); ok {
				if row.Values == nil {
					row.Values = make(map[string]any)
				}
				row.Values[c] = v
			}
		}
		doc.Rows = append(doc.Rows, row)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode meta table: %w", err)
	}
	return string(b), nil
}

func metaFromJSON(s string) (*MetaTable, error) {
	var doc metaDoc
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode meta table: %w", err)
	}
	m := NewMetaTable()
	for _, row := range doc.Rows {
		key := Key{Model: row.Model, Scenario: row.Scenario}
		for _, c := range doc.Columns {
			if v, ok := row.Values[c]; ok {
				m.Set(key, c, v)
			}
		}
		if row.Exclude {
			m.SetExclude(key, true)
		}
	}
	return m, nil
}

// ArrowTable converts the frame into a long-format Arrow table. The meta
// table travels as JSON in the schema metadata, so columnar round trips are
// lossless. The caller owns releasing the table.
func (f *Frame) ArrowTable(mem memory.Allocator) (arrow.Table, error) {
	metaJSON, err := metaToJSON(f.meta)
	if err != nil {
		return nil, err
	}
	md := arrow.NewMetadata([]string{metaMetadataKey}, []string{metaJSON})
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "model", Type: arrow.BinaryTypes.String},
		{Name: "scenario", Type: arrow.BinaryTypes.String},
		{Name: "region", Type: arrow.BinaryTypes.String},
		{Name: "variable", Type: arrow.BinaryTypes.String},
		{Name: "unit", Type: arrow.BinaryTypes.String},
		{Name: "time", Type: arrow.BinaryTypes.String},
		{Name: "value", Type: arrow.PrimitiveTypes.Float64},
	}, &md)

	bldr := array.NewRecordBuilder(mem, schema)
	defer bldr.Release()
	for _, r := range f.rows {
		bldr.Field(0).(*array.StringBuilder).Append(r.Model)
		bldr.Field(1).(*array.StringBuilder).Append(r.Scenario)
		bldr.Field(2).(*array.StringBuilder).Append(r.Region)
		bldr.Field(3).(*array.StringBuilder).Append(r.Variable)
		bldr.Field(4).(*array.StringBuilder).Append(r.Unit)
		bldr.Field(5).(*array.StringBuilder).Append(r.Time.Label())
		bldr.Field(6).(*array.Float64Builder).Append(r.Value)
	}
	rec := bldr.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

// fromArrowTable reads an Arrow table in either long or wide layout through
// the shared normalization path.
func fromArrowTable(t arrow.Table, cfg ReadOptions) (*Frame, error) {
	schema := t.Schema()
	columns := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		columns[i] = field.Name
	}

	var cells [][]string
	tr := array.NewTableReader(t, t.NumRows())
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		numRows := int(rec.NumRows())
		for rowIdx := 0; rowIdx < numRows; rowIdx++ {
			line := make([]string, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				line[colIdx] = arrowCellString(col, rowIdx)
			}
			cells = append(cells, line)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}

	rows, err := normalizeGrid(columns, clampRows(cells, cfg))
	if err != nil {
		return nil, err
	}
	frame, err := newFrame(rows)
	if err != nil {
		return nil, err
	}
	if md := schema.Metadata(); md.FindKey(metaMetadataKey) >= 0 {
		mt, err := metaFromJSON(md.Values()[md.FindKey(metaMetadataKey)])
		if err != nil {
			return nil, err
		}
		frame.meta.Merge(mt)
	}
	return frame, nil
}

func fromArrowRecord(rec arrow.Record, cfg ReadOptions) (*Frame, error) {
	t := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer t.Release()
	return fromArrowTable(t, cfg)
}

// arrowCellString renders one Arrow column value as a text cell; nulls
// become empty cells.
func arrowCellString(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}
	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)
	case arrow.LARGE_STRING:
		return col.(*array.LargeString).Value(pos)
	case arrow.BOOL:
		return cellString(col.(*array.Boolean).Value(pos))
	case arrow.INT8:
		return cellString(int64(col.(*array.Int8).Value(pos)))
	case arrow.INT16:
		return cellString(int64(col.(*array.Int16).Value(pos)))
	case arrow.INT32:
		return cellString(int64(col.(*array.Int32).Value(pos)))
	case arrow.INT64:
		return cellString(col.(*array.Int64).Value(pos))
	case arrow.UINT8:
		return cellString(int64(col.(*array.Uint8).Value(pos)))
	case arrow.UINT16:
		return cellString(int64(col.(*array.Uint16).Value(pos)))
	case arrow.UINT32:
		return cellString(int64(col.(*array.Uint32).Value(pos)))
	case arrow.UINT64:
		return cellString(int64(col.(*array.Uint64).Value(pos)))
	case arrow.FLOAT32:
		return cellString(float64(col.(*array.Float32).Value(pos)))
	case arrow.FLOAT64:
		return cellString(col.(*array.Float64).Value(pos))
	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime().Format("2006-01-02")
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime().Format("2006-01-02")
	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return Stamp(col.(*array.Timestamp).Value(pos).ToTime(unit)).Label()
	default:
		return fmt.Sprintf("%v", col.GetOneForMarshal(pos))
	}
}
