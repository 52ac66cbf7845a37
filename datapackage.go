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
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// A datapackage is a zip archive holding a machine-readable descriptor plus
// CSV payloads: data in long format and, when present, the meta table.
const (
	descriptorName   = "datapackage.json"
	dataResourceName = "data"
	metaResourceName = "meta"
	dataResourcePath = "data/data.csv"
	metaResourcePath = "data/meta.csv"
)

type dpField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type dpSchema struct {
	Fields     []dpField `json:"fields"`
	PrimaryKey []string  `json:"primaryKey,omitempty"`
}

type dpResource struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Format    string   `json:"format"`
	Mediatype string   `json:"mediatype,omitempty"`
	Schema    dpSchema `json:"schema"`
}

type dpDescriptor struct {
	Name      string       `json:"name"`
	Profile   string       `json:"profile"`
	Resources []dpResource `json:"resources"`
}

// ToDatapackage bundles the frame (data plus meta, when present) into a
// datapackage archive at path.
func (f *Frame) ToDatapackage(path string, opts ...WriteOptions) error {
	cfg := writeOptions(opts)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create datapackage: %w", err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	desc := dpDescriptor{
		Name:    "scenario-data",
		Profile: "tabular-data-package",
		Resources: []dpResource{{
			Name:      dataResourceName,
			Path:      dataResourcePath,
			Format:    "csv",
			Mediatype: "text/csv",
			Schema: dpSchema{
				Fields: []dpField{
					{Name: "model", Type: "string"},
					{Name: "scenario", Type: "string"},
					{Name: "region", Type: "string"},
					{Name: "variable", Type: "string"},
					{Name: "unit", Type: "string"},
					{Name: "time", Type: "string"},
					{Name: "value", Type: "number"},
				},
			},
		}},
	}
	withMeta := !f.meta.IsEmpty()
	if withMeta {
		fields := []dpField{
			{Name: "model", Type: "string"},
			{Name: "scenario", Type: "string"},
		}
		for _, c := range f.meta.Columns() {
			fields = append(fields, dpField{Name: c, Type: "any"})
		}
		fields = append(fields, dpField{Name: "exclude", Type: "boolean"})
		desc.Resources = append(desc.Resources, dpResource{
			Name:      metaResourceName,
			Path:      metaResourcePath,
			Format:    "csv",
			Mediatype: "text/csv",
			Schema:    dpSchema{Fields: fields, PrimaryKey: []string{"model", "scenario"}},
		})
	}

	w, err := zw.Create(descriptorName)
	if err != nil {
		return err
	}
	enc, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode descriptor: %w", err)
	}
	if _, err := w.Write(enc); err != nil {
		return err
	}

	if err := f.writeLongCSV(zw); err != nil {
		return err
	}
	if withMeta {
		if err := f.writeMetaCSV(zw); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	cfg.Logger.Debug("wrote datapackage", zap.String("path", path), zap.Int("rows", f.Len()))
	return file.Close()
}

func (f *Frame) writeLongCSV(zw *zip.Writer) error {
	w, err := zw.Create(dataResourcePath)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"model", "scenario", "region", "variable", "unit", "time", "value"}); err != nil {
		return err
	}
	for _, r := range f.rows {
		rec := []string{r.Model, r.Scenario, r.Region, r.Variable, r.Unit, r.Time.Label(), formatValue(r.Value)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (f *Frame) writeMetaCSV(zw *zip.Writer) error {
	w, err := zw.Create(metaResourcePath)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cols := f.meta.Columns()
	header := append([]string{"model", "scenario"}, cols...)
	header = append(header, "exclude")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, key := range f.meta.Keys() {
		rec := []string{key.Model, key.Scenario}
		for _, c := range cols {
			if v, ok := f.meta.Get(key, c); ok {
				rec = append(rec, cellString(v))
			} else {
				rec = append(rec, "")
			}
		}
		rec = append(rec, cellString(f.meta.Exclude(key)))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDatapackage reads a datapackage archive written by ToDatapackage.
func ReadDatapackage(path string, opts ...ReadOptions) (*Frame, error) {
	cfg := readOptions(opts)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no such file %q: %w", path, err)
	}
	return readDatapackage(path, cfg)
}

func readDatapackage(path string, cfg ReadOptions) (*Frame, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open datapackage: %w", err)
	}
	defer zr.Close()

	var desc dpDescriptor
	descFile, err := openZipped(&zr.Reader, descriptorName)
	if err != nil {
		return nil, err
	}
	if err := json.NewDecoder(descFile).Decode(&desc); err != nil {
		descFile.Close()
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}
	descFile.Close()

	var frame *Frame
	var meta *MetaTable
	for _, res := range desc.Resources {
		switch res.Name {
		case dataResourceName:
			grid, err := readZippedCSV(&zr.Reader, res.Path)
			if err != nil {
				return nil, err
			}
			if len(grid) == 0 {
				return nil, fmt.Errorf("resource %q: empty table", res.Name)
			}
			rows, err := normalizeGrid(grid[0], grid[1:])
			if err != nil {
				return nil, fmt.Errorf("resource %q: %w", res.Name, err)
			}
			frame, err = newFrame(rows)
			if err != nil {
				return nil, err
			}
		case metaResourceName:
			grid, err := readZippedCSV(&zr.Reader, res.Path)
			if err != nil {
				return nil, err
			}
			if len(grid) == 0 {
				continue
			}
			meta, err = normalizeMetaGrid(grid[0], grid[1:])
			if err != nil {
				return nil, fmt.Errorf("resource %q: %w", res.Name, err)
			}
		}
	}
	if frame == nil {
		return nil, fmt.Errorf("datapackage %q has no data resource", path)
	}
	if meta != nil {
		frame.meta.Merge(meta)
	}
	cfg.Logger.Debug("read datapackage", zap.String("path", path), zap.Int("rows", frame.Len()))
	return frame, nil
}

func openZipped(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, zf := range zr.File {
		if zf.Name == name {
			return zf.Open()
		}
	}
	return nil, fmt.Errorf("datapackage is missing %q", name)
}

func readZippedCSV(zr *zip.Reader, name string) ([][]string, error) {
	rc, err := openZipped(zr, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}
