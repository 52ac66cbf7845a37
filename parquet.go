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
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"go.uber.org/zap"
)

// ToParquet serializes the frame as a dimension-indexed Parquet file: the
// long-format table with the meta table stored in the Arrow schema metadata.
// The round trip through ReadParquet is lossless.
func (f *Frame) ToParquet(path string, opts ...WriteOptions) error {
	cfg := writeOptions(opts)
	table, err := f.ArrowTable(memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer table.Release()

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer out.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	writer, err := pqarrow.NewFileWriter(table.Schema(), out, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	cfg.Logger.Debug("wrote parquet", zap.String("path", path), zap.Int("rows", f.Len()))
	return out.Close()
}

// ReadParquet reads a Parquet file written by ToParquet, or any Parquet file
// whose columns normalize to the long or wide scenario-data layout.
func ReadParquet(path string, opts ...ReadOptions) (*Frame, error) {
	cfg := readOptions(opts)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no such file %q: %w", path, err)
	}
	return readParquet(path, cfg)
}

func readParquet(path string, cfg ReadOptions) (*Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer in.Close()

	pf, err := file.NewParquetReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}
	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	cfg.Logger.Debug("read parquet", zap.String("path", path), zap.Int64("rows", table.NumRows()))
	return fromArrowTable(table, cfg)
}
