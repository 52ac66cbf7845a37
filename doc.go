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

// Package iamc reads, validates, writes and compares IAMC-format scenario
// data: long-format rows of model, scenario, region, variable, unit, time
// and value, plus a per-(model, scenario) meta table of indicators.
//
// Frames are constructed through New from a file path (CSV, XLSX/XLS
// workbook, datapackage archive, Parquet), an open excelize workbook, an
// Arrow table or record, or an in-memory Table, all through one shared
// normalization and validation pipeline. Writers cover the same formats;
// EqualFrames and DiffFrames compare frames independent of row order with
// numeric tolerance.
package iamc
