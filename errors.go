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
	"strings"
)

// ErrConstructor is returned when New is given a source it cannot dispatch on
// (nil, a bool, or any other unsupported type).
var ErrConstructor = errors.New("constructor not properly called: expected a file path, an open workbook, an arrow table or record, or an iamc.Table")

// ErrSliceSource is returned when New is given a slice or array. Row slices
// have their own constructor and are rejected here on purpose.
var ErrSliceSource = errors.New("initializing from a slice is not supported, use NewFromRows instead")

// ValidationError reports cells that are empty or belong to an unnamed column
// after header parsing. Columns holds the normalized lower-case names.
type ValidationError struct {
	Columns []string
}

func (e *ValidationError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = "'" + c + "'"
	}
	return fmt.Sprintf("empty cells in data (columns: %s)", strings.Join(quoted, ", "))
}

// MetaIndexError reports required index columns missing from a meta table.
type MetaIndexError struct {
	Missing []string
}

func (e *MetaIndexError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		quoted[i] = "'" + c + "'"
	}
	return fmt.Sprintf("missing index columns for meta indicators: [%s]", strings.Join(quoted, ", "))
}
