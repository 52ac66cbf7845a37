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

func TestEqualFramesOrderIndependent(t *testing.T) {
	rows := testRows()
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	shuffled, err := iamc.NewFromRows(rows, testMeta())
	require.NoError(t, err)
	assert.True(t, iamc.EqualFrames(testFrame(t), shuffled))
}

func TestEqualFramesTolerance(t *testing.T) {
	rows := testRows()
	rows[0].Value += 1e-13
	near, err := iamc.NewFromRows(rows, nil)
	require.NoError(t, err)
	assert.True(t, iamc.EqualFrames(dataFrame(t), near))

	rows = testRows()
	rows[0].Value += 1e-3
	far, err := iamc.NewFromRows(rows, nil)
	require.NoError(t, err)
	assert.False(t, iamc.EqualFrames(dataFrame(t), far))
	assert.Contains(t, iamc.DiffFrames(dataFrame(t), far), "data rows differ")
}

func TestEqualFramesMetaDiff(t *testing.T) {
	a := testFrame(t)
	b := testFrame(t)
	b.Meta().Set(keyA, "number", 5.0)

	diff := iamc.DiffFrames(a, b)
	assert.Contains(t, diff, "meta tables differ")

	b.Meta().Set(keyA, "number", 1.0)
	assert.True(t, iamc.EqualFrames(a, b))
}

func TestEqualFramesExcludeFlag(t *testing.T) {
	a := dataFrame(t)
	b := dataFrame(t)
	b.Meta().SetExclude(keyB, true)
	assert.False(t, iamc.EqualFrames(a, b))
}

// A meta table that was never touched must equal one loaded from an input
// carrying no indicators, even if the loader registered the keys.
func TestEqualFramesUntouchedMetaKeys(t *testing.T) {
	a := dataFrame(t)
	b := dataFrame(t)
	b.Meta().SetExclude(keyA, false)
	assert.True(t, iamc.EqualFrames(a, b))
}

func TestEqualFramesRowCount(t *testing.T) {
	b, err := iamc.NewFromRows(testRows()[:4], nil)
	require.NoError(t, err)
	assert.False(t, iamc.EqualFrames(dataFrame(t), b))
}
