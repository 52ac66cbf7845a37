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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaTableMerge(t *testing.T) {
	a := NewMetaTable()
	keyA := Key{Model: "model_a", Scenario: "scen_a"}
	keyB := Key{Model: "model_a", Scenario: "scen_b"}
	a.Set(keyA, "number", 1.0)
	a.Set(keyB, "number", 2.0)

	b := NewMetaTable()
	b.Set(keyA, "number", 10.0)
	b.Set(keyA, "string", "foo")
	b.SetExclude(keyB, true)

	a.Merge(b)

	v, _ := a.Get(keyA, "number")
	assert.Equal(t, 10.0, v)
	v, _ = a.Get(keyA, "string")
	assert.Equal(t, "foo", v)
	v, _ = a.Get(keyB, "number")
	assert.Equal(t, 2.0, v, "merge must not clear columns absent from the input")
	assert.True(t, a.Exclude(keyB))
	assert.Equal(t, []string{"number", "string"}, a.Columns())
}

func TestMetaTableMergeClearsExclude(t *testing.T) {
	key := Key{Model: "m", Scenario: "s"}
	a := NewMetaTable()
	a.SetExclude(key, true)

	b := NewMetaTable()
	b.SetExclude(key, false)
	a.Merge(b)
	assert.False(t, a.Exclude(key))

	// Keys other never touched keep their flag.
	a.SetExclude(key, true)
	a.Merge(NewMetaTable())
	assert.True(t, a.Exclude(key))
}

func TestMetaTableCopyIsDeep(t *testing.T) {
	key := Key{Model: "m", Scenario: "s"}
	a := NewMetaTable()
	a.Set(key, "number", 1.0)

	b := a.Copy()
	b.Set(key, "number", 2.0)
	b.SetExclude(key, true)

	v, _ := a.Get(key, "number")
	assert.Equal(t, 1.0, v)
	assert.False(t, a.Exclude(key))
}

func TestMetaTableIsEmpty(t *testing.T) {
	m := NewMetaTable()
	assert.True(t, m.IsEmpty())

	key := Key{Model: "m", Scenario: "s"}
	m.SetExclude(key, false)
	assert.True(t, m.IsEmpty(), "an unset exclude flag is not content")

	m.SetExclude(key, true)
	assert.False(t, m.IsEmpty())

	m = NewMetaTable()
	m.Set(key, "number", 1.0)
	assert.False(t, m.IsEmpty())
}

func TestMetaTableKeysSorted(t *testing.T) {
	m := NewMetaTable()
	m.Set(Key{Model: "model_b", Scenario: "scen_a"}, "x", 1.0)
	m.Set(Key{Model: "model_a", Scenario: "scen_b"}, "x", 1.0)
	m.Set(Key{Model: "model_a", Scenario: "scen_a"}, "x", 1.0)

	keys := m.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, Key{Model: "model_a", Scenario: "scen_a"}, keys[0])
	assert.Equal(t, Key{Model: "model_a", Scenario: "scen_b"}, keys[1])
	assert.Equal(t, Key{Model: "model_b", Scenario: "scen_a"}, keys[2])
}
