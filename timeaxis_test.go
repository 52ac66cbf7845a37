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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeLabelYear(t *testing.T) {
	for _, label := range []string{"2005", " 2005 ", "2005.0"} {
		ts, err := ParseTimeLabel(label)
		require.NoError(t, err, label)
		assert.Equal(t, Year(2005), ts)
	}
}

func TestParseTimeLabelStamp(t *testing.T) {
	for _, label := range []string{
		"2010-07-21 00:00:00",
		"2010-07-21T00:00:00",
		"2010-07-21",
	} {
		ts, err := ParseTimeLabel(label)
		require.NoError(t, err, label)
		require.True(t, ts.IsStamp())
		assert.Equal(t, 2010, ts.AsYear())
	}
}

func TestParseTimeLabelInvalid(t *testing.T) {
	for _, label := range []string{"", "foo", "20x5"} {
		_, err := ParseTimeLabel(label)
		assert.Error(t, err, label)
	}
}

func TestTimeLabelRoundTrip(t *testing.T) {
	for _, ts := range []Time{
		Year(2005),
		Stamp(time.Date(2010, 7, 21, 12, 30, 0, 0, time.UTC)),
	} {
		parsed, err := ParseTimeLabel(ts.Label())
		require.NoError(t, err)
		assert.True(t, ts.Equal(parsed), ts.Label())
	}
}

func TestTimeLess(t *testing.T) {
	assert.True(t, Year(2005).Less(Year(2010)))
	assert.False(t, Year(2010).Less(Year(2005)))
	assert.True(t, Year(2005).Less(Stamp(time.Date(2010, 7, 21, 0, 0, 0, 0, time.UTC))))
	assert.True(t, Stamp(time.Date(2004, 12, 31, 23, 0, 0, 0, time.UTC)).Less(Year(2005)))
}

func TestStampNormalization(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	a := Stamp(time.Date(2010, 7, 21, 14, 0, 0, 123456, loc))
	b := Stamp(time.Date(2010, 7, 21, 12, 0, 0, 0, time.UTC))
	assert.True(t, a.Equal(b))
}
