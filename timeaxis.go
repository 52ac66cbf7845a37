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
	"strconv"
	"strings"
	"time"
)

// Time is the temporal key of a data row: either a plain year or a full
// timestamp. The zero value is the year 0.
type Time struct {
	year    int
	stamp   time.Time
	isStamp bool
}

// Year returns a Time holding a plain year.
func Year(y int) Time {
	return Time{year: y}
}

// Stamp returns a Time holding a timestamp. Timestamps are normalized to UTC
// and truncated to seconds so they survive a trip through a column header.
func Stamp(ts time.Time) Time {
	return Time{stamp: ts.UTC().Truncate(time.Second), isStamp: true}
}

// IsStamp reports whether t holds a timestamp rather than a year.
func (t Time) IsStamp() bool { return t.isStamp }

// AsYear returns the year. For timestamps it is the calendar year.
func (t Time) AsYear() int {
	if t.isStamp {
		return t.stamp.Year()
	}
	return t.year
}

// AsStamp returns the timestamp; for plain years it is midnight on Jan 1 UTC.
func (t Time) AsStamp() time.Time {
	if t.isStamp {
		return t.stamp
	}
	return time.Date(t.year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

const stampLayout = "2006-01-02 15:04:05"

// Label renders t as a wide-format column header.
func (t Time) Label() string {
	if t.isStamp {
		return t.stamp.Format(stampLayout)
	}
	return strconv.Itoa(t.year)
}

func (t Time) String() string { return t.Label() }

// Equal reports exact equality. Defined so comparison helpers do not need
// access to the unexported fields.
func (t Time) Equal(o Time) bool {
	if t.isStamp != o.isStamp {
		return false
	}
	if t.isStamp {
		return t.stamp.Equal(o.stamp)
	}
	return t.year == o.year
}

// Less orders years and timestamps on a single axis; a plain year sorts as
// Jan 1 of that year.
func (t Time) Less(o Time) bool {
	if !t.isStamp && !o.isStamp {
		return t.year < o.year
	}
	return t.AsStamp().Before(o.AsStamp())
}

var stampLayouts = []string{
	stampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimeLabel parses a wide-format column header back into a Time. Integer
// headers (including the "2005.0" shape some spreadsheet backends produce)
// become years, anything else must match a supported timestamp layout.
func ParseTimeLabel(label string) (Time, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return Time{}, fmt.Errorf("empty time label")
	}
	if y, err := strconv.Atoi(s); err == nil {
		return Year(y), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return Year(int(f)), nil
	}
	for _, layout := range stampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return Stamp(ts), nil
		}
	}
	return Time{}, fmt.Errorf("invalid time label %q", label)
}
