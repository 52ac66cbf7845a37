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

// Package iamctest provides test assertions over the iamc equality oracle.
package iamctest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"iamc"
)

// AssertEqual fails the test when the two frames differ under the equality
// oracle, printing the diff.
func AssertEqual(t *testing.T, expected, observed *iamc.Frame) bool {
	t.Helper()
	diff := iamc.DiffFrames(expected, observed)
	if diff != "" {
		t.Errorf("frames differ (-expected +observed):\n%s", diff)
	}
	return diff == ""
}

// RequireEqual is AssertEqual but stops the test on failure.
func RequireEqual(t *testing.T, expected, observed *iamc.Frame) {
	t.Helper()
	require.Empty(t, iamc.DiffFrames(expected, observed), "frames differ (-expected +observed)")
}
