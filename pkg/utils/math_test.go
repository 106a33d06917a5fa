// Copyright 2025 The LaunchTune Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAverage(t *testing.T) {
	assert.Equal(t, 0.0, ComputeAverage(nil))
	assert.InDelta(t, 2.0, ComputeAverage([]float64{1, 2, 3}), 1e-9)
}

func TestComputeStdDev(t *testing.T) {
	assert.Equal(t, 0.0, ComputeStdDev(nil))
	assert.InDelta(t, 0.0, ComputeStdDev([]float64{5, 5, 5}), 1e-9)
	assert.InDelta(t, 2.0, ComputeStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestComputeQuantile(t *testing.T) {
	nums := []float64{4, 1, 3, 2}
	assert.InDelta(t, 1.0, ComputeQuantile(nums, 0), 1e-9)
	assert.InDelta(t, 4.0, ComputeQuantile(nums, 1), 1e-9)
	assert.InDelta(t, 2.5, ComputeQuantile(nums, 0.5), 1e-9)
	assert.InDelta(t, 1.75, ComputeQuantile(nums, 0.25), 1e-9)
	// input must stay untouched
	assert.Equal(t, []float64{4, 1, 3, 2}, nums)
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 13, CeilDiv(100, 8))
	assert.Equal(t, 1, CeilDiv(1, 8))
	assert.Equal(t, 10, CeilDiv(80, 8))
}

func TestSplitHours(t *testing.T) {
	cases := []struct {
		hours   float64
		wantH   int
		wantMin int
	}{
		{0, 0, 0},
		{0.85, 0, 51},
		{1.2, 1, 12},
		{2.5, 2, 30},
		{1.9999, 2, 0},
		{-1, 0, 0},
	}
	for _, c := range cases {
		h, m := SplitHours(c.hours)
		assert.Equal(t, c.wantH, h, "hours of %v", c.hours)
		assert.Equal(t, c.wantMin, m, "minutes of %v", c.hours)
		assert.GreaterOrEqual(t, m, 0)
		assert.LessOrEqual(t, m, 59)
	}
}
