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
	"math"
	"sort"
)

// ComputeAverage computes the average value of a float array
func ComputeAverage(nums []float64) float64 {
	if len(nums) == 0 {
		return 0.0
	}
	sum := 0.0
	for i := 0; i < len(nums); i++ {
		sum += nums[i]
	}
	return sum / float64(len(nums))
}

// ComputeStdDev computes the population standard deviation of a float array
func ComputeStdDev(nums []float64) float64 {
	if len(nums) == 0 {
		return 0.0
	}
	avg := ComputeAverage(nums)
	sumSq := 0.0
	for _, n := range nums {
		d := n - avg
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(nums)))
}

// ComputeQuantile computes the q-quantile of a float array with linear
// interpolation between closest ranks. q must be in [0, 1].
func ComputeQuantile(nums []float64, q float64) float64 {
	if len(nums) == 0 {
		return 0.0
	}
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// CeilDiv returns ceil(a / b) for positive integers.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
