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
)

// SplitHours splits fractional hours into whole hours and remainder minutes.
// Minutes are rounded and the overflow carried, so the minute part is always
// in [0, 59] and never negative.
func SplitHours(hours float64) (int, int) {
	if hours < 0 {
		return 0, 0
	}
	whole := int(hours)
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes >= 60 {
		whole++
		minutes -= 60
	}
	return whole, minutes
}
