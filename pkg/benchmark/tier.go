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

package benchmark

// ThroughputClass is the ordinal throughput bracket of a tier.
type ThroughputClass int

const (
	// ThroughputLow is the lowest bracket, e.g. inference-grade cards
	ThroughputLow ThroughputClass = iota
	// ThroughputMedium is the mid bracket
	ThroughputMedium
	// ThroughputHigh is the high bracket, e.g. previous-gen training cards
	ThroughputHigh
	// ThroughputVeryHigh is the top bracket
	ThroughputVeryHigh
)

var throughputClassNames = map[ThroughputClass]string{
	ThroughputLow:      "low",
	ThroughputMedium:   "medium",
	ThroughputHigh:     "high",
	ThroughputVeryHigh: "very-high",
}

func (c ThroughputClass) String() string {
	if name, ok := throughputClassNames[c]; ok {
		return name
	}
	return "unknown"
}

// HardwareTier is one priced compute tier of the catalog. TotalCostPerHour
// is always recomputed from its two components at construction, never stored
// independently.
type HardwareTier struct {
	// ID is the tier identifier
	ID string `json:"id"`
	// DisplayName is the human-readable name
	DisplayName string `json:"display_name"`
	// MemoryGB is the accelerator memory capacity
	MemoryGB float64 `json:"memory_gb"`
	// Throughput is the relative throughput class
	Throughput ThroughputClass `json:"throughput_class"`
	// BaseCostPerHour is the provider's hourly price
	BaseCostPerHour float64 `json:"base_cost_per_hour"`
	// PlatformFeePerHour is the platform's hourly fee
	PlatformFeePerHour float64 `json:"platform_fee_per_hour"`
	// TotalCostPerHour is base plus fee, derived at construction
	TotalCostPerHour float64 `json:"total_cost_per_hour"`
}

// TierSpec is the declaration a tier is constructed from. The total hourly
// cost is intentionally absent here.
type TierSpec struct {
	ID                 string  `json:"id" yaml:"id"`
	DisplayName        string  `json:"display_name" yaml:"display_name"`
	MemoryGB           float64 `json:"memory_gb" yaml:"memory_gb"`
	Throughput         string  `json:"throughput_class" yaml:"throughput_class"`
	BaseCostPerHour    float64 `json:"base_cost_per_hour" yaml:"base_cost_per_hour"`
	PlatformFeePerHour float64 `json:"platform_fee_per_hour" yaml:"platform_fee_per_hour"`
}
