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

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultCatalogVersion identifies the catalog shipped with this build.
// Updating prices means shipping a new version, not editing tables in place.
const DefaultCatalogVersion = "2025-08"

var defaultTierSpecs = []TierSpec{
	{
		ID:                 "t4",
		DisplayName:        "NVIDIA T4 16GB",
		MemoryGB:           16,
		Throughput:         "low",
		BaseCostPerHour:    0.39,
		PlatformFeePerHour: 0.10,
	},
	{
		ID:                 "l4",
		DisplayName:        "NVIDIA L4 24GB",
		MemoryGB:           24,
		Throughput:         "medium",
		BaseCostPerHour:    0.81,
		PlatformFeePerHour: 0.12,
	},
	{
		ID:                 "a10g",
		DisplayName:        "NVIDIA A10G 24GB",
		MemoryGB:           24,
		Throughput:         "medium",
		BaseCostPerHour:    1.06,
		PlatformFeePerHour: 0.15,
	},
	{
		ID:                 "a100-40",
		DisplayName:        "NVIDIA A100 40GB",
		MemoryGB:           40,
		Throughput:         "high",
		BaseCostPerHour:    2.74,
		PlatformFeePerHour: 0.30,
	},
	{
		ID:                 "a100-80",
		DisplayName:        "NVIDIA A100 80GB",
		MemoryGB:           80,
		Throughput:         "high",
		BaseCostPerHour:    3.67,
		PlatformFeePerHour: 0.35,
	},
	{
		ID:                 "h100-80",
		DisplayName:        "NVIDIA H100 80GB",
		MemoryGB:           80,
		Throughput:         "very-high",
		BaseCostPerHour:    5.89,
		PlatformFeePerHour: 0.45,
	},
	{
		ID:                 "8xh100-80",
		DisplayName:        "8x NVIDIA H100 80GB",
		MemoryGB:           640,
		Throughput:         "very-high",
		BaseCostPerHour:    47.12,
		PlatformFeePerHour: 2.88,
	},
}

// DefaultRegistry returns the built-in catalog. The default specs are fixed
// at compile time, so a construction failure here is a programming error.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultCatalogVersion, defaultTierSpecs)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return reg
}

// catalogDocument is the YAML layout of a catalog override file.
type catalogDocument struct {
	Version string     `yaml:"version"`
	Tiers   []TierSpec `yaml:"tiers"`
}

// LoadCatalog builds a registry from a YAML catalog document. The override
// passes through the same construction validation as the built-in catalog.
func LoadCatalog(raw []byte) (*Registry, error) {
	doc := &catalogDocument{}
	if err := yaml.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("malformed catalog document: %v", err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("catalog document has no version")
	}
	return NewRegistry(doc.Version, doc.Tiers)
}
