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

	"github.com/elliotchance/orderedmap"
	"github.com/launchtune/estimator/pkg/common"
)

var throughputClassByName = map[string]ThroughputClass{
	"low":       ThroughputLow,
	"medium":    ThroughputMedium,
	"high":      ThroughputHigh,
	"very-high": ThroughputVeryHigh,
}

// Registry is the fixed hardware tier catalog. It is built once, validated
// at construction and immutable afterwards, so it is safe for concurrent
// readers without coordination.
type Registry struct {
	version string
	tiers   *orderedmap.OrderedMap
}

// NewRegistry builds a registry from tier specs. Every entry is validated
// and its total hourly cost derived here; an invalid entry fails the whole
// catalog rather than being skipped.
func NewRegistry(version string, specs []TierSpec) (*Registry, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("catalog %q has no tiers", version)
	}
	tiers := orderedmap.NewOrderedMap()
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("catalog %q has a tier without an id", version)
		}
		if _, exists := tiers.Get(spec.ID); exists {
			return nil, fmt.Errorf("catalog %q declares tier %q twice", version, spec.ID)
		}
		if spec.MemoryGB <= 0 {
			return nil, fmt.Errorf("tier %q declares non-positive memory %v", spec.ID, spec.MemoryGB)
		}
		if spec.BaseCostPerHour < 0 || spec.PlatformFeePerHour < 0 {
			return nil, fmt.Errorf("tier %q declares a negative price", spec.ID)
		}
		class, ok := throughputClassByName[spec.Throughput]
		if !ok {
			return nil, fmt.Errorf("tier %q declares unknown throughput class %q", spec.ID, spec.Throughput)
		}
		tiers.Set(spec.ID, HardwareTier{
			ID:                 spec.ID,
			DisplayName:        spec.DisplayName,
			MemoryGB:           spec.MemoryGB,
			Throughput:         class,
			BaseCostPerHour:    spec.BaseCostPerHour,
			PlatformFeePerHour: spec.PlatformFeePerHour,
			TotalCostPerHour:   spec.BaseCostPerHour + spec.PlatformFeePerHour,
		})
	}
	return &Registry{version: version, tiers: tiers}, nil
}

// Version returns the catalog version string.
func (r *Registry) Version() string {
	return r.version
}

// ListTiers returns every tier in declaration order.
func (r *Registry) ListTiers() []HardwareTier {
	tiers := make([]HardwareTier, 0, r.tiers.Len())
	for el := r.tiers.Front(); el != nil; el = el.Next() {
		tiers = append(tiers, el.Value.(HardwareTier))
	}
	return tiers
}

// GetTier returns the tier registered under id.
func (r *Registry) GetTier(id string) (HardwareTier, error) {
	v, ok := r.tiers.Get(id)
	if !ok {
		return HardwareTier{}, &common.UnknownTierError{TierID: id}
	}
	return v.(HardwareTier), nil
}
