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

package recommender

import (
	"fmt"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/estimator"
)

const (
	// memorySafetyFactor is the headroom required over the estimated
	// footprint. An exact-fit tier is not a safe recommendation.
	memorySafetyFactor = 1.2
	// referenceBatchSize is the batch size assumed when sizing memory.
	referenceBatchSize = 4
)

// Recommendation is the recommender's answer. It always names a tier; when
// no tier satisfies every constraint the reason says which constraint had to
// give.
type Recommendation struct {
	// TierID is the recommended hardware tier
	TierID string `json:"tier_id"`
	// Reason is a plain sentence for direct display
	Reason string `json:"reason"`
}

// Recommend selects the cheapest tier whose memory safely accommodates
// parameter-efficient tuning of the given model size class. maxCost, when
// not nil, bounds the tier's total hourly cost; if no fitting tier is cheap
// enough the best fitting tier is still returned with a reason explaining
// that it exceeds the budget.
func Recommend(registry *benchmark.Registry, size common.ModelSizeClass, maxCost *float64) (*Recommendation, error) {
	footprint, err := estimator.EstimateMemoryGB(size, common.TuningMethodPEFT, referenceBatchSize)
	if err != nil {
		return nil, err
	}
	required := footprint * memorySafetyFactor

	var cheapestFit, cheapestInBudget benchmark.HardwareTier
	var haveFit, haveInBudget bool
	for _, tier := range registry.ListTiers() {
		if tier.MemoryGB < required {
			continue
		}
		if !haveFit || tier.TotalCostPerHour < cheapestFit.TotalCostPerHour {
			cheapestFit = tier
			haveFit = true
		}
		if maxCost != nil && tier.TotalCostPerHour > *maxCost {
			continue
		}
		if !haveInBudget || tier.TotalCostPerHour < cheapestInBudget.TotalCostPerHour {
			cheapestInBudget = tier
			haveInBudget = true
		}
	}

	if !haveFit {
		// Nothing fits even parameter-efficient tuning. Still answer
		// with the largest tier so the caller has a starting point.
		largest, ok := largestTier(registry)
		if !ok {
			return nil, &common.InvalidConfigurationError{Reason: "hardware tier registry is empty"}
		}
		return &Recommendation{
			TierID: largest.ID,
			Reason: fmt.Sprintf(
				"no tier safely fits a %s model even with parameter-efficient tuning; %s has the most memory (%.0f GB) and is the closest option",
				size, largest.DisplayName, largest.MemoryGB),
		}, nil
	}

	if maxCost != nil && !haveInBudget {
		return &Recommendation{
			TierID: cheapestFit.ID,
			Reason: fmt.Sprintf(
				"%s is the cheapest tier that safely fits a %s model, but its $%.2f/hr exceeds the requested $%.2f/hr budget",
				cheapestFit.DisplayName, size, cheapestFit.TotalCostPerHour, *maxCost),
		}, nil
	}

	chosen := cheapestFit
	if haveInBudget {
		chosen = cheapestInBudget
	}
	return &Recommendation{
		TierID: chosen.ID,
		Reason: fmt.Sprintf(
			"%s is the cheapest tier ($%.2f/hr) with enough memory (%.0f GB) to safely fit a %s model with parameter-efficient tuning",
			chosen.DisplayName, chosen.TotalCostPerHour, chosen.MemoryGB, size),
	}, nil
}

func largestTier(registry *benchmark.Registry) (benchmark.HardwareTier, bool) {
	var largest benchmark.HardwareTier
	var found bool
	for _, tier := range registry.ListTiers() {
		if !found || tier.MemoryGB > largest.MemoryGB {
			largest = tier
			found = true
		}
	}
	return largest, found
}
