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

package estimator

import (
	"math"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
)

// classRateMultipliers scales the low-class base rates up for faster tiers.
var classRateMultipliers = map[benchmark.ThroughputClass]float64{
	benchmark.ThroughputLow:      1.0,
	benchmark.ThroughputMedium:   2.2,
	benchmark.ThroughputHigh:     5.5,
	benchmark.ThroughputVeryHigh: 11.0,
}

// rateBrackets are the model-size brackets with measured base rates. A size
// class outside this set falls back to the nearest bracket by parameter
// count.
var rateBrackets = []common.ModelSizeClass{
	common.ModelSize1B,
	common.ModelSize7B,
	common.ModelSize13B,
	common.ModelSize70B,
}

// baseSampleRates is samples/second on a low-class tier.
var baseSampleRates = map[common.ModelSizeClass]map[common.TuningMethod]float64{
	common.ModelSize1B:  {common.TuningMethodPEFT: 2.0, common.TuningMethodFull: 0.7},
	common.ModelSize7B:  {common.TuningMethodPEFT: 0.45, common.TuningMethodFull: 0.15},
	common.ModelSize13B: {common.TuningMethodPEFT: 0.22, common.TuningMethodFull: 0.08},
	common.ModelSize70B: {common.TuningMethodPEFT: 0.04, common.TuningMethodFull: 0.012},
}

// ThroughputRate derives the expected samples/second for a tier class, model
// size class and tuning method. When the size class has no measured bracket,
// the nearest bracket by parameter count is used instead and usedFallback is
// true.
func ThroughputRate(class benchmark.ThroughputClass, size common.ModelSizeClass, method common.TuningMethod) (rate float64, usedFallback bool, err error) {
	params, ok := size.ParamBillions()
	if !ok {
		return 0, false, &common.InvalidConfigurationError{Reason: "unknown model size class " + string(size)}
	}
	mult, ok := classRateMultipliers[class]
	if !ok {
		return 0, false, &common.InvalidConfigurationError{Reason: "unknown throughput class"}
	}
	if method != common.TuningMethodFull && method != common.TuningMethodPEFT {
		return 0, false, &common.InvalidConfigurationError{Reason: "unknown tuning method " + string(method)}
	}

	bracket := size
	if _, measured := baseSampleRates[size]; !measured {
		bracket = nearestBracket(params)
		usedFallback = true
	}
	return baseSampleRates[bracket][method] * mult, usedFallback, nil
}

func nearestBracket(params float64) common.ModelSizeClass {
	best := rateBrackets[0]
	bestDist := math.MaxFloat64
	for _, bracket := range rateBrackets {
		bracketParams, _ := bracket.ParamBillions()
		dist := math.Abs(bracketParams - params)
		if dist < bestDist {
			bestDist = dist
			best = bracket
		}
	}
	return best
}
