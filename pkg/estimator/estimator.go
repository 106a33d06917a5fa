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
	"fmt"
	"math"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/utils"
)

const (
	// defaultSeqLen is assumed when the configuration does not set a
	// sequence length ceiling.
	defaultSeqLen = 2048
	// DefaultStepWarnCeiling is the total step count above which a run is
	// flagged as very long. The estimate itself is still produced.
	DefaultStepWarnCeiling = 500000
)

// saturationBatchSizes is the effective batch size at which a tier class is
// considered fully utilized.
var saturationBatchSizes = map[benchmark.ThroughputClass]int{
	benchmark.ThroughputLow:      8,
	benchmark.ThroughputMedium:   16,
	benchmark.ThroughputHigh:     32,
	benchmark.ThroughputVeryHigh: 64,
}

// Estimator computes training time, cost and memory-fit verdicts against a
// hardware tier registry.
type Estimator struct {
	registry *benchmark.Registry
	// stepWarnCeiling is the step count that triggers a very-long-run
	// warning.
	stepWarnCeiling int64
}

// NewEstimator creates an Estimator over the given registry.
func NewEstimator(registry *benchmark.Registry) *Estimator {
	return &Estimator{
		registry:        registry,
		stepWarnCeiling: DefaultStepWarnCeiling,
	}
}

// SetStepWarnCeiling overrides the very-long-run threshold. Non-positive
// values keep the default.
func (e *Estimator) SetStepWarnCeiling(ceiling int64) {
	if ceiling > 0 {
		e.stepWarnCeiling = ceiling
	}
}

// Estimate computes a TimeEstimation for the configuration on the tier.
// datasetSize overrides the configuration's dataset size hint when positive;
// when zero the hint is used, and a configuration with neither fails with
// InsufficientDataError.
func (e *Estimator) Estimate(conf *common.TrainingConfiguration, tierID string, datasetSize int) (*common.TimeEstimation, error) {
	return e.estimate(conf, tierID, datasetSize, nil)
}

// EstimateWithStats is Estimate refined by dataset statistics: the example
// count comes from the statistics and the processed-token total uses the
// measured token counts instead of the sequence length ceiling.
func (e *Estimator) EstimateWithStats(conf *common.TrainingConfiguration, tierID string, stats *common.EnhancedDatasetStats) (*common.TimeEstimation, error) {
	if stats == nil {
		return e.estimate(conf, tierID, 0, nil)
	}
	return e.estimate(conf, tierID, stats.ExampleCount, stats)
}

func (e *Estimator) estimate(conf *common.TrainingConfiguration, tierID string, datasetSize int, stats *common.EnhancedDatasetStats) (*common.TimeEstimation, error) {
	size := datasetSize
	if size <= 0 {
		size = conf.DatasetSizeHint
	}
	if size < 0 {
		return nil, &common.InvalidConfigurationError{Reason: "dataset size must not be negative"}
	}
	if size == 0 {
		if conf.DatasetSizeHint == 0 && datasetSize == 0 {
			return nil, &common.InsufficientDataError{
				Reason: "no dataset size supplied and the configuration carries no dataset size hint",
			}
		}
		return nil, &common.InvalidConfigurationError{Reason: "dataset size must be at least 1"}
	}
	if conf.Epochs < 1 {
		return nil, &common.InvalidConfigurationError{Reason: "epochs must be at least 1"}
	}
	if conf.BatchSize < 1 || conf.GradAccumSteps < 1 {
		return nil, &common.InvalidConfigurationError{
			Reason: "batch size and gradient accumulation steps must be at least 1",
		}
	}

	tier, err := e.registry.GetTier(tierID)
	if err != nil {
		return nil, err
	}

	effBatch := conf.BatchSize * conf.GradAccumSteps
	stepsPerEpoch := utils.CeilDiv(size, effBatch)
	totalSteps := stepsPerEpoch * conf.Epochs

	rate, usedFallback, err := ThroughputRate(tier.Throughput, conf.ModelSize, conf.Method)
	if err != nil {
		return nil, err
	}

	warnings := []string{}
	if usedFallback {
		warnings = append(warnings, fmt.Sprintf(
			"no measured throughput for model size %s, using the nearest known size bracket", conf.ModelSize))
	}

	durationHours := float64(totalSteps) * float64(effBatch) / rate / 3600.0
	hours, minutes := utils.SplitHours(durationHours)

	var cost *float64
	if tier.TotalCostPerHour > 0 {
		c := costForHours(durationHours, tier)
		cost = &c
	}

	seqLen := conf.MaxSeqLen
	if seqLen <= 0 {
		seqLen = defaultSeqLen
	}
	tokensProcessed := int64(totalSteps) * int64(effBatch) * int64(seqLen)
	if stats != nil && stats.TokenCountTotal > 0 {
		tokensProcessed = stats.TokenCountTotal * int64(conf.Epochs)
	}

	footprint, err := EstimateMemoryGB(conf.ModelSize, conf.Method, conf.BatchSize)
	if err != nil {
		return nil, err
	}
	fits := footprint <= tier.MemoryGB

	var recommended *common.RecommendedSettings
	if !fits {
		warnings = append(warnings, fmt.Sprintf(
			"estimated memory footprint %.1f GB exceeds the %.0f GB capacity of tier %s",
			footprint, tier.MemoryGB, tier.ID))
		recommended = &common.RecommendedSettings{
			UseLoRA:        conf.Method == common.TuningMethodFull,
			BatchSize:      maxInt(1, conf.BatchSize/2),
			GradAccumSteps: conf.GradAccumSteps * 2,
		}
	}

	if int64(totalSteps) > e.stepWarnCeiling {
		warnings = append(warnings, fmt.Sprintf(
			"very long run: %d total steps exceeds %d", totalSteps, e.stepWarnCeiling))
	}

	return &common.TimeEstimation{
		TotalSteps:            totalSteps,
		EffectiveBatchSize:    effBatch,
		TokensProcessed:       tokensProcessed,
		DurationHours:         hours,
		DurationMinutes:       minutes,
		EstimatedCost:         cost,
		GPUUtilizationPercent: utilizationPercent(tier.Throughput, effBatch),
		MemoryFits:            fits,
		Warnings:              warnings,
		Recommended:           recommended,
	}, nil
}

func costForHours(durationHours float64, tier benchmark.HardwareTier) float64 {
	return durationHours * tier.TotalCostPerHour
}

func utilizationPercent(class benchmark.ThroughputClass, effBatch int) int {
	saturation, ok := saturationBatchSizes[class]
	if !ok || saturation < 1 {
		saturation = saturationBatchSizes[benchmark.ThroughputMedium]
	}
	percent := int(math.Round(100.0 * float64(effBatch) / float64(saturation)))
	if percent > 100 {
		return 100
	}
	if percent < 5 {
		return 5
	}
	return percent
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
