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

// Package analyzer turns a raw collection of training examples into
// actionable statistics before a run is submitted, so cost and quality
// problems surface pre-flight.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/utils"
)

// Quality-score penalties per issue category. Each penalty is scaled by the
// issue's share of the dataset, so more issues of any category never raise
// the score.
const (
	penaltyEmpty       = 25.0
	penaltyMalformed   = 30.0
	penaltyAlternation = 20.0
	penaltyDuplicate   = 15.0
)

// classTokenRates is a coarse tokens/second training rate per throughput
// class, used only for the analyzer's optional cost projection. The
// estimator holds the finer model-aware table.
var classTokenRates = map[benchmark.ThroughputClass]float64{
	benchmark.ThroughputLow:      2200,
	benchmark.ThroughputMedium:   5200,
	benchmark.ThroughputHigh:     12500,
	benchmark.ThroughputVeryHigh: 24000,
}

// Options selects the analysis schemes and the optional pricing context.
type Options struct {
	// Tokenizer is the tokenization scheme name, DefaultTokenizer when empty
	Tokenizer string
	// OutlierMethod is the detection method name, DefaultOutlierMethod when
	// empty
	OutlierMethod string
	// PricingTier enables the cost projection when set
	PricingTier *benchmark.HardwareTier
}

// Analyze computes token statistics, structural quality issues and outliers
// for a dataset. The call is pure: same examples and epochs always produce
// an identical report.
//
// A per-example problem (unrecognized shape, failed tokenization) is folded
// into the issue counters instead of aborting the batch; one bad record
// never blocks statistics for the rest.
func Analyze(examples []common.DatasetExample, epochs int, opts *Options) (*common.EnhancedDatasetStats, error) {
	if len(examples) == 0 {
		return nil, &common.InvalidDatasetError{Reason: "dataset has no examples"}
	}
	if opts == nil {
		opts = &Options{}
	}
	tokenizer := opts.Tokenizer
	if tokenizer == "" {
		tokenizer = DefaultTokenizer
	}
	outlierMethod := opts.OutlierMethod
	if outlierMethod == "" {
		outlierMethod = DefaultOutlierMethod
	}
	if opts.PricingTier != nil && epochs < 1 {
		return nil, &common.InvalidConfigurationError{Reason: "cost projection needs at least one epoch"}
	}
	if !hasTokenizer(tokenizer) {
		return nil, fmt.Errorf("%s tokenizer does not register", tokenizer)
	}

	quality := common.QualityReport{}
	// counts and countIndices hold the token counts of analyzable examples
	// and their original dataset positions.
	counts := make([]float64, 0, len(examples))
	countIndices := make([]int, 0, len(examples))
	seen := make(map[string]bool, len(examples))

	var total int64
	minCount, maxCount := -1, 0

	for i, example := range examples {
		cls := classify(example)
		if cls.shape == ShapeUnrecognized {
			quality.MalformedExamples++
			continue
		}

		tokenCount, err := CountTokens(tokenizer, cls.text)
		if err != nil {
			// A scheme that cannot tokenize one record degrades that record
			// to malformed instead of aborting the batch.
			quality.MalformedExamples++
			continue
		}

		if strings.TrimSpace(cls.text) == "" {
			quality.EmptyExamples++
		} else {
			// Blank payloads are all byte-identical, so they stay out of
			// duplicate detection; they are already counted as empty.
			normalized := strings.TrimSpace(cls.text)
			if seen[normalized] {
				quality.DuplicateCount++
			} else {
				seen[normalized] = true
			}
		}

		if cls.shape == ShapeConversation && brokenAlternation(cls.turns) {
			quality.AlternationErrors++
		}

		counts = append(counts, float64(tokenCount))
		countIndices = append(countIndices, i)
		total += int64(tokenCount)
		if minCount < 0 || tokenCount < minCount {
			minCount = tokenCount
		}
		if tokenCount > maxCount {
			maxCount = tokenCount
		}
	}
	if minCount < 0 {
		minCount = 0
	}

	quality.QualityScore = qualityScore(len(examples), &quality)

	positions, err := detectOutliers(outlierMethod, counts)
	if err != nil {
		return nil, err
	}
	outliers := common.OutlierReport{Method: outlierMethod, Count: len(positions)}
	for _, pos := range positions {
		outliers.Indices = append(outliers.Indices, countIndices[pos])
	}

	stats := &common.EnhancedDatasetStats{
		ExampleCount:    len(examples),
		TokenCountTotal: total,
		TokenCountAvg:   utils.ComputeAverage(counts),
		TokenCountMin:   minCount,
		TokenCountMax:   maxCount,
		TokenizerUsed:   tokenizer,
		Quality:         quality,
		Outliers:        outliers,
	}
	if opts.PricingTier != nil {
		stats.Cost = projectCost(total, epochs, opts.PricingTier)
	}
	return stats, nil
}

// qualityScore starts at 100 and subtracts a fixed penalty per issue
// category, each proportional to the issue's share of the dataset, floored
// at 0.
func qualityScore(exampleCount int, quality *common.QualityReport) float64 {
	n := float64(exampleCount)
	score := 100.0
	score -= penaltyEmpty * float64(quality.EmptyExamples) / n
	score -= penaltyMalformed * float64(quality.MalformedExamples) / n
	score -= penaltyAlternation * float64(quality.AlternationErrors) / n
	score -= penaltyDuplicate * float64(quality.DuplicateCount) / n
	if score < 0 {
		return 0
	}
	return score
}

// projectCost projects the monetary cost of training over the dataset for
// the given epoch count on the tier, using the coarse class rate.
func projectCost(totalTokens int64, epochs int, tier *benchmark.HardwareTier) *common.CostProjection {
	rate := classTokenRates[tier.Throughput]
	if rate <= 0 || totalTokens <= 0 {
		return nil
	}
	hours := float64(totalTokens) * float64(epochs) / rate / 3600.0
	return &common.CostProjection{
		TierID:         tier.ID,
		Epochs:         epochs,
		Currency:       "USD",
		EstimatedCost:  hours * tier.TotalCostPerHour,
		EstimatedHours: hours,
	}
}
