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

package analyzer

import (
	"fmt"
	"testing"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
	"github.com/stretchr/testify/assert"
)

func freeText(text string) common.DatasetExample {
	return common.DatasetExample{"text": text}
}

func conversation(roles ...string) common.DatasetExample {
	messages := make([]interface{}, 0, len(roles))
	for i, role := range roles {
		messages = append(messages, map[string]interface{}{
			"role":    role,
			"content": fmt.Sprintf("turn %d with some content", i),
		})
	}
	return common.DatasetExample{"messages": messages}
}

func TestAnalyzeCleanDataset(t *testing.T) {
	examples := []common.DatasetExample{
		freeText("The quick brown fox jumps over the lazy dog."),
		freeText("Training data comes in many different shapes and sizes."),
		conversation("user", "assistant"),
		{"instruction": "Summarize the text.", "input": "A long article.", "output": "A short summary."},
		{"prompt": "Which answer is better?", "chosen": "The detailed one.", "rejected": "The rude one."},
	}

	stats, err := Analyze(examples, 3, nil)
	assert.NoError(t, err)

	assert.Equal(t, 5, stats.ExampleCount)
	assert.Equal(t, TokenizerHeuristicV1, stats.TokenizerUsed)
	assert.Equal(t, 0, stats.Quality.EmptyExamples)
	assert.Equal(t, 0, stats.Quality.MalformedExamples)
	assert.Equal(t, 0, stats.Quality.AlternationErrors)
	assert.Equal(t, 0, stats.Quality.DuplicateCount)
	assert.Equal(t, 100.0, stats.Quality.QualityScore)

	assert.True(t, stats.TokenCountMin > 0)
	assert.True(t, float64(stats.TokenCountMin) <= stats.TokenCountAvg)
	assert.True(t, stats.TokenCountAvg <= float64(stats.TokenCountMax))
	assert.Nil(t, stats.Cost)
}

func TestAnalyzeEmptyAndDuplicateCounting(t *testing.T) {
	// 10 examples: 2 blank, 1 byte-identical duplicate of another, 7 unique.
	examples := []common.DatasetExample{
		freeText("alpha beta gamma delta"),
		freeText("alpha beta gamma delta"),
		freeText(""),
		freeText("   "),
		freeText("epsilon zeta eta theta"),
		freeText("iota kappa lambda mu"),
		freeText("nu xi omicron pi"),
		freeText("rho sigma tau upsilon"),
		freeText("phi chi psi omega"),
		freeText("one more unique example"),
	}

	stats, err := Analyze(examples, 1, nil)
	assert.NoError(t, err)

	assert.Equal(t, 2, stats.Quality.EmptyExamples)
	// Duplicate counting excludes the first occurrence.
	assert.Equal(t, 1, stats.Quality.DuplicateCount)
	assert.Equal(t, 0, stats.Quality.MalformedExamples)
	assert.True(t, stats.Quality.QualityScore < 100)
	// 100 - 25*(2/10) - 15*(1/10)
	assert.InDelta(t, 93.5, stats.Quality.QualityScore, 1e-9)
}

func TestAnalyzeMalformedExamplesDoNotAbort(t *testing.T) {
	examples := []common.DatasetExample{
		freeText("a perfectly fine example"),
		{"unknown_field": 42},
		nil,
		{"messages": "not a list"},
		freeText("another fine example"),
	}

	stats, err := Analyze(examples, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.Quality.MalformedExamples)
	assert.Equal(t, 5, stats.ExampleCount)
	assert.True(t, stats.TokenCountTotal > 0)
}

func TestAnalyzeAlternationErrors(t *testing.T) {
	examples := []common.DatasetExample{
		conversation("user", "assistant", "user", "assistant"),
		conversation("system", "user", "assistant"),
		conversation("user", "user", "assistant"),
		conversation("assistant", "user"),
	}

	stats, err := Analyze(examples, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Quality.AlternationErrors)
}

func TestAnalyzeQualityScoreMonotonic(t *testing.T) {
	base := []common.DatasetExample{
		freeText("alpha beta gamma"),
		freeText("delta epsilon zeta"),
		freeText("eta theta iota"),
		freeText("kappa lambda mu"),
	}
	clean, err := Analyze(base, 1, nil)
	assert.NoError(t, err)

	worse := append([]common.DatasetExample{}, base[:3]...)
	worse = append(worse, freeText("alpha beta gamma"))
	dirty, err := Analyze(worse, 1, nil)
	assert.NoError(t, err)

	assert.True(t, dirty.Quality.QualityScore < clean.Quality.QualityScore)
}

func TestAnalyzeIdempotent(t *testing.T) {
	examples := []common.DatasetExample{
		freeText("alpha beta gamma delta epsilon"),
		freeText("zeta eta theta"),
		conversation("user", "assistant"),
		freeText(""),
		freeText("alpha beta gamma delta epsilon"),
	}

	first, err := Analyze(examples, 2, nil)
	assert.NoError(t, err)
	second, err := Analyze(examples, 2, nil)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyzeEmptyDataset(t *testing.T) {
	_, err := Analyze(nil, 1, nil)
	dsErr := &common.InvalidDatasetError{}
	assert.ErrorAs(t, err, &dsErr)

	_, err = Analyze([]common.DatasetExample{}, 1, nil)
	assert.ErrorAs(t, err, &dsErr)
}

func TestAnalyzeUnknownTokenizer(t *testing.T) {
	_, err := Analyze([]common.DatasetExample{freeText("hello")}, 1, &Options{Tokenizer: "bpe-512k"})
	assert.Error(t, err)
}

func TestAnalyzeCostProjection(t *testing.T) {
	reg := benchmark.DefaultRegistry()
	tier, err := reg.GetTier("t4")
	assert.NoError(t, err)

	examples := []common.DatasetExample{
		freeText("a reasonably long example with enough words to produce tokens"),
		freeText("another example of training data for the projection"),
	}
	stats, err := Analyze(examples, 3, &Options{PricingTier: &tier})
	assert.NoError(t, err)

	assert.NotNil(t, stats.Cost)
	assert.Equal(t, "t4", stats.Cost.TierID)
	assert.Equal(t, 3, stats.Cost.Epochs)
	assert.Equal(t, "USD", stats.Cost.Currency)
	assert.True(t, stats.Cost.EstimatedHours > 0)
	assert.InDelta(t, stats.Cost.EstimatedHours*tier.TotalCostPerHour, stats.Cost.EstimatedCost, 1e-9)

	_, err = Analyze(examples, 0, &Options{PricingTier: &tier})
	confErr := &common.InvalidConfigurationError{}
	assert.ErrorAs(t, err, &confErr)
}

func TestTokenizersAreDeterministic(t *testing.T) {
	text := "Deterministic tokenization, the same input always yields the same count."
	for _, name := range []string{TokenizerHeuristicV1, TokenizerWhitespace} {
		first, err := CountTokens(name, text)
		assert.NoError(t, err)
		second, err := CountTokens(name, text)
		assert.NoError(t, err)
		assert.Equal(t, first, second, name)
		assert.True(t, first > 0, name)
	}

	n, err := CountTokens(TokenizerWhitespace, "three little words")
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}
