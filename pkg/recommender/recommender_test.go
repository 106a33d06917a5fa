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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestRecommendCheapestFittingTier(t *testing.T) {
	registry := benchmark.DefaultRegistry()

	rec, err := Recommend(registry, common.ModelSize1B, nil)
	assert.NoError(t, err)
	assert.Equal(t, "t4", rec.TierID)
	assert.NotEmpty(t, rec.Reason)

	rec, err = Recommend(registry, common.ModelSize7B, nil)
	assert.NoError(t, err)
	assert.Equal(t, "l4", rec.TierID)

	rec, err = Recommend(registry, common.ModelSize70B, nil)
	assert.NoError(t, err)
	assert.Equal(t, "8xh100-80", rec.TierID)
}

func TestRecommendSafetyMargin(t *testing.T) {
	// A 13b model fits 40 GB on paper but not with headroom, so the
	// recommendation moves up to the 80 GB tier.
	rec, err := Recommend(benchmark.DefaultRegistry(), common.ModelSize13B, nil)
	assert.NoError(t, err)
	assert.Equal(t, "a100-80", rec.TierID)
}

func TestRecommendWithinBudget(t *testing.T) {
	registry := benchmark.DefaultRegistry()

	rec, err := Recommend(registry, common.ModelSize7B, floatPtr(2.0))
	assert.NoError(t, err)
	assert.Equal(t, "l4", rec.TierID)
}

func TestRecommendOverBudgetStillAnswers(t *testing.T) {
	registry := benchmark.DefaultRegistry()

	rec, err := Recommend(registry, common.ModelSize70B, floatPtr(5.0))
	assert.NoError(t, err)
	assert.Equal(t, "8xh100-80", rec.TierID)
	assert.Contains(t, rec.Reason, "exceeds the requested")
}

func TestRecommendNoTierFitsStillAnswers(t *testing.T) {
	registry, err := benchmark.NewRegistry("test", []benchmark.TierSpec{
		{ID: "tiny", DisplayName: "Tiny", MemoryGB: 8, Throughput: "low", BaseCostPerHour: 0.2},
		{ID: "small", DisplayName: "Small", MemoryGB: 16, Throughput: "low", BaseCostPerHour: 0.4},
	})
	assert.NoError(t, err)

	rec, err := Recommend(registry, common.ModelSize70B, nil)
	assert.NoError(t, err)
	assert.Equal(t, "small", rec.TierID)
	assert.Contains(t, rec.Reason, "no tier safely fits")
}

func TestRecommendUnknownSizeClass(t *testing.T) {
	_, err := Recommend(benchmark.DefaultRegistry(), "900b", nil)
	invalidErr := &common.InvalidConfigurationError{}
	assert.ErrorAs(t, err, &invalidErr)
}
