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

package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/launchtune/estimator/pkg/common"
)

func floatPtr(v float64) *float64 {
	return &v
}

func estimationOf(hours int, minutes int, cost float64) *common.TimeEstimation {
	return &common.TimeEstimation{
		DurationHours:   hours,
		DurationMinutes: minutes,
		EstimatedCost:   floatPtr(cost),
	}
}

func TestEvaluateNearThresholdWarning(t *testing.T) {
	policy := &common.BudgetPolicy{
		MaxHours:      floatPtr(1.0),
		WarnAtPercent: 80,
	}

	verdict := Evaluate(estimationOf(0, 51, 0.5), policy)
	assert.False(t, verdict.Exceeded)
	if assert.Len(t, verdict.Warnings, 1) {
		assert.Contains(t, verdict.Warnings[0], "80%")
	}
}

func TestEvaluateHoursExceeded(t *testing.T) {
	policy := &common.BudgetPolicy{
		MaxHours:      floatPtr(1.0),
		WarnAtPercent: 80,
	}

	verdict := Evaluate(estimationOf(1, 12, 0.5), policy)
	assert.True(t, verdict.Exceeded)
	if assert.Len(t, verdict.Warnings, 1) {
		assert.Contains(t, verdict.Warnings[0], "exceeds the limit")
	}
}

func TestEvaluateCostExceeded(t *testing.T) {
	policy := &common.BudgetPolicy{
		MaxCost: floatPtr(10.0),
	}

	verdict := Evaluate(estimationOf(2, 0, 12.5), policy)
	assert.True(t, verdict.Exceeded)

	verdict = Evaluate(estimationOf(2, 0, 5.0), policy)
	assert.False(t, verdict.Exceeded)
	assert.Empty(t, verdict.Warnings)
}

func TestEvaluateBothLimits(t *testing.T) {
	policy := &common.BudgetPolicy{
		MaxHours: floatPtr(1.0),
		MaxCost:  floatPtr(1.0),
	}

	verdict := Evaluate(estimationOf(2, 0, 2.0), policy)
	assert.True(t, verdict.Exceeded)
	assert.Len(t, verdict.Warnings, 2)
}

func TestEvaluateNoLimitsNeverExceeded(t *testing.T) {
	policy := &common.BudgetPolicy{WarnAtPercent: 80, AutoStop: true}

	for _, estimation := range []*common.TimeEstimation{
		estimationOf(0, 1, 0.01),
		estimationOf(10000, 59, 1e9),
		{DurationHours: 3},
	} {
		verdict := Evaluate(estimation, policy)
		assert.False(t, verdict.Exceeded)
		assert.Empty(t, verdict.Warnings)
	}
}

func TestEvaluateDefaultWarnThreshold(t *testing.T) {
	policy := &common.BudgetPolicy{MaxHours: floatPtr(10.0)}

	verdict := Evaluate(estimationOf(8, 30, 0), policy)
	assert.False(t, verdict.Exceeded)
	assert.Len(t, verdict.Warnings, 1)

	verdict = Evaluate(estimationOf(7, 30, 0), policy)
	assert.False(t, verdict.Exceeded)
	assert.Empty(t, verdict.Warnings)
}

func TestEvaluateUnpricedEstimation(t *testing.T) {
	policy := &common.BudgetPolicy{MaxCost: floatPtr(1.0)}

	verdict := Evaluate(&common.TimeEstimation{DurationHours: 100}, policy)
	assert.False(t, verdict.Exceeded)
	assert.Empty(t, verdict.Warnings)
}

func TestEvaluateNilInputs(t *testing.T) {
	verdict := Evaluate(nil, &common.BudgetPolicy{MaxHours: floatPtr(1.0)})
	assert.False(t, verdict.Exceeded)

	verdict = Evaluate(estimationOf(5, 0, 5), nil)
	assert.False(t, verdict.Exceeded)
}
