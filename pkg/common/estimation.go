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

package common

// RecommendedSettings is an additive suggestion attached to an estimation
// whose run does not fit the selected tier.
type RecommendedSettings struct {
	// UseLoRA suggests switching to parameter-efficient tuning
	UseLoRA bool `json:"use_lora"`
	// BatchSize is the suggested batch size
	BatchSize int `json:"batch_size"`
	// GradAccumSteps is the suggested gradient accumulation step count
	GradAccumSteps int `json:"grad_accum_steps"`
}

// TimeEstimation is the projection of a run on a hardware tier. It is
// produced fresh on every call and never mutated in place.
type TimeEstimation struct {
	// TotalSteps is steps per epoch times epochs
	TotalSteps int `json:"total_steps"`
	// EffectiveBatchSize is batch size times gradient accumulation steps
	EffectiveBatchSize int `json:"effective_batch_size"`
	// TokensProcessed is the projected number of tokens consumed by the run
	TokensProcessed int64 `json:"tokens_processed"`
	// DurationHours is the whole-hour part of the projected duration
	DurationHours int `json:"duration_hours"`
	// DurationMinutes is the remainder minutes, always in [0, 59]
	DurationMinutes int `json:"duration_minutes"`
	// EstimatedCost is set only when the tier's pricing is known
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	// GPUUtilizationPercent is a display-only saturation heuristic
	GPUUtilizationPercent int `json:"gpu_utilization_percent"`
	// MemoryFits reports whether the run fits the tier's memory
	MemoryFits bool `json:"memory_fits"`
	// Warnings are plain sentences intended for direct display
	Warnings []string `json:"warnings,omitempty"`
	// Recommended is populated when the run does not fit
	Recommended *RecommendedSettings `json:"recommended_settings,omitempty"`
}

// DurationFloatHours returns the projected duration as fractional hours.
func (e *TimeEstimation) DurationFloatHours() float64 {
	return float64(e.DurationHours) + float64(e.DurationMinutes)/60.0
}

// CostProjection is a monetary projection derived from a dataset's aggregate
// token total and a pricing tier.
type CostProjection struct {
	// TierID is the hardware tier the projection was priced against
	TierID string `json:"tier_id"`
	// Epochs is the epoch count the projection assumed
	Epochs int `json:"epochs"`
	// Currency is the pricing currency
	Currency string `json:"currency"`
	// EstimatedCost is the projected monetary cost
	EstimatedCost float64 `json:"estimated_cost"`
	// EstimatedHours is the projected wall-clock hours
	EstimatedHours float64 `json:"estimated_hours"`
}
