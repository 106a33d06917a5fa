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

// DefaultWarnAtPercent is the warning threshold applied when a policy does
// not set one.
const DefaultWarnAtPercent = 80.0

// BudgetPolicy is a caller-supplied ceiling on a projected run. Both limits
// are opt-in; a policy with neither set never flags anything.
type BudgetPolicy struct {
	// MaxHours is the duration ceiling, nil when unset
	MaxHours *float64 `json:"max_hours,omitempty"`
	// MaxCost is the monetary ceiling, nil when unset
	MaxCost *float64 `json:"max_cost,omitempty"`
	// WarnAtPercent is the near-threshold warning level, default 80
	WarnAtPercent float64 `json:"warn_at_percent,omitempty"`
	// AutoStop is consumed by the deployment runtime, not by the evaluator
	AutoStop bool `json:"auto_stop,omitempty"`
}

// BudgetVerdict is the evaluator's judgement of a projection against a
// policy. Derived, never stored.
type BudgetVerdict struct {
	// Exceeded is true when a hard limit is crossed
	Exceeded bool `json:"exceeded"`
	// Warnings are near-threshold and over-threshold sentences, in order
	Warnings []string `json:"warnings,omitempty"`
}
