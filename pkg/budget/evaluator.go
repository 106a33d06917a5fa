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
	"fmt"

	"github.com/launchtune/estimator/pkg/common"
)

// Evaluate compares a time estimation against a budget policy. Both limits
// in the policy are opt-in: with neither set the verdict is never exceeded
// and carries no warnings. The policy's auto-stop flag is not read here, it
// is consumed by the deployment runtime.
func Evaluate(estimation *common.TimeEstimation, policy *common.BudgetPolicy) *common.BudgetVerdict {
	verdict := &common.BudgetVerdict{}
	if estimation == nil || policy == nil {
		return verdict
	}

	warnAt := policy.WarnAtPercent
	if warnAt <= 0 {
		warnAt = common.DefaultWarnAtPercent
	}

	hours := estimation.DurationFloatHours()
	if policy.MaxHours != nil {
		checkLimit(verdict, hours, *policy.MaxHours, warnAt, "duration", "hours")
	}
	if policy.MaxCost != nil && estimation.EstimatedCost != nil {
		checkLimit(verdict, *estimation.EstimatedCost, *policy.MaxCost, warnAt, "cost", "USD")
	}
	return verdict
}

func checkLimit(verdict *common.BudgetVerdict, value float64, limit float64, warnAt float64, kind string, unit string) {
	if value > limit {
		verdict.Exceeded = true
		verdict.Warnings = append(verdict.Warnings, fmt.Sprintf(
			"projected %s %.2f %s exceeds the limit of %.2f %s", kind, value, unit, limit, unit))
		return
	}
	if limit > 0 && value/limit*100.0 >= warnAt {
		verdict.Warnings = append(verdict.Warnings, fmt.Sprintf(
			"projected %s %.2f %s is above %.0f%% of the limit of %.2f %s", kind, value, unit, warnAt, limit, unit))
	}
}
