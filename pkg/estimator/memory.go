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
	"github.com/launchtune/estimator/pkg/common"
)

const (
	// fullTuningGBPerBillion covers fp16 weights, gradients and Adam
	// optimizer states.
	fullTuningGBPerBillion = 16.0
	// peftGBPerBillion covers fp16 base weights plus adapter weights and
	// their optimizer states.
	peftGBPerBillion = 2.4
	// activationGBPerBillionPerSample approximates activation memory per
	// sample in the device batch.
	activationGBPerBillionPerSample = 0.1
)

// EstimateMemoryGB approximates the accelerator memory footprint in GB for
// training a model of the given size class. Gradient accumulation does not
// enter the footprint, only the per-device batch size does.
func EstimateMemoryGB(size common.ModelSizeClass, method common.TuningMethod, batchSize int) (float64, error) {
	params, ok := size.ParamBillions()
	if !ok {
		return 0, &common.InvalidConfigurationError{Reason: "unknown model size class " + string(size)}
	}
	if batchSize < 1 {
		batchSize = 1
	}

	var base float64
	switch method {
	case common.TuningMethodFull:
		base = params * fullTuningGBPerBillion
	case common.TuningMethodPEFT:
		base = params * peftGBPerBillion
	default:
		return 0, &common.InvalidConfigurationError{Reason: "unknown tuning method " + string(method)}
	}
	activations := params * activationGBPerBillionPerSample * float64(batchSize)
	return base + activations, nil
}
