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

// ModelSizeClass is the parameter-count class of a base model.
type ModelSizeClass string

const (
	// ModelSize1B is the ~1 billion parameter class
	ModelSize1B ModelSizeClass = "1b"
	// ModelSize3B is the ~3 billion parameter class
	ModelSize3B ModelSizeClass = "3b"
	// ModelSize7B is the ~7 billion parameter class
	ModelSize7B ModelSizeClass = "7b"
	// ModelSize13B is the ~13 billion parameter class
	ModelSize13B ModelSizeClass = "13b"
	// ModelSize34B is the ~34 billion parameter class
	ModelSize34B ModelSizeClass = "34b"
	// ModelSize70B is the ~70 billion parameter class
	ModelSize70B ModelSizeClass = "70b"
)

// modelSizeParams maps every recognized size class to its parameter count in
// billions. A class absent from this map is unknown.
var modelSizeParams = map[ModelSizeClass]float64{
	ModelSize1B:  1,
	ModelSize3B:  3,
	ModelSize7B:  7,
	ModelSize13B: 13,
	ModelSize34B: 34,
	ModelSize70B: 70,
}

// ParamBillions returns the parameter count of the size class in billions.
// ok is false for an unrecognized class.
func (c ModelSizeClass) ParamBillions() (float64, bool) {
	params, ok := modelSizeParams[c]
	return params, ok
}

// ModelSizeClasses returns all recognized size classes ordered from the
// smallest to the largest.
func ModelSizeClasses() []ModelSizeClass {
	return []ModelSizeClass{ModelSize1B, ModelSize3B, ModelSize7B, ModelSize13B, ModelSize34B, ModelSize70B}
}

// TuningMethod is the fine-tuning method of a run.
type TuningMethod string

const (
	// TuningMethodFull updates every model parameter
	TuningMethodFull TuningMethod = "full"
	// TuningMethodPEFT updates a small added set of parameters, e.g. LoRA
	TuningMethodPEFT TuningMethod = "peft"
)

// TrainingConfiguration is the caller-assembled description of a fine-tuning
// run. The core never mutates it.
type TrainingConfiguration struct {
	// ModelID is the base model identifier
	ModelID string `json:"model_id"`
	// ModelSize is the parameter-count class of the base model
	ModelSize ModelSizeClass `json:"model_size"`
	// Method is the fine-tuning method
	Method TuningMethod `json:"method"`
	// Epochs is the number of passes over the dataset
	Epochs int `json:"epochs"`
	// BatchSize is the per-step batch size
	BatchSize int `json:"batch_size"`
	// GradAccumSteps is the number of gradient accumulation steps
	GradAccumSteps int `json:"grad_accum_steps"`
	// MaxSeqLen is the sequence length ceiling in tokens
	MaxSeqLen int `json:"max_seq_len"`
	// DatasetSizeHint is the example count when known, 0 otherwise
	DatasetSizeHint int `json:"dataset_size_hint,omitempty"`
}
