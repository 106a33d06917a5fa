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

// DatasetExample is one raw training sample. The analyzer recognizes several
// record shapes, so the example is kept as an arbitrary document.
type DatasetExample map[string]interface{}

// QualityReport counts the structural issues found in a dataset.
type QualityReport struct {
	// EmptyExamples is the number of examples with present but blank text
	EmptyExamples int `json:"empty_examples"`
	// MalformedExamples is the number of examples matching no known shape
	MalformedExamples int `json:"malformed_examples"`
	// AlternationErrors is the number of conversations with broken role order
	AlternationErrors int `json:"alternation_errors"`
	// DuplicateCount is the number of repeated payloads, first occurrence excluded
	DuplicateCount int `json:"duplicate_count"`
	// QualityScore is in [0, 100], 100 for an issue-free dataset
	QualityScore float64 `json:"quality_score"`
}

// OutlierReport records the examples whose token length is statistically
// atypical for the dataset.
type OutlierReport struct {
	// Count is the number of flagged examples
	Count int `json:"count"`
	// Method is the name of the detection method used
	Method string `json:"method"`
	// Indices are the positions of the flagged examples
	Indices []int `json:"indices,omitempty"`
}

// EnhancedDatasetStats is the analyzer's full report for one dataset. It is
// recreated on every dataset or epoch change, never partially updated.
type EnhancedDatasetStats struct {
	ExampleCount    int     `json:"example_count"`
	TokenCountTotal int64   `json:"token_count_total"`
	TokenCountAvg   float64 `json:"token_count_avg"`
	TokenCountMin   int     `json:"token_count_min"`
	TokenCountMax   int     `json:"token_count_max"`
	// TokenizerUsed is the name of the tokenization scheme
	TokenizerUsed string          `json:"tokenizer_used"`
	Quality       QualityReport   `json:"quality"`
	Outliers      OutlierReport   `json:"outliers"`
	// Cost is present only when a pricing tier was supplied
	Cost *CostProjection `json:"cost_projection,omitempty"`
}
