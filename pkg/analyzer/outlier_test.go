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
	"strings"
	"testing"

	"github.com/launchtune/estimator/pkg/common"
	"github.com/stretchr/testify/assert"
)

func TestDetectOutliersIQRFlagsExtremeValue(t *testing.T) {
	values := []float64{100, 102, 98, 101, 99, 103, 2000}
	positions, err := detectOutliers(OutlierMethodIQR, values)
	assert.NoError(t, err)
	assert.Equal(t, []int{6}, positions)
}

func TestDetectOutliersSkipsSmallSamples(t *testing.T) {
	values := []float64{1, 1000, 2}
	for _, method := range []string{OutlierMethodIQR, OutlierMethodZScore} {
		positions, err := detectOutliers(method, values)
		assert.NoError(t, err)
		assert.Empty(t, positions, method)
	}
}

func TestDetectOutliersZScoreUniformValues(t *testing.T) {
	values := []float64{50, 50, 50, 50, 50}
	positions, err := detectOutliers(OutlierMethodZScore, values)
	assert.NoError(t, err)
	assert.Empty(t, positions)
}

func TestDetectOutliersUnknownMethod(t *testing.T) {
	_, err := detectOutliers("dbscan", []float64{1, 2, 3, 4, 5})
	assert.Error(t, err)
}

func TestAnalyzeOutlierIndicesAreDatasetPositions(t *testing.T) {
	// A malformed record sits in front of the outlier, so the reported index
	// must account for it.
	long := freeText(strings.Repeat("very long example text ", 400))
	examples := []common.DatasetExample{
		{"bogus": true},
		freeText("short example one"),
		freeText("short example two"),
		freeText("short example three"),
		freeText("short example four"),
		long,
	}

	stats, err := Analyze(examples, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, OutlierMethodIQR, stats.Outliers.Method)
	assert.Equal(t, 1, stats.Outliers.Count)
	assert.Equal(t, []int{5}, stats.Outliers.Indices)
}

func TestAnalyzeOutlierSkippedBelowMinimum(t *testing.T) {
	examples := []common.DatasetExample{
		freeText("short"),
		freeText(strings.Repeat("long ", 500)),
	}
	stats, err := Analyze(examples, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.Outliers.Count)
	assert.Empty(t, stats.Outliers.Indices)
}
