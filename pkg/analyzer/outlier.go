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
	"sync"

	"github.com/launchtune/estimator/pkg/utils"
)

const (
	// OutlierMethodIQR flags counts outside a 1.5x interquartile-range fence
	OutlierMethodIQR = "iqr"
	// OutlierMethodZScore flags counts more than three standard deviations
	// from the mean
	OutlierMethodZScore = "zscore"

	// DefaultOutlierMethod is used when the caller names no method
	DefaultOutlierMethod = OutlierMethodIQR

	// minOutlierSamples is the sample count below which detection is skipped
	// rather than producing spurious singletons
	minOutlierSamples = 4

	iqrFenceFactor  = 1.5
	zScoreThreshold = 3.0
)

// An outlierFunc returns the positions of the values whose length deviates
// unusually from the distribution. The input slice is never mutated.
type outlierFunc func(values []float64) []int

var (
	outlierLocker  = &sync.RWMutex{}
	outlierMethods = make(map[string]outlierFunc)
)

func init() {
	registerOutlierMethod(OutlierMethodIQR, detectOutliersIQR)
	registerOutlierMethod(OutlierMethodZScore, detectOutliersZScore)
}

func registerOutlierMethod(name string, fn outlierFunc) error {
	outlierLocker.Lock()
	defer outlierLocker.Unlock()

	if _, found := outlierMethods[name]; found {
		err := fmt.Errorf("%s outlier method has already registered", name)
		return err
	}
	outlierMethods[name] = fn
	return nil
}

// detectOutliers runs the named method over the values. With fewer than
// minOutlierSamples values, detection is skipped and no position is flagged.
func detectOutliers(name string, values []float64) ([]int, error) {
	outlierLocker.RLock()
	fn := outlierMethods[name]
	outlierLocker.RUnlock()

	if fn == nil {
		return nil, fmt.Errorf("%s outlier method does not register", name)
	}
	if len(values) < minOutlierSamples {
		return nil, nil
	}
	return fn(values), nil
}

func detectOutliersIQR(values []float64) []int {
	q1 := utils.ComputeQuantile(values, 0.25)
	q3 := utils.ComputeQuantile(values, 0.75)
	iqr := q3 - q1
	lower := q1 - iqrFenceFactor*iqr
	upper := q3 + iqrFenceFactor*iqr

	positions := make([]int, 0)
	for i, v := range values {
		if v < lower || v > upper {
			positions = append(positions, i)
		}
	}
	return positions
}

func detectOutliersZScore(values []float64) []int {
	avg := utils.ComputeAverage(values)
	std := utils.ComputeStdDev(values)
	if std == 0 {
		return nil
	}
	positions := make([]int, 0)
	for i, v := range values {
		z := (v - avg) / std
		if z > zScoreThreshold || z < -zScoreThreshold {
			positions = append(positions, i)
		}
	}
	return positions
}
