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

package mysql

import (
	"errors"
	"fmt"
)

// AnalysisFakeRecorder is the in-memory fake recorder of analyses
type AnalysisFakeRecorder struct {
	records map[string]*Analysis
}

// NewAnalysisFakeRecorder returns a new fake analysis recorder
func NewAnalysisFakeRecorder() AnalysisRecorderInterface {
	return &AnalysisFakeRecorder{
		records: make(map[string]*Analysis),
	}
}

func canApplyAnalysisCondition(condition *AnalysisCondition, analysis *Analysis) bool {
	if len(condition.UID) > 0 && condition.UID != analysis.UID {
		return false
	}
	if len(condition.DatasetName) > 0 && condition.DatasetName != analysis.DatasetName {
		return false
	}
	return true
}

// Get returns a row
func (r *AnalysisFakeRecorder) Get(condition *AnalysisCondition, analysis *Analysis) error {
	if analysis == nil {
		analysis = &Analysis{}
	}
	for _, record := range r.records {
		if canApplyAnalysisCondition(condition, record) {
			*analysis = *record
			return nil
		}
	}
	return fmt.Errorf("fail to find record for %v", condition)
}

// List returns multiple rows
func (r *AnalysisFakeRecorder) List(condition *AnalysisCondition, analyses *[]*Analysis) error {
	if analyses == nil {
		records := make([]*Analysis, 0)
		analyses = &records
	}
	for _, record := range r.records {
		if canApplyAnalysisCondition(condition, record) {
			*analyses = append(*analyses, record)
		}
	}
	return nil
}

// Upsert inserts or updates a row
func (r *AnalysisFakeRecorder) Upsert(analysis *Analysis) error {
	if len(analysis.UID) == 0 {
		return errors.New("analysis UID can not be empty")
	}
	r.records[analysis.UID] = analysis
	return nil
}
