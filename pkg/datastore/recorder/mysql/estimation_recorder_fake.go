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

// EstimationFakeRecorder is the in-memory fake recorder of estimations
type EstimationFakeRecorder struct {
	records map[string]*Estimation
}

// NewEstimationFakeRecorder returns a new fake estimation recorder
func NewEstimationFakeRecorder() EstimationRecorderInterface {
	return &EstimationFakeRecorder{
		records: make(map[string]*Estimation),
	}
}

func canApplyEstimationCondition(condition *EstimationCondition, estimation *Estimation) bool {
	if len(condition.UID) > 0 && condition.UID != estimation.UID {
		return false
	}
	if len(condition.ModelID) > 0 && condition.ModelID != estimation.ModelID {
		return false
	}
	if len(condition.TierID) > 0 && condition.TierID != estimation.TierID {
		return false
	}
	return true
}

// Get returns a row
func (r *EstimationFakeRecorder) Get(condition *EstimationCondition, estimation *Estimation) error {
	if estimation == nil {
		estimation = &Estimation{}
	}
	for _, record := range r.records {
		if canApplyEstimationCondition(condition, record) {
			*estimation = *record
			return nil
		}
	}
	return fmt.Errorf("fail to find record for %v", condition)
}

// List returns multiple rows
func (r *EstimationFakeRecorder) List(condition *EstimationCondition, estimations *[]*Estimation) error {
	if estimations == nil {
		records := make([]*Estimation, 0)
		estimations = &records
	}
	for _, record := range r.records {
		if canApplyEstimationCondition(condition, record) {
			*estimations = append(*estimations, record)
		}
	}
	return nil
}

// Upsert inserts or updates a row
func (r *EstimationFakeRecorder) Upsert(estimation *Estimation) error {
	if len(estimation.UID) == 0 {
		return errors.New("estimation UID can not be empty")
	}
	r.records[estimation.UID] = estimation
	return nil
}
