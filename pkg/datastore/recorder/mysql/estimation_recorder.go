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
	"time"

	"xorm.io/xorm"

	"github.com/launchtune/estimator/pkg/datastore/dbbase"
)

// TableEstimation is the name of the estimation history table
const TableEstimation = "estimation"

// EstimationCondition is the sql condition for the estimation table
type EstimationCondition struct {
	UID            string
	ModelID        string
	TierID         string
	CreatedAtRange *dbbase.TimeRange
}

// Estimation is a persisted estimation request and its result
type Estimation struct {
	UID             string
	ModelID         string
	ModelSize       string
	Method          string
	TierID          string
	Epochs          int
	BatchSize       int
	GradAccumSteps  int
	DatasetSize     int
	TotalSteps      int
	DurationHours   int
	DurationMinutes int
	EstimatedCost   float64
	MemoryFits      bool
	CreatedAt       time.Time
}

// Apply applies EstimationCondition
func (c *EstimationCondition) Apply(session *xorm.Session) *xorm.Session {
	if c.UID != "" {
		session.Where("uid = ?", c.UID)
	}
	if c.ModelID != "" {
		session.Where("model_id = ?", c.ModelID)
	}
	if c.TierID != "" {
		session.Where("tier_id = ?", c.TierID)
	}
	if r := c.CreatedAtRange; r != nil {
		if !r.From.IsZero() {
			session.Where("created_at >= ?", r.From)
		}
		if !r.To.IsZero() {
			session.Where("created_at <= ?", r.To)
		}
	}
	return session
}

// EstimationRecorderInterface is the recorder interface of estimations
type EstimationRecorderInterface interface {
	Get(condition *EstimationCondition, estimation *Estimation) error
	List(condition *EstimationCondition, estimations *[]*Estimation) error
	Upsert(estimation *Estimation) error
}

// EstimationRecorder is the recorder struct of estimations
type EstimationRecorder struct {
	Recorder dbbase.RecorderInterface
}

// NewEstimationDBRecorder creates a new EstimationRecorder
func NewEstimationDBRecorder(db *dbbase.Database) EstimationRecorderInterface {
	return &EstimationRecorder{
		Recorder: &dbbase.DatabaseRecorder{Engine: db.Engine, TableName: TableEstimation},
	}
}

// Get returns a row
func (r *EstimationRecorder) Get(condition *EstimationCondition, estimation *Estimation) error {
	if estimation == nil {
		estimation = &Estimation{}
	}
	return r.Recorder.Get(estimation, condition)
}

// List returns multiple rows
func (r *EstimationRecorder) List(condition *EstimationCondition, estimations *[]*Estimation) error {
	if estimations == nil {
		records := make([]*Estimation, 0)
		estimations = &records
	}
	return r.Recorder.List(estimations, condition)
}

// Upsert updates or inserts a row
func (r *EstimationRecorder) Upsert(estimation *Estimation) error {
	return r.Recorder.Upsert(estimation)
}
