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

// TableAnalysis is the name of the dataset analysis table
const TableAnalysis = "analysis"

// AnalysisCondition is the sql condition for the analysis table
type AnalysisCondition struct {
	UID            string
	DatasetName    string
	CreatedAtRange *dbbase.TimeRange
}

// Analysis is a persisted dataset analysis result
type Analysis struct {
	UID             string
	DatasetName     string
	ExampleCount    int64
	TokenCountTotal int64
	TokenCountAvg   float64
	TokenCountMin   int
	TokenCountMax   int
	TokenizerUsed   string
	QualityScore    float64
	OutlierCount    int
	CreatedAt       time.Time
}

// Apply applies AnalysisCondition
func (c *AnalysisCondition) Apply(session *xorm.Session) *xorm.Session {
	if c.UID != "" {
		session.Where("uid = ?", c.UID)
	}
	if c.DatasetName != "" {
		session.Where("dataset_name = ?", c.DatasetName)
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

// AnalysisRecorderInterface is the recorder interface of analyses
type AnalysisRecorderInterface interface {
	Get(condition *AnalysisCondition, analysis *Analysis) error
	List(condition *AnalysisCondition, analyses *[]*Analysis) error
	Upsert(analysis *Analysis) error
}

// AnalysisRecorder is the recorder struct of analyses
type AnalysisRecorder struct {
	Recorder dbbase.RecorderInterface
}

// NewAnalysisDBRecorder creates a new AnalysisRecorder
func NewAnalysisDBRecorder(db *dbbase.Database) AnalysisRecorderInterface {
	return &AnalysisRecorder{
		Recorder: &dbbase.DatabaseRecorder{Engine: db.Engine, TableName: TableAnalysis},
	}
}

// Get returns a row
func (r *AnalysisRecorder) Get(condition *AnalysisCondition, analysis *Analysis) error {
	if analysis == nil {
		analysis = &Analysis{}
	}
	return r.Recorder.Get(analysis, condition)
}

// List returns multiple rows
func (r *AnalysisRecorder) List(condition *AnalysisCondition, analyses *[]*Analysis) error {
	if analyses == nil {
		records := make([]*Analysis, 0)
		analyses = &records
	}
	return r.Recorder.List(analyses, condition)
}

// Upsert updates or inserts a row
func (r *AnalysisRecorder) Upsert(analysis *Analysis) error {
	return r.Recorder.Upsert(analysis)
}
