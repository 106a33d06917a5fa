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

package datastore

import (
	"time"

	"github.com/google/uuid"

	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/config"
	"github.com/launchtune/estimator/pkg/datastore/recorder/mysql"
)

const (
	// MySQLDataStoreName is the name of the mysql backed data store
	MySQLDataStoreName = "mysql_datastore"
	// MemoryDataStoreName is the name of the in-memory data store
	MemoryDataStoreName = "memory_datastore"
)

func init() {
	registerNewFunc(MySQLDataStoreName, newMySQLHistoryDataStore)
	registerNewFunc(MemoryDataStoreName, newMemoryHistoryDataStore)
}

// HistoryDataStore persists estimation history through a recorder client.
// The mysql and memory stores differ only in the client they are built on.
type HistoryDataStore struct {
	client *mysql.Client
}

func newMySQLHistoryDataStore(conf *config.Config) (DataStore, error) {
	client, err := mysql.NewClient(conf)
	if err != nil {
		return nil, err
	}
	return &HistoryDataStore{client: client}, nil
}

func newMemoryHistoryDataStore(conf *config.Config) (DataStore, error) {
	return &HistoryDataStore{client: mysql.NewFakeClient()}, nil
}

// NewHistoryDataStore builds a store over an explicit client, e.g. a fake
// client in tests.
func NewHistoryDataStore(client *mysql.Client) *HistoryDataStore {
	return &HistoryDataStore{client: client}
}

// PersistEstimation stores an estimation result and returns its uid
func (store *HistoryDataStore) PersistEstimation(conf *common.TrainingConfiguration, tierID string, datasetSize int, estimation *common.TimeEstimation) (string, error) {
	record := &mysql.Estimation{
		UID:             uuid.NewString(),
		ModelID:         conf.ModelID,
		ModelSize:       string(conf.ModelSize),
		Method:          string(conf.Method),
		TierID:          tierID,
		Epochs:          conf.Epochs,
		BatchSize:       conf.BatchSize,
		GradAccumSteps:  conf.GradAccumSteps,
		DatasetSize:     datasetSize,
		TotalSteps:      estimation.TotalSteps,
		DurationHours:   estimation.DurationHours,
		DurationMinutes: estimation.DurationMinutes,
		MemoryFits:      estimation.MemoryFits,
		CreatedAt:       time.Now(),
	}
	if estimation.EstimatedCost != nil {
		record.EstimatedCost = *estimation.EstimatedCost
	}
	if err := store.client.EstimationRecorder.Upsert(record); err != nil {
		return "", err
	}
	return record.UID, nil
}

// PersistAnalysis stores a dataset analysis result and returns its uid
func (store *HistoryDataStore) PersistAnalysis(datasetName string, stats *common.EnhancedDatasetStats) (string, error) {
	record := &mysql.Analysis{
		UID:             uuid.NewString(),
		DatasetName:     datasetName,
		ExampleCount:    int64(stats.ExampleCount),
		TokenCountTotal: stats.TokenCountTotal,
		TokenCountAvg:   stats.TokenCountAvg,
		TokenCountMin:   stats.TokenCountMin,
		TokenCountMax:   stats.TokenCountMax,
		TokenizerUsed:   stats.TokenizerUsed,
		QualityScore:    stats.Quality.QualityScore,
		OutlierCount:    stats.Outliers.Count,
		CreatedAt:       time.Now(),
	}
	if err := store.client.AnalysisRecorder.Upsert(record); err != nil {
		return "", err
	}
	return record.UID, nil
}

// ListEstimations returns persisted estimations, optionally filtered by model id
func (store *HistoryDataStore) ListEstimations(modelID string) ([]*mysql.Estimation, error) {
	records := make([]*mysql.Estimation, 0)
	cond := &mysql.EstimationCondition{ModelID: modelID}
	if err := store.client.EstimationRecorder.List(cond, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAnalyses returns persisted analyses, optionally filtered by dataset name
func (store *HistoryDataStore) ListAnalyses(datasetName string) ([]*mysql.Analysis, error) {
	records := make([]*mysql.Analysis, 0)
	cond := &mysql.AnalysisCondition{DatasetName: datasetName}
	if err := store.client.AnalysisRecorder.List(cond, &records); err != nil {
		return nil, err
	}
	return records, nil
}
