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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/launchtune/estimator/pkg/datastore/dbbase"
)

func TestEstimationRecorderUpsert(t *testing.T) {
	db, mock, err := dbbase.InitMockAndDB(false)
	assert.NoError(t, err)
	client := NewClientWithDB(db)

	mock.ExpectExec("INSERT INTO `estimation` .* ON DUPLICATE KEY UPDATE .*").
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &Estimation{
		UID:             "est-1",
		ModelID:         "llama-3-8b",
		ModelSize:       "7b",
		Method:          "peft",
		TierID:          "l4",
		Epochs:          3,
		BatchSize:       4,
		GradAccumSteps:  2,
		DatasetSize:     100,
		TotalSteps:      39,
		DurationHours:   1,
		DurationMinutes: 30,
		EstimatedCost:   1.4,
		MemoryFits:      true,
		CreatedAt:       time.Now(),
	}
	err = client.EstimationRecorder.Upsert(record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRecorderUpsert(t *testing.T) {
	db, mock, err := dbbase.InitMockAndDB(false)
	assert.NoError(t, err)
	client := NewClientWithDB(db)

	mock.ExpectExec("INSERT INTO `analysis` .* ON DUPLICATE KEY UPDATE .*").
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &Analysis{
		UID:             "ana-1",
		DatasetName:     "support-chats",
		ExampleCount:    120,
		TokenCountTotal: 54000,
		TokenCountAvg:   450,
		TokenCountMin:   12,
		TokenCountMax:   2100,
		TokenizerUsed:   "heuristic-v1",
		QualityScore:    93.5,
		OutlierCount:    2,
		CreatedAt:       time.Now(),
	}
	err = client.AnalysisRecorder.Upsert(record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFakeRecorderRoundTrip(t *testing.T) {
	client := NewFakeClient()

	err := client.EstimationRecorder.Upsert(&Estimation{UID: "est-1", ModelID: "m1", TierID: "t4"})
	assert.NoError(t, err)
	err = client.EstimationRecorder.Upsert(&Estimation{UID: "est-2", ModelID: "m2", TierID: "l4"})
	assert.NoError(t, err)

	estimation := &Estimation{}
	err = client.EstimationRecorder.Get(&EstimationCondition{UID: "est-1"}, estimation)
	assert.NoError(t, err)
	assert.Equal(t, "m1", estimation.ModelID)

	estimations := make([]*Estimation, 0)
	err = client.EstimationRecorder.List(&EstimationCondition{TierID: "l4"}, &estimations)
	assert.NoError(t, err)
	assert.Len(t, estimations, 1)

	err = client.EstimationRecorder.Upsert(&Estimation{})
	assert.Error(t, err)
}
