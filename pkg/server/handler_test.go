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

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/datastore"
	"github.com/launchtune/estimator/pkg/datastore/recorder/mysql"
	"github.com/launchtune/estimator/pkg/estimator"
)

func newTestRouter(store datastore.DataStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := benchmark.DefaultRegistry()
	api := NewAPI(registry, estimator.NewEstimator(registry), store)
	router := gin.New()
	api.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	parsed := make(map[string]interface{})
	if len(w.Body.Bytes()) > 0 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(nil)
	w, parsed := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, parsed["ok"])
}

func TestListTiers(t *testing.T) {
	router := newTestRouter(nil)
	w, parsed := doJSON(t, router, http.MethodGet, "/tiers", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, benchmark.DefaultCatalogVersion, data["version"])
	tiers := data["tiers"].([]interface{})
	assert.Len(t, tiers, 7)
	first := tiers[0].(map[string]interface{})
	assert.Equal(t, "t4", first["id"])
}

func TestEstimateEndpoint(t *testing.T) {
	router := newTestRouter(nil)
	body := estimateRequest{
		Config: common.TrainingConfiguration{
			ModelID:        "llama-3-8b",
			ModelSize:      common.ModelSize1B,
			Method:         common.TuningMethodPEFT,
			Epochs:         3,
			BatchSize:      4,
			GradAccumSteps: 2,
		},
		TierID:      "t4",
		DatasetSize: 100,
	}
	w, parsed := doJSON(t, router, http.MethodPost, "/estimate", body)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	estimation := data["estimation"].(map[string]interface{})
	assert.Equal(t, float64(39), estimation["total_steps"])
	assert.Equal(t, float64(8), estimation["effective_batch_size"])
	assert.Equal(t, true, estimation["memory_fits"])
}

func TestEstimateEndpointUnknownTier(t *testing.T) {
	router := newTestRouter(nil)
	body := estimateRequest{
		Config: common.TrainingConfiguration{
			ModelSize:      common.ModelSize1B,
			Method:         common.TuningMethodPEFT,
			Epochs:         1,
			BatchSize:      1,
			GradAccumSteps: 1,
		},
		TierID:      "tpu-v5",
		DatasetSize: 10,
	}
	w, parsed := doJSON(t, router, http.MethodPost, "/estimate", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, parsed["ok"])
}

func TestEstimateEndpointInvalidConfiguration(t *testing.T) {
	router := newTestRouter(nil)
	body := estimateRequest{
		Config: common.TrainingConfiguration{
			ModelSize:      common.ModelSize1B,
			Method:         common.TuningMethodPEFT,
			Epochs:         0,
			BatchSize:      4,
			GradAccumSteps: 2,
		},
		TierID:      "t4",
		DatasetSize: 100,
	}
	w, _ := doJSON(t, router, http.MethodPost, "/estimate", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateEndpointPersists(t *testing.T) {
	store := datastore.NewHistoryDataStore(mysql.NewFakeClient())
	router := newTestRouter(store)
	body := estimateRequest{
		Config: common.TrainingConfiguration{
			ModelID:        "llama-3-8b",
			ModelSize:      common.ModelSize1B,
			Method:         common.TuningMethodPEFT,
			Epochs:         3,
			BatchSize:      4,
			GradAccumSteps: 2,
		},
		TierID:      "t4",
		DatasetSize: 100,
		Persist:     true,
	}
	w, parsed := doJSON(t, router, http.MethodPost, "/estimate", body)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	assert.NotEmpty(t, data["record_uid"])

	records, err := store.ListEstimations("llama-3-8b")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(nil)
	body := analyzeRequest{
		Examples: []common.DatasetExample{
			{"text": "first training example"},
			{"text": "second training example"},
			{"instruction": "translate", "output": "done"},
		},
	}
	w, parsed := doJSON(t, router, http.MethodPost, "/analyze", body)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["example_count"])
	quality := stats["quality"].(map[string]interface{})
	assert.Equal(t, float64(100), quality["quality_score"])
}

func TestAnalyzeEndpointEmptyDataset(t *testing.T) {
	router := newTestRouter(nil)
	w, parsed := doJSON(t, router, http.MethodPost, "/analyze", analyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, parsed["ok"])
}

func TestAnalyzeEndpointWithPricingTier(t *testing.T) {
	router := newTestRouter(nil)
	body := analyzeRequest{
		Examples: []common.DatasetExample{
			{"text": "first training example"},
		},
		Epochs:        3,
		PricingTierID: "t4",
	}
	w, parsed := doJSON(t, router, http.MethodPost, "/analyze", body)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	cost := stats["cost_projection"].(map[string]interface{})
	assert.Equal(t, "t4", cost["tier_id"])
	assert.Equal(t, "USD", cost["currency"])
}

func TestBudgetCheckEndpoint(t *testing.T) {
	router := newTestRouter(nil)
	maxHours := 1.0
	body := budgetCheckRequest{
		Estimation: common.TimeEstimation{DurationHours: 1, DurationMinutes: 12},
		Policy:     common.BudgetPolicy{MaxHours: &maxHours, WarnAtPercent: 80},
	}
	w, parsed := doJSON(t, router, http.MethodPost, "/budget/check", body)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, true, data["exceeded"])
}

func TestRecommendEndpoint(t *testing.T) {
	router := newTestRouter(nil)
	w, parsed := doJSON(t, router, http.MethodPost, "/recommend", recommendRequest{ModelSize: common.ModelSize1B})
	assert.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, "t4", data["tier_id"])
	assert.NotEmpty(t, data["reason"])
}
