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
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/golang/glog"

	"github.com/launchtune/estimator/pkg/analyzer"
	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/budget"
	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/config"
	"github.com/launchtune/estimator/pkg/datastore"
	"github.com/launchtune/estimator/pkg/estimator"
	"github.com/launchtune/estimator/pkg/recommender"
)

type response struct {
	Ok    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type estimateRequest struct {
	Config      common.TrainingConfiguration `json:"config"`
	TierID      string                       `json:"tier_id"`
	DatasetSize int                          `json:"dataset_size,omitempty"`
	Persist     bool                         `json:"persist,omitempty"`
}

type estimateResponse struct {
	Estimation *common.TimeEstimation `json:"estimation"`
	RecordUID  string                 `json:"record_uid,omitempty"`
}

type analyzeRequest struct {
	Examples      []common.DatasetExample `json:"examples"`
	Epochs        int                     `json:"epochs,omitempty"`
	Tokenizer     string                  `json:"tokenizer,omitempty"`
	OutlierMethod string                  `json:"outlier_method,omitempty"`
	PricingTierID string                  `json:"pricing_tier_id,omitempty"`
	DatasetName   string                  `json:"dataset_name,omitempty"`
	Persist       bool                    `json:"persist,omitempty"`
}

type analyzeResponse struct {
	Stats     *common.EnhancedDatasetStats `json:"stats"`
	RecordUID string                       `json:"record_uid,omitempty"`
}

type budgetCheckRequest struct {
	Estimation common.TimeEstimation `json:"estimation"`
	Policy     common.BudgetPolicy   `json:"policy"`
}

type recommendRequest struct {
	ModelSize common.ModelSizeClass `json:"model_size"`
	MaxCost   *float64              `json:"max_cost,omitempty"`
}

type tiersResponse struct {
	Version string                   `json:"version"`
	Tiers   []benchmark.HardwareTier `json:"tiers"`
}

// API binds the estimation engine to HTTP routes.
type API struct {
	registry  *benchmark.Registry
	estimator *estimator.Estimator
	store     datastore.DataStore

	mu sync.RWMutex
	// defaultTokenizer and defaultOutlierMethod are config-driven analyzer
	// defaults, overridable per request.
	defaultTokenizer     string
	defaultOutlierMethod string
}

// NewAPI creates the API. store may be nil when history persistence is
// disabled.
func NewAPI(registry *benchmark.Registry, est *estimator.Estimator, store datastore.DataStore) *API {
	return &API{
		registry:             registry,
		estimator:            est,
		store:                store,
		defaultTokenizer:     analyzer.DefaultTokenizer,
		defaultOutlierMethod: analyzer.DefaultOutlierMethod,
	}
}

// UpdateOptions applies config-driven serving options.
func (a *API) UpdateOptions(conf *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if name := conf.GetString(config.AnalyzerTokenizerName); name != "" {
		a.defaultTokenizer = name
	}
	if method := conf.GetString(config.AnalyzerOutlierMethod); method != "" {
		a.defaultOutlierMethod = method
	}
}

// RegisterRoutes attaches the API routes to the router.
func (a *API) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", a.healthz)
	router.GET("/tiers", a.listTiers)
	router.POST("/estimate", a.estimate)
	router.POST("/analyze", a.analyze)
	router.POST("/budget/check", a.budgetCheck)
	router.POST("/recommend", a.recommend)
}

func (a *API) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, response{Ok: true})
}

func (a *API) listTiers(c *gin.Context) {
	c.JSON(http.StatusOK, response{Ok: true, Data: tiersResponse{
		Version: a.registry.Version(),
		Tiers:   a.registry.ListTiers(),
	}})
}

func (a *API) estimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Ok: false, Error: err.Error()})
		return
	}

	estimation, err := a.estimator.Estimate(&req.Config, req.TierID, req.DatasetSize)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	resp := estimateResponse{Estimation: estimation}
	if req.Persist && a.store != nil {
		size := req.DatasetSize
		if size == 0 {
			size = req.Config.DatasetSizeHint
		}
		uid, err := a.store.PersistEstimation(&req.Config, req.TierID, size, estimation)
		if err != nil {
			// History is best effort, the estimation itself already
			// succeeded.
			log.Errorf("fail to persist estimation: %v", err)
		} else {
			resp.RecordUID = uid
		}
	}
	c.JSON(http.StatusOK, response{Ok: true, Data: resp})
}

func (a *API) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Ok: false, Error: err.Error()})
		return
	}

	a.mu.RLock()
	opts := &analyzer.Options{
		Tokenizer:     a.defaultTokenizer,
		OutlierMethod: a.defaultOutlierMethod,
	}
	a.mu.RUnlock()
	if req.Tokenizer != "" {
		opts.Tokenizer = req.Tokenizer
	}
	if req.OutlierMethod != "" {
		opts.OutlierMethod = req.OutlierMethod
	}
	if req.PricingTierID != "" {
		tier, err := a.registry.GetTier(req.PricingTierID)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}
		opts.PricingTier = &tier
	}

	stats, err := analyzer.Analyze(req.Examples, req.Epochs, opts)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	resp := analyzeResponse{Stats: stats}
	if req.Persist && a.store != nil {
		uid, err := a.store.PersistAnalysis(req.DatasetName, stats)
		if err != nil {
			log.Errorf("fail to persist analysis: %v", err)
		} else {
			resp.RecordUID = uid
		}
	}
	c.JSON(http.StatusOK, response{Ok: true, Data: resp})
}

func (a *API) budgetCheck(c *gin.Context) {
	var req budgetCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Ok: false, Error: err.Error()})
		return
	}
	verdict := budget.Evaluate(&req.Estimation, &req.Policy)
	c.JSON(http.StatusOK, response{Ok: true, Data: verdict})
}

func (a *API) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Ok: false, Error: err.Error()})
		return
	}
	rec, err := recommender.Recommend(a.registry, req.ModelSize, req.MaxCost)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, response{Ok: true, Data: rec})
}

// abortWithDomainError maps the typed engine errors to HTTP statuses: an
// unknown tier is 404, the remaining input errors are 400.
func abortWithDomainError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var unknownTier *common.UnknownTierError
	var invalidDataset *common.InvalidDatasetError
	var insufficientData *common.InsufficientDataError
	var invalidConfiguration *common.InvalidConfigurationError
	switch {
	case errors.As(err, &unknownTier):
		status = http.StatusNotFound
	case errors.As(err, &invalidDataset),
		errors.As(err, &insufficientData),
		errors.As(err, &invalidConfiguration):
		status = http.StatusBadRequest
	}
	c.JSON(status, response{Ok: false, Error: err.Error()})
}
