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
	"fmt"
	"sync"

	log "github.com/golang/glog"

	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/config"
	"github.com/launchtune/estimator/pkg/datastore/recorder/mysql"
)

var (
	registerMutex = &sync.RWMutex{}
	newFuncs      = make(map[string]DataStoreNewFunc)
)

// DataStore persists estimation and analysis history
type DataStore interface {
	// PersistEstimation stores an estimation result and returns its uid
	PersistEstimation(conf *common.TrainingConfiguration, tierID string, datasetSize int, estimation *common.TimeEstimation) (string, error)
	// PersistAnalysis stores a dataset analysis result and returns its uid
	PersistAnalysis(datasetName string, stats *common.EnhancedDatasetStats) (string, error)
	// ListEstimations returns persisted estimations, optionally filtered by model id
	ListEstimations(modelID string) ([]*mysql.Estimation, error)
	// ListAnalyses returns persisted analyses, optionally filtered by dataset name
	ListAnalyses(datasetName string) ([]*mysql.Analysis, error)
}

// DataStoreNewFunc is the new func of data stores
type DataStoreNewFunc func(conf *config.Config) (DataStore, error)

func registerNewFunc(name string, newFunc DataStoreNewFunc) {
	registerMutex.Lock()
	defer registerMutex.Unlock()

	if _, exist := newFuncs[name]; exist {
		log.Errorf("DataStore new func %s has already registered", name)
		return
	}
	newFuncs[name] = newFunc
}

// CreateDataStore creates a datastore for a given name
func CreateDataStore(name string, conf *config.Config) (DataStore, error) {
	registerMutex.RLock()
	defer registerMutex.RUnlock()

	newFunc, exists := newFuncs[name]
	if !exists {
		return nil, fmt.Errorf("DataStore %s has not registered", name)
	}
	return newFunc(conf)
}
