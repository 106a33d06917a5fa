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
	log "github.com/golang/glog"

	"github.com/launchtune/estimator/pkg/config"
	"github.com/launchtune/estimator/pkg/datastore/dbbase"
)

// Client is the mysql db client of the estimation history store
type Client struct {
	EstimationRecorder EstimationRecorderInterface
	AnalysisRecorder   AnalysisRecorderInterface
}

// NewClient returns a new mysql db client
func NewClient(conf *config.Config) (*Client, error) {
	user := conf.GetString(config.DBUser)
	pw := conf.GetString(config.DBPassword)
	engineType := conf.GetString(config.DBEngineType)
	url := conf.GetString(config.DBURL)

	log.Infof("create mysql db with user(%s), engineType(%s), url(%s)", user, engineType, url)

	db, err := dbbase.NewDatabase(user, pw, engineType, url)
	if err != nil {
		return nil, err
	}
	return NewClientWithDB(db), nil
}

// NewClientWithDB builds a client over an existing database, e.g. a sqlmock
// backed one in tests.
func NewClientWithDB(db *dbbase.Database) *Client {
	return &Client{
		EstimationRecorder: NewEstimationDBRecorder(db),
		AnalysisRecorder:   NewAnalysisDBRecorder(db),
	}
}

// NewFakeClient returns a new fake mysql db client
func NewFakeClient() *Client {
	return &Client{
		EstimationRecorder: NewEstimationFakeRecorder(),
		AnalysisRecorder:   NewAnalysisFakeRecorder(),
	}
}
