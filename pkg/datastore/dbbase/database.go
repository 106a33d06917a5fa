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

package dbbase

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	// mysql driver
	_ "github.com/go-sql-driver/mysql"
	log "github.com/golang/glog"
	"xorm.io/xorm"
	"xorm.io/xorm/names"
)

// Database wraps a xorm engine configured for the estimation history store.
type Database struct {
	*xorm.Engine
}

// NewDatabase opens a DB and verifies it is reachable.
func NewDatabase(username, password, engineType, url string) (*Database, error) {
	uri := formatURI(username, password, url)
	engine, err := xorm.NewEngine(engineType, uri)
	if err != nil {
		return nil, err
	}
	if err = engine.Ping(); err != nil {
		return nil, err
	}
	return &Database{Engine: configureEngine(engine, true)}, nil
}

// formatURI fills in the driver parameters the recorders rely on.
func formatURI(username, password, url string) string {
	var params []string
	if !strings.Contains(url, "interpolateParams=") {
		params = append(params, "interpolateParams=true")
	}
	if !strings.Contains(url, "parseTime=") {
		params = append(params, "parseTime=true")
	}
	if !strings.Contains(url, "clientFoundRows=") {
		params = append(params, "clientFoundRows=true")
	}
	if !strings.Contains(url, "charset=") {
		params = append(params, "charset=utf8mb4,utf8")
	}
	if len(params) > 0 {
		if !strings.Contains(url, "?") {
			url += "?"
		} else {
			url += "&"
		}
		url += strings.Join(params, "&")
	}
	log.Infof("Database URL is formatted as %s", url)
	return fmt.Sprintf("%s:%s@%s", username, password, url)
}

// configureEngine sets the name mapper, aligns time zones between xorm and
// the sql driver, and installs the SQL logger.
func configureEngine(engine *xorm.Engine, showSQL bool) *xorm.Engine {
	uri := engine.DataSourceName()
	// Gonic mapper, for example: TierID <==> tier_id
	engine.SetMapper(names.GonicMapper{})
	// go-sql-driver returns UTC times by default while xorm assumes Local.
	// A mismatch makes xorm rewrite timestamps, so keep them identical.
	if !strings.Contains(uri, "loc=") || strings.Contains(uri, "loc=UTC") {
		engine.SetTZDatabase(time.UTC)
		engine.SetTZLocation(time.UTC)
	} else if strings.Contains(uri, "loc=Local") {
		engine.SetTZDatabase(time.Local)
		engine.SetTZLocation(time.Local)
	} else {
		log.Warningf("The 'loc' arg of the sql driver may cause time parsing problems")
	}
	engine.SetLogger(NewSQLLogger())
	engine.ShowSQL(showSQL)
	return engine
}

// InitMockAndDB builds a Database backed by sqlmock for tests.
func InitMockAndDB(showSQL bool) (*Database, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}
	engine, err := wrapSQLDB(mockDB, showSQL)
	if err != nil {
		return nil, nil, err
	}
	return &Database{Engine: engine}, mock, nil
}

// wrapSQLDB builds a xorm engine over an already opened *sql.DB.
func wrapSQLDB(db *sql.DB, showSQL bool) (*xorm.Engine, error) {
	engine, err := xorm.NewEngine("mysql", "")
	if err != nil {
		return nil, err
	}
	engine.DB().DB = db
	if err = engine.Ping(); err != nil {
		return nil, err
	}
	return configureEngine(engine, showSQL), nil
}
