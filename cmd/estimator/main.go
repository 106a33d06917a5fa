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

package main

import (
	"context"
	"flag"
	"os"

	log "github.com/golang/glog"

	"github.com/launchtune/estimator/pkg/benchmark"
	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/config"
	"github.com/launchtune/estimator/pkg/datastore"
	"github.com/launchtune/estimator/pkg/estimator"
	"github.com/launchtune/estimator/pkg/server"
)

func main() {
	log.Info("Start LaunchTune estimator")
	flag.Parse()
	mConfig := config.CommandConfig

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start error handler
	log.Info("Start error handler")
	errHandler, err := common.NewStopAllErrorHandler(cancel)
	if err != nil {
		log.Fatalf("Create ErrorHandler error: %v", err)
	}
	go errHandler.HandleError(ctx)

	conf := config.NewEmptyConfig()
	var manager *config.Manager
	if mConfig.ConfigFile != "" {
		manager = config.NewManager(mConfig.ConfigFile)
		if err = manager.Run(ctx, errHandler); err != nil {
			log.Fatalf("fail to run config manager: %v", err)
		}
		if conf, err = manager.GetConfig(); err != nil {
			log.Fatalf("fail to read config: %v", err)
		}
	}

	registry, err := loadRegistry(conf)
	if err != nil {
		log.Fatalf("fail to load the hardware tier catalog: %v", err)
	}
	log.Infof("hardware tier catalog version %s with %d tiers", registry.Version(), len(registry.ListTiers()))

	est := estimator.NewEstimator(registry)
	est.SetStepWarnCeiling(int64(conf.GetIntWithValue(config.EstimatorStepWarnCeiling, estimator.DefaultStepWarnCeiling)))

	var store datastore.DataStore
	if name := conf.GetString(config.DataStoreName); name != "" {
		store, err = datastore.CreateDataStore(name, conf)
		if err != nil {
			log.Fatalf("fail to create data store %s: %v", name, err)
		}
		log.Infof("estimation history persisted through %s", name)
	}

	addr := conf.GetString(config.ServerPort)
	if addr == "" {
		addr = mConfig.Port
	}

	api := server.NewAPI(registry, est, store)
	api.UpdateOptions(conf)
	srv := server.NewServer(addr, api)
	if manager != nil {
		manager.RegisterConfigObserver("server", srv.ConfigUpdateNotify)
	}

	if err = srv.Run(ctx, errHandler); err != nil {
		log.Fatalf("fail to run the server: %v", err)
	}
	<-ctx.Done()
	log.Info("LaunchTune estimator stopped")
}

// loadRegistry builds the tier registry, from the catalog override file when
// configured and from the built-in catalog otherwise.
func loadRegistry(conf *config.Config) (*benchmark.Registry, error) {
	catalogFile := conf.GetString(config.BenchmarkCatalogFile)
	if catalogFile == "" {
		return benchmark.DefaultRegistry(), nil
	}
	raw, err := os.ReadFile(catalogFile)
	if err != nil {
		return nil, err
	}
	return benchmark.LoadCatalog(raw)
}
