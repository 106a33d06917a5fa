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

package config

const (
	// ServerPort is the config key of the HTTP listen port
	ServerPort = "server.port"

	// DBUser is the config key of database user
	DBUser = "db.user"
	// DBPassword is the config key of database password
	DBPassword = "db.password"
	// DBEngineType is the config key of database engine type, e.g., mysql
	DBEngineType = "db.engine.type"
	// DBURL is the config key of database url
	DBURL = "db.url"
	// DataStoreName is the config key of the data store recording served results
	DataStoreName = "data-store.name"

	// BenchmarkCatalogFile is the config key of an optional catalog override file
	BenchmarkCatalogFile = "benchmark.catalog.file"

	// AnalyzerTokenizerName is the config key of the tokenization scheme
	AnalyzerTokenizerName = "analyzer.tokenizer.name"
	// AnalyzerOutlierMethod is the config key of the outlier detection method
	AnalyzerOutlierMethod = "analyzer.outlier.method"

	// EstimatorStepWarnCeiling is the config key of the very-long-run step warning ceiling
	EstimatorStepWarnCeiling = "estimator.step.warn-ceiling"
)
