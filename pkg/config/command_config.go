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

import "flag"

const (
	// SpecConfigFileName is the spec name of the configuration file path
	SpecConfigFileName = "config"
	// SpecServerPort is the spec name of the HTTP service port
	SpecServerPort = "port"
)

// Spec is the struct of configure specifications
type Spec struct {
	// ConfigFile is the path of the YAML configuration file
	ConfigFile string
	// Port is the port of the estimator HTTP service
	Port string
}

// CommandConfig is the variable of type Spec
var CommandConfig = &Spec{}

func init() {
	flag.StringVar(&CommandConfig.ConfigFile,
		SpecConfigFileName,
		"",
		"Path to the YAML configuration file. Optional; defaults apply without it.")
	flag.StringVar(&CommandConfig.Port,
		SpecServerPort,
		":8080",
		"The port which the estimator service binds to.")
}
