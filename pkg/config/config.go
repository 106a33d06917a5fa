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

import (
	"fmt"
	"strconv"
)

// Config is a key-value configuration snapshot. Keys are dotted paths, see
// common.go for the recognized keys.
type Config struct {
	data map[string]interface{}
}

// NewEmptyConfig returns a config without any key.
func NewEmptyConfig() *Config {
	return &Config{
		data: make(map[string]interface{}),
	}
}

// NewConfig returns a config holding the given key-values.
func NewConfig(data map[string]interface{}) *Config {
	conf := NewEmptyConfig()
	for k, v := range data {
		conf.data[k] = v
	}
	return conf
}

// IsEmpty checks if the config has any key.
func (conf *Config) IsEmpty() bool {
	return len(conf.data) == 0
}

// Set sets a key.
func (conf *Config) Set(key string, value interface{}) {
	conf.data[key] = value
}

// Get returns the raw value of a key, or nil.
func (conf *Config) Get(key string) interface{} {
	return conf.data[key]
}

// GetString returns the string value of a key, "" when absent or not a
// string.
func (conf *Config) GetString(key string) string {
	if v, ok := conf.data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetIntWithValue returns the int value of a key, or defaultValue when the
// key is absent or not convertible.
func (conf *Config) GetIntWithValue(key string, defaultValue int) int {
	v, ok := conf.data[key]
	if !ok {
		return defaultValue
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return defaultValue
}

// GetFloat64WithValue returns the float value of a key, or defaultValue when
// the key is absent or not convertible.
func (conf *Config) GetFloat64WithValue(key string, defaultValue float64) float64 {
	v, ok := conf.data[key]
	if !ok {
		return defaultValue
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// SetConfig overwrites this config's keys with another config's keys.
func (conf *Config) SetConfig(other *Config) {
	if other == nil {
		return
	}
	for k, v := range other.data {
		conf.data[k] = v
	}
}

// Clone returns a copy of the config.
func (conf *Config) Clone() *Config {
	return NewConfig(conf.data)
}

func (conf *Config) String() string {
	return fmt.Sprintf("%v", conf.data)
}
