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
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/golang/glog"
	"github.com/launchtune/estimator/pkg/common"
	"gopkg.in/yaml.v3"
)

const (
	reloadCheckInterval = 10 * time.Second
)

// This func will be called when updating config.
type configUpdateNotify func(newConfig *Config) error

// Manager loads the service configuration from a YAML file and watches the
// file for changes. Observers registered before Run are notified on every
// reload.
type Manager struct {
	sync.RWMutex

	filePath string
	modTime  time.Time

	ctx             context.Context
	errReporter     common.ErrorReporter
	config          *Config
	configObservers map[string]configUpdateNotify
}

// NewManager creates a config manager for the given file path.
func NewManager(filePath string) *Manager {
	log.Infof("Create config manager with file: %s", filePath)
	return &Manager{
		filePath:        filePath,
		configObservers: make(map[string]configUpdateNotify),
	}
}

// RegisterConfigObserver registers a function which will be called when the config is updated
func (m *Manager) RegisterConfigObserver(observerName string, notify configUpdateNotify) {
	m.Lock()
	defer m.Unlock()

	if _, exist := m.configObservers[observerName]; exist {
		log.Infof("observer[%s] is existing. Overwrite it.", observerName)
	} else {
		log.Infof("observer[%s] is registered", observerName)
	}
	m.configObservers[observerName] = notify
}

// Run loads the initial configuration and starts watching the file. Any
// change of the file during runtime triggers a reload and notifies the
// registered observers.
func (m *Manager) Run(ctx context.Context, errReporter common.ErrorReporter) error {
	m.ctx = ctx
	m.errReporter = errReporter
	m.config = NewEmptyConfig()

	currConf, modTime, err := m.readFile()
	if err != nil {
		log.Errorf("fail to read config file %s: %v", m.filePath, err)
		return err
	}
	m.config.SetConfig(currConf)
	m.modTime = modTime
	log.Infof("start with config: %v", m.config)

	go m.watch(ctx)
	return nil
}

// GetConfig returns a snapshot of the config
func (m *Manager) GetConfig() (*Config, error) {
	m.RLock()
	defer m.RUnlock()

	if m.config == nil {
		return nil, errors.New("initialization of config has NOT been finished yet")
	}
	return m.config.Clone(), nil
}

// UpdateConfig updates the config and notifies the observers
func (m *Manager) UpdateConfig(newConfig *Config) error {
	if newConfig == nil {
		err := errors.New("the new config is NIL; skip the updating")
		log.Error(err)
		return err
	}

	m.Lock()
	defer m.Unlock()

	log.Infof("Update config.\nOld config: %v\nNew config: %v", m.config, newConfig)
	m.config.SetConfig(newConfig)

	cloneConf := m.config.Clone()
	for observer, notify := range m.configObservers {
		if err := notify(cloneConf); err != nil {
			log.Errorf("observer[%s] fails to handle the new config: %v", observer, err)
		}
	}
	return nil
}

func (m *Manager) watch(ctx context.Context) {
	tick := time.NewTicker(reloadCheckInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			info, err := os.Stat(m.filePath)
			if err != nil {
				continue
			}
			m.RLock()
			changed := info.ModTime().After(m.modTime)
			m.RUnlock()
			if !changed {
				continue
			}
			newConf, modTime, err := m.readFile()
			if err != nil {
				log.Errorf("fail to reload config file %s: %v", m.filePath, err)
				m.errReporter.ReportError(ctx, common.NewError("config-manager", err))
				continue
			}
			m.Lock()
			m.modTime = modTime
			m.Unlock()
			if err = m.UpdateConfig(newConf); err != nil {
				log.Errorf("fail to apply reloaded config: %v", err)
			}
		}
	}
}

func (m *Manager) readFile() (*Config, time.Time, error) {
	info, err := os.Stat(m.filePath)
	if err != nil {
		return nil, time.Time{}, err
	}
	raw, err := os.ReadFile(m.filePath)
	if err != nil {
		return nil, time.Time{}, err
	}
	conf, err := parseYAML(raw)
	if err != nil {
		return nil, time.Time{}, err
	}
	return conf, info.ModTime(), nil
}

// parseYAML flattens a YAML document into dotted config keys, e.g.
// "db: {user: foo}" becomes "db.user".
func parseYAML(raw []byte) (*Config, error) {
	doc := make(map[string]interface{})
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed config document: %v", err)
	}
	conf := NewEmptyConfig()
	flattenInto(conf, "", doc)
	return conf, nil
}

func flattenInto(conf *Config, prefix string, doc map[string]interface{}) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flattenInto(conf, key, nested)
			continue
		}
		conf.Set(key, v)
	}
}
