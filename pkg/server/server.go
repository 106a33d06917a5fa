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
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/golang/glog"

	"github.com/launchtune/estimator/pkg/common"
	"github.com/launchtune/estimator/pkg/config"
)

// Server serves the estimation API over HTTP.
type Server struct {
	http *http.Server
	api  *API
}

// NewServer builds the router and binds the API to addr.
func NewServer(addr string, api *API) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	api.RegisterRoutes(router)

	s := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{http: s, api: api}
}

// Run starts serving and blocks until the context is cancelled or the
// listener fails. A listener failure is reported through errReporter.
func (s *Server) Run(ctx context.Context, errReporter common.ErrorReporter) error {
	go func() {
		log.Infof("estimation API listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errReporter.ReportError(ctx, common.NewError("server", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			log.Errorf("fail to shut down the server: %v", err)
		}
	}()
	return nil
}

// ConfigUpdateNotify swaps in freshly loaded serving options.
func (s *Server) ConfigUpdateNotify(newConf *config.Config) error {
	log.Infof("server new conf: %v", newConf)
	s.api.UpdateOptions(newConf)
	return nil
}
